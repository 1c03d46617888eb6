package formats

import (
	"bytes"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/imgprim"
)

// DecodeJpegAnim41 decodes format 0x29: payload begins with a 9-byte
// reserved block, followed by JPEG frames. Between frames a 5-byte gap
// whose first 3 bytes are 02 00 00 may appear and must be skipped.
// Declared width/height are frequently 0 for this format, in which
// case each frame's own intrinsic JPEG size is used; outW/outH reports
// whichever size was actually applied to every returned frame.
func DecodeJpegAnim41(hdr container.Header, payload []byte) (frames [][]byte, outW, outH int, err error) {
	pos := container.JpegAnim41ReservedLen
	if pos > len(payload) {
		pos = len(payload)
	}

	frames = make([][]byte, 0, hdr.TotalFrames)
	for hdr.TotalFrames == 0 || len(frames) < hdr.TotalFrames {
		soi := bytes.Index(payload[pos:], container.JpegSOI[:])
		if soi < 0 {
			break
		}
		soi += pos
		eoi := bytes.Index(payload[soi:], container.JpegEOI[:])
		if eoi < 0 {
			break
		}
		eoi += soi + len(container.JpegEOI)
		data := payload[soi:eoi]

		pix, w, h, derr := imgprim.DecodeJPEG(data, hdr.Width, hdr.Height)
		if derr != nil {
			frames = recoverFrame(frames, hdr)
		} else {
			frames = append(frames, pix)
			outW, outH = w, h
		}

		pos = eoi
		if pos+5 <= len(payload) && bytes.Equal(payload[pos:pos+3], container.JpegAnim41GapPrefix[:]) {
			pos += 5
		}
		if pos >= len(payload) {
			break
		}
	}
	return frames, outW, outH, nil
}
