package formats

import (
	"bytes"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/imgprim"
)

// scanJPEGFrames walks payload extracting consecutive SOI/EOI-delimited
// JPEG byte ranges, stopping once max frames have been collected (a
// max of 0 yields no frames at all, per total_frames == 0 meaning an
// empty animation) or when no further SOI marker is found. When a
// trailing JPEG has no EOI marker, the rest of the payload is taken as
// its data rather than dropping it.
func scanJPEGFrames(payload []byte, max int) [][]byte {
	var out [][]byte
	pos := 0
	for len(out) < max {
		soi := bytes.Index(payload[pos:], container.JpegSOI[:])
		if soi < 0 {
			break
		}
		soi += pos
		eoi := bytes.Index(payload[soi:], container.JpegEOI[:])
		var end int
		if eoi < 0 {
			end = len(payload)
		} else {
			end = eoi + soi + len(container.JpegEOI)
		}
		out = append(out, payload[soi:end])
		pos = end
		if eoi < 0 {
			break
		}
	}
	return out
}

// DecodeJpegAnim31 decodes format 0x1F: a run of JPEG frames packed
// back to back with no separator, scanned directly from the start of
// the payload (which begins immediately after the 5-byte header).
func DecodeJpegAnim31(hdr container.Header, payload []byte) ([][]byte, error) {
	jpegs := scanJPEGFrames(payload, hdr.TotalFrames)
	frames := make([][]byte, 0, len(jpegs))
	for _, data := range jpegs {
		pix, _, _, err := imgprim.DecodeJPEG(data, hdr.Width, hdr.Height)
		if err != nil {
			frames = recoverFrame(frames, hdr)
			continue
		}
		frames = append(frames, pix)
	}
	return frames, nil
}
