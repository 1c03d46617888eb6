package formats

import (
	"bytes"
	"fmt"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/imgprim"
)

// DecodeEmbeddedImage decodes format 0x2B: payload begins immediately
// after the 5-byte header with a standard GIF or RIFF/WEBP container,
// passed through unmodified to the provided codec. outW/outH reports
// the size actually applied to every returned frame, which may differ
// from the envelope's declared width/height.
func DecodeEmbeddedImage(hdr container.Header, payload []byte) (frames [][]byte, outW, outH int, err error) {
	if bytes.HasPrefix(payload, container.GIF8[:]) {
		frames, outW, outH, err = imgprim.DecodeGIF(payload, hdr.Width, hdr.Height)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("embeddedimage: %w", err)
		}
		return frames, outW, outH, nil
	}

	if len(payload) >= 12 && bytes.Equal(payload[0:4], container.RIFFTag[:]) &&
		bytes.Equal(payload[8:12], container.WEBPTag[:]) {
		frames, outW, outH, err = imgprim.DecodeWebP(payload, hdr.Width, hdr.Height)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("embeddedimage: %w", err)
		}
		return frames, outW, outH, nil
	}

	// Fall back to a sniffed single JPEG, in case an 0x2B envelope ever
	// carries a still photo rather than a GIF/WebP.
	if bytes.HasPrefix(payload, container.JpegSOI[:]) {
		pix, w, h, err := imgprim.DecodeJPEG(payload, hdr.Width, hdr.Height)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("embeddedimage: %w", err)
		}
		return [][]byte{pix}, w, h, nil
	}

	return nil, 0, 0, fmt.Errorf("embeddedimage: %w", container.ErrUnsupportedFormat)
}
