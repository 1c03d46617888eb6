package formats

import (
	"log/slog"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/hierpalette"
)

// DecodeHierPalette decodes the non-64x64 dispatch of format 0x1A: a
// sequence of frames each prefixed by 4 skipped bytes, a 0xAA marker,
// and a 2-byte little-endian payload_length, decoded via
// internal/hierpalette with a palette carried across frames. A nil
// logger disables per-tile debug tracing.
func DecodeHierPalette(hdr container.Header, payload []byte, logger *slog.Logger) [][]byte {
	var frames [][]byte
	var palette []hierpalette.Color
	pos := 0

	for i := 0; i < hdr.TotalFrames; i++ {
		idx := pos + 4
		if idx >= len(payload) {
			break
		}
		if payload[idx] != 0xAA {
			frames = recoverFrame(frames, hdr)
			break // marker loss is unrecoverable without a known length
		}
		if idx+2 >= len(payload) {
			break
		}
		payloadLen := int(payload[idx+1]) | int(payload[idx+2])<<8
		end := idx + payloadLen
		if end > len(payload) {
			end = len(payload)
		}
		frameData := payload[idx:end]

		rgb, newPalette, err := hierpalette.DecodeFrame(frameData, hdr.Width, hdr.Height, palette, logger)
		if err != nil {
			frames = recoverFrame(frames, hdr)
			pos = idx + payloadLen
			continue
		}
		frames = append(frames, rgb)
		palette = newPalette
		pos = idx + payloadLen
	}
	return frames
}

// recoverFrame implements the per-frame recovery rule: duplicate the
// previous frame if one exists, otherwise emit black.
func recoverFrame(frames [][]byte, hdr container.Header) [][]byte {
	if len(frames) > 0 {
		return append(frames, frames[len(frames)-1])
	}
	return append(frames, make([]byte, hdr.Width*hdr.Height*3))
}
