package formats

import (
	"github.com/fabkury/divoomdec/internal/cryptoprim"
	"github.com/fabkury/divoomdec/internal/tileasm"
)

// animSingleFrameBytes is the fixed per-frame size of a single 16x16 RGB tile.
const animSingleFrameBytes = 16 * 16 * 3

// DecodeAnimSingle decodes format 0x09: a single AES-CBC-encrypted
// payload, reconstructed via the pre-rotation inverse, split into
// 768-byte frames.
func DecodeAnimSingle(rawPayload []byte) ([][]byte, error) {
	rotated := cryptoprim.RotateLeft4(rawPayload)
	decrypted, err := cryptoprim.DecryptCBC(rotated)
	if err != nil {
		return nil, err
	}

	frameCount := len(decrypted) / animSingleFrameBytes
	frames := make([][]byte, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		raw := decrypted[i*animSingleFrameBytes : (i+1)*animSingleFrameBytes]
		frame, err := tileasm.Assemble(raw, 1, 1)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
