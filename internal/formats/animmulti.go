package formats

import (
	"fmt"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/cryptoprim"
	"github.com/fabkury/divoomdec/internal/lzoprim"
	"github.com/fabkury/divoomdec/internal/tileasm"
)

// DecodeAnimMulti decodes format 0x12: an AES-CBC-encrypted payload
// holding total_frames size-prefixed LZO1X-compressed tile-major
// frames.
func DecodeAnimMulti(hdr container.Header, rawPayload []byte) ([][]byte, error) {
	decrypted, err := cryptoprim.DecryptCBC(rawPayload)
	if err != nil {
		return nil, err
	}

	frameSize := hdr.Width * hdr.Height * 3
	frames := make([][]byte, 0, hdr.TotalFrames)
	pos := 0
	for i := 0; i < hdr.TotalFrames; i++ {
		if pos+4 > len(decrypted) {
			break
		}
		size := int(container.ReadBE32(decrypted[pos : pos+4]))
		pos += 4
		if size <= 0 || pos+size > len(decrypted) {
			frames = recoverFrame(frames, hdr)
			break
		}
		compressed := decrypted[pos : pos+size]
		pos += size

		raw, err := lzoprim.Decompress(compressed, frameSize)
		if err != nil {
			frames = recoverFrame(frames, hdr)
			continue
		}
		frame, err := tileasm.Assemble(raw, hdr.RowCount, hdr.ColumnCount)
		if err != nil {
			return nil, fmt.Errorf("animmulti: %w", err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
