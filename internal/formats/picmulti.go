package formats

import (
	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/cryptoprim"
	"github.com/fabkury/divoomdec/internal/lzoprim"
	"github.com/fabkury/divoomdec/internal/tileasm"
)

// DecodePicMulti decodes format 0x11: one AES-CBC-encrypted,
// LZO1X-compressed tile-major frame, always emitted at speed 40ms.
func DecodePicMulti(hdr container.PicMultiHeader, rawPayload []byte) ([]byte, error) {
	decrypted, err := cryptoprim.DecryptCBC(rawPayload)
	if err != nil {
		return nil, err
	}
	length := hdr.PayloadLength
	if length > len(decrypted) {
		length = len(decrypted)
	}
	raw, err := lzoprim.Decompress(decrypted[:length], hdr.Width*hdr.Height*3)
	if err != nil {
		return nil, err
	}
	return tileasm.Assemble(raw, hdr.RowCount, hdr.ColumnCount)
}
