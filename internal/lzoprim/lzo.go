// Package lzoprim adapts github.com/woozymasta/lzo to the fixed-length
// decompression contract the container decoders need: every LZO1X
// payload here decompresses to a caller-known RGB buffer size.
package lzoprim

import (
	"fmt"

	"github.com/woozymasta/lzo"
)

// Decompress decompresses an LZO1X-compressed payload and verifies the
// result is exactly wantLen bytes. A length mismatch is treated as a
// primitive failure: AnimMulti's per-frame recovery converts it into a
// duplicated/black frame, while PicMulti returns it as an error.
func Decompress(payload []byte, wantLen int) ([]byte, error) {
	out, err := lzo.Decompress(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("lzoprim: decompress: %w", err)
	}
	if len(out) != wantLen {
		return nil, fmt.Errorf("lzoprim: decompressed %d bytes, want %d", len(out), wantLen)
	}
	return out, nil
}
