// Package zstdprim adapts github.com/klauspost/compress/zstd to the
// Divoom container's convention of prefixing the zstd frame with a
// small, unspecified preamble: callers must locate the magic number
// before decompressing.
package zstdprim

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Magic is the zstd frame magic number.
var Magic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// ErrMagicNotFound is returned when no zstd frame magic is present in
// the payload.
var ErrMagicNotFound = errors.New("zstdprim: zstd magic not found")

// FindFrame returns the subslice of payload starting at the zstd magic
// number, or ErrMagicNotFound.
func FindFrame(payload []byte) ([]byte, error) {
	idx := bytes.Index(payload, Magic[:])
	if idx < 0 {
		return nil, ErrMagicNotFound
	}
	return payload[idx:], nil
}

// Decompress locates the zstd frame within payload and decompresses it.
func Decompress(payload []byte) ([]byte, error) {
	frame, err := FindFrame(payload)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstdprim: new reader: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("zstdprim: decode: %w", err)
	}
	return out, nil
}
