package lzoprim

import "testing"

// Decompress is a thin adapter over github.com/woozymasta/lzo; the
// exhaustive compression/decompression test matrix belongs to that
// library. This only pins our length-checking contract.
func TestDecompressLengthMismatch(t *testing.T) {
	// An empty payload decompresses to zero bytes, which will not match
	// a nonzero wantLen.
	_, err := Decompress(nil, 768)
	if err == nil {
		t.Fatalf("expected error on length mismatch")
	}
}
