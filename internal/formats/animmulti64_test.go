package formats

import (
	"testing"

	"github.com/fabkury/divoomdec/internal/container"
)

func TestBitsPerPixelFromPaletteCount(t *testing.T) {
	// A single set bit (palette_count a power of two) should yield that
	// bit's 1-indexed position minus one.
	if got := bitsPerPixelFromPaletteCount(1); got != 0 {
		t.Errorf("count=1: got %d, want 0", got)
	}
	if got := bitsPerPixelFromPaletteCount(2); got != 1 {
		t.Errorf("count=2: got %d, want 1", got)
	}
	if got := bitsPerPixelFromPaletteCount(4); got != 2 {
		t.Errorf("count=4: got %d, want 2", got)
	}
}

func TestDecodeAnimMulti64FrameTooShort(t *testing.T) {
	_, err := decodeAnimMulti64Frame([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected error for short frame")
	}
}

func TestDecodeAnimMulti64FrameWrongEncryption(t *testing.T) {
	data := make([]byte, 16)
	data[5] = 0x0D
	_, err := decodeAnimMulti64Frame(data)
	if err == nil {
		t.Fatalf("expected error for wrong encryption byte")
	}
}

func TestDecodeAnimMulti64RecoversOnBadFrame(t *testing.T) {
	hdr := container.Header{TotalFrames: 2, Width: 64, Height: 64}
	// frame 0: a too-short payload forces the fallback black frame.
	payload := []byte{0, 0, 0, 3, 1, 2, 3}
	frames, err := DecodeAnimMulti64(hdr, payload)
	if err != nil {
		t.Fatalf("DecodeAnimMulti64: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1 (black fallback, loop stops on short size)", len(frames))
	}
	for _, b := range frames[0] {
		if b != 0 {
			t.Fatalf("expected all-black fallback frame")
		}
	}
}
