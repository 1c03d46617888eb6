package anim

import "testing"

func TestNewValidatesFrameShape(t *testing.T) {
	_, err := New(2, 2, 1, 1, 40, [][]byte{make([]byte, 11)})
	if err == nil {
		t.Fatal("expected shape-mismatch error")
	}
}

func TestNewBuildsAnimation(t *testing.T) {
	raw := [][]byte{make([]byte, 2*2*3), make([]byte, 2*2*3)}
	a, err := New(2, 2, 1, 1, 40, raw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.FrameCount() != 2 {
		t.Fatalf("FrameCount = %d, want 2", a.FrameCount())
	}
	if a.Width != 2 || a.Height != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", a.Width, a.Height)
	}
}

func TestFrameAt(t *testing.T) {
	pix := []byte{10, 20, 30, 40, 50, 60}
	f := Frame{Pix: pix, Width: 2, Height: 1}
	r, g, b := f.At(1, 0)
	if r != 40 || g != 50 || b != 60 {
		t.Fatalf("At(1,0) = (%d,%d,%d), want (40,50,60)", r, g, b)
	}
}
