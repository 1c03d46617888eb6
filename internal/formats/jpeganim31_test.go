package formats

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/fabkury/divoomdec/internal/container"
)

func encodeTestJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestScanJPEGFramesTwoBackToBack(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})
	j1 := encodeTestJPEG(t, 4, 4, color.RGBA{0, 255, 0, 255})
	payload := append(append([]byte{}, j0...), j1...)

	got := scanJPEGFrames(payload, 2)
	if len(got) != 2 {
		t.Fatalf("frames = %d, want 2", len(got))
	}
	if !bytes.Equal(got[0], j0) {
		t.Errorf("frame0 mismatch")
	}
	if !bytes.Equal(got[1], j1) {
		t.Errorf("frame1 mismatch")
	}
}

func TestScanJPEGFramesZeroMaxYieldsNone(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})

	got := scanJPEGFrames(j0, 0)
	if len(got) != 0 {
		t.Fatalf("frames = %d, want 0 (max=0 means no frames)", len(got))
	}
}

func TestScanJPEGFramesMissingEOIUsesRestOfPayload(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})
	truncated := j0[:len(j0)-4] // drop the trailing EOI marker

	got := scanJPEGFrames(truncated, 5)
	if len(got) != 1 {
		t.Fatalf("frames = %d, want 1", len(got))
	}
	if !bytes.Equal(got[0], truncated) {
		t.Errorf("frame should be the rest of payload from SOI")
	}
}

func TestDecodeJpegAnim31(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})
	j1 := encodeTestJPEG(t, 4, 4, color.RGBA{0, 255, 0, 255})
	payload := append(append([]byte{}, j0...), j1...)

	hdr := container.Header{Width: 4, Height: 4, TotalFrames: 2}
	frames, err := DecodeJpegAnim31(hdr, payload)
	if err != nil {
		t.Fatalf("DecodeJpegAnim31: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0][0] < 200 {
		t.Errorf("frame0 should be reddish, got %v", frames[0][:3])
	}
	if frames[1][1] < 200 {
		t.Errorf("frame1 should be greenish, got %v", frames[1][:3])
	}
}

func TestDecodeJpegAnim31ZeroTotalFramesYieldsEmpty(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})

	hdr := container.Header{Width: 4, Height: 4, TotalFrames: 0}
	frames, err := DecodeJpegAnim31(hdr, j0)
	if err != nil {
		t.Fatalf("DecodeJpegAnim31: %v", err)
	}
	if len(frames) != 0 {
		t.Fatalf("frames = %d, want 0 (total_frames == 0)", len(frames))
	}
}

func TestScanJPEGFramesStopsAtMax(t *testing.T) {
	j0 := encodeTestJPEG(t, 2, 2, color.RGBA{1, 2, 3, 255})
	j1 := encodeTestJPEG(t, 2, 2, color.RGBA{4, 5, 6, 255})
	payload := append(append([]byte{}, j0...), j1...)

	got := scanJPEGFrames(payload, 1)
	if len(got) != 1 {
		t.Fatalf("frames = %d, want 1", len(got))
	}
}
