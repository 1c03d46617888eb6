package formats

import (
	"image/color"
	"testing"

	"github.com/fabkury/divoomdec/internal/container"
)

func TestDecodeJpegAnim41SkipsGap(t *testing.T) {
	j0 := encodeTestJPEG(t, 4, 4, color.RGBA{255, 0, 0, 255})
	j1 := encodeTestJPEG(t, 4, 4, color.RGBA{0, 0, 255, 255})

	var payload []byte
	payload = append(payload, make([]byte, container.JpegAnim41ReservedLen)...)
	payload = append(payload, j0...)
	payload = append(payload, container.JpegAnim41GapPrefix[0], container.JpegAnim41GapPrefix[1], container.JpegAnim41GapPrefix[2], 0, 0)
	payload = append(payload, j1...)

	hdr := container.Header{Width: 4, Height: 4, TotalFrames: 2}
	frames, outW, outH, err := DecodeJpegAnim41(hdr, payload)
	if err != nil {
		t.Fatalf("DecodeJpegAnim41: %v", err)
	}
	if outW != 4 || outH != 4 {
		t.Fatalf("outW,outH = %d,%d, want 4,4", outW, outH)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0][0] < 200 {
		t.Errorf("frame0 should be reddish, got %v", frames[0][:3])
	}
	if frames[1][2] < 200 {
		t.Errorf("frame1 should be blueish, got %v", frames[1][:3])
	}
}

func TestDecodeJpegAnim41IntrinsicSizeWhenHeaderZero(t *testing.T) {
	j0 := encodeTestJPEG(t, 8, 6, color.RGBA{10, 20, 30, 255})

	var payload []byte
	payload = append(payload, make([]byte, container.JpegAnim41ReservedLen)...)
	payload = append(payload, j0...)

	hdr := container.Header{Width: 0, Height: 0, TotalFrames: 1}
	frames, outW, outH, err := DecodeJpegAnim41(hdr, payload)
	if err != nil {
		t.Fatalf("DecodeJpegAnim41: %v", err)
	}
	if outW != 8 || outH != 6 {
		t.Fatalf("outW,outH = %d,%d, want 8,6 (intrinsic)", outW, outH)
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	if len(frames[0]) != 8*6*3 {
		t.Fatalf("frame size = %d, want %d (intrinsic 8x6)", len(frames[0]), 8*6*3)
	}
}
