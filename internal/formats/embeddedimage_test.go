package formats

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/fabkury/divoomdec/internal/container"
)

func TestDecodeEmbeddedImageGIF(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{
		color.RGBA{0, 0, 255, 255},
		color.RGBA{255, 255, 0, 255},
	})
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &gif.GIF{
		Image: []*image.Paletted{img},
		Delay: []int{0},
	}); err != nil {
		t.Fatalf("gif.EncodeAll: %v", err)
	}

	hdr := container.Header{Width: 4, Height: 4}
	frames, outW, outH, err := DecodeEmbeddedImage(hdr, buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeEmbeddedImage: %v", err)
	}
	if outW != 4 || outH != 4 {
		t.Fatalf("outW,outH = %d,%d, want 4,4", outW, outH)
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	if frames[0][2] < 200 {
		t.Errorf("frame should be blueish, got %v", frames[0][:3])
	}
}

func TestDecodeEmbeddedImageUnrecognized(t *testing.T) {
	hdr := container.Header{Width: 4, Height: 4}
	_, _, _, err := DecodeEmbeddedImage(hdr, []byte{0x00, 0x01, 0x02, 0x03})
	if err == nil {
		t.Fatal("expected error for unrecognized payload")
	}
}
