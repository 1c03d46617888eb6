// Package imgprim adapts the standard library's image codecs and
// golang.org/x/image's nearest-neighbor scaler to the decoder's
// uniform (height, width, 3) RGB frame representation.
package imgprim

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	ximgdraw "golang.org/x/image/draw"
)

// DecodeJPEG decodes a single JPEG byte range to RGB samples, in
// row-major (height, width, 3) order. If wantW/wantH are both
// nonzero and differ from the JPEG's intrinsic size, the image is
// resized with nearest-neighbor; otherwise the intrinsic size is used
// as-is and reported back via outW/outH.
func DecodeJPEG(data []byte, wantW, wantH int) (pix []byte, outW, outH int, err error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imgprim: jpeg decode: %w", err)
	}
	return toRGBResized(img, wantW, wantH)
}

// toRGBResized flattens img to row-major RGB, resizing to (wantW,
// wantH) with nearest-neighbor when both are nonzero and differ from
// img's bounds; otherwise the image's own size is used.
func toRGBResized(img image.Image, wantW, wantH int) (pix []byte, outW, outH int, err error) {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	outW, outH = srcW, srcH

	rgba := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if wantW != 0 && wantH != 0 && (wantW != srcW || wantH != srcH) {
		scaled := image.NewRGBA(image.Rect(0, 0, wantW, wantH))
		ximgdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), rgba, rgba.Bounds(), ximgdraw.Over, nil)
		rgba = scaled
		outW, outH = wantW, wantH
	}

	pix = make([]byte, outW*outH*3)
	for y := 0; y < outH; y++ {
		rowOff := y * rgba.Stride
		for x := 0; x < outW; x++ {
			s := rowOff + x*4
			d := (y*outW + x) * 3
			pix[d] = rgba.Pix[s]
			pix[d+1] = rgba.Pix[s+1]
			pix[d+2] = rgba.Pix[s+2]
		}
	}
	return pix, outW, outH, nil
}
