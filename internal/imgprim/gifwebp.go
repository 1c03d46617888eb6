package imgprim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"golang.org/x/image/webp"
)

// white is the fixed disposal background every GIF/WebP embedded-image
// frame is composited onto.
var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ErrNoFrames is returned when a GIF or WebP container demuxes to zero
// frames.
var ErrNoFrames = errors.New("imgprim: container has no frames")

// DecodeGIF decodes every frame of a GIF, compositing each atop a
// running white canvas (standard disposal-by-composition: paint the
// frame, snapshot the canvas, repeat), and returns one RGB frame per
// GIF frame, resized to (wantW, wantH) with nearest-neighbor if
// nonzero and different from the GIF's logical screen size.
func DecodeGIF(data []byte, wantW, wantH int) (frames [][]byte, outW, outH int, err error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imgprim: gif decode: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, 0, 0, ErrNoFrames
	}

	srcW, srcH := g.Config.Width, g.Config.Height
	canvas := image.NewNRGBA(image.Rect(0, 0, srcW, srcH))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)

	frames = make([][]byte, len(g.Image))
	for i, pal := range g.Image {
		draw.Draw(canvas, pal.Bounds(), pal, pal.Bounds().Min, draw.Over)
		pix, w, h, cerr := toRGBResized(canvas, wantW, wantH)
		if cerr != nil {
			return nil, 0, 0, cerr
		}
		frames[i] = pix
		outW, outH = w, h
	}
	return frames, outW, outH, nil
}

// DecodeWebP decodes a WebP payload to RGB frames composited atop
// white, resized to (wantW, wantH) if nonzero and different from the
// container's intrinsic size.
//
// golang.org/x/image/webp decodes a single still image (lossy,
// lossless, or the first frame of an extended-format file) but has no
// native animation support. Animated (ANIM/ANMF) containers are
// demuxed here with a minimal RIFF chunk walk — enough to recover each
// frame's raw VP8/VP8L bitstream and offset/size — and each frame is
// re-wrapped as a standalone single-image WebP so x/image/webp can
// decode it.
func DecodeWebP(data []byte, wantW, wantH int) (frames [][]byte, outW, outH int, err error) {
	anim, aerr := demuxAnimatedWebP(data)
	if aerr != nil {
		img, derr := webp.Decode(bytes.NewReader(data))
		if derr != nil {
			return nil, 0, 0, fmt.Errorf("imgprim: webp decode: %w", derr)
		}
		pix, w, h, cerr := toRGBResized(flattenOnWhite(img), wantW, wantH)
		if cerr != nil {
			return nil, 0, 0, cerr
		}
		return [][]byte{pix}, w, h, nil
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, anim.canvasW, anim.canvasH))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)

	frames = make([][]byte, 0, len(anim.frames))
	for _, f := range anim.frames {
		img, derr := webp.Decode(bytes.NewReader(wrapSingleImageWebP(f.fourcc, f.payload)))
		if derr != nil {
			continue
		}
		rect := image.Rect(f.x, f.y, f.x+img.Bounds().Dx(), f.y+img.Bounds().Dy())
		draw.Draw(canvas, rect, img, img.Bounds().Min, draw.Over)
		pix, w, h, cerr := toRGBResized(canvas, wantW, wantH)
		if cerr != nil {
			return nil, 0, 0, cerr
		}
		frames = append(frames, pix)
		outW, outH = w, h
	}
	if len(frames) == 0 {
		return nil, 0, 0, ErrNoFrames
	}
	return frames, outW, outH, nil
}

// flattenOnWhite composites img atop a white background, discarding
// any alpha channel, per the white-background disposal rule.
func flattenOnWhite(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: white}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// --- minimal animated WebP demux, grounded in the RIFF/FourCC chunk
// walking idiom shared by every WebP container parser ---

var (
	fourCCRIFF = fourCC('R', 'I', 'F', 'F')
	fourCCWEBP = fourCC('W', 'E', 'B', 'P')
	fourCCVP8X = fourCC('V', 'P', '8', 'X')
	fourCCANIM = fourCC('A', 'N', 'I', 'M')
	fourCCANMF = fourCC('A', 'N', 'M', 'F')
	fourCCVP8  = fourCC('V', 'P', '8', ' ')
	fourCCVP8L = fourCC('V', 'P', '8', 'L')
)

func fourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

type webpFrame struct {
	x, y    int
	fourcc  uint32
	payload []byte
}

type animatedWebP struct {
	canvasW, canvasH int
	frames           []webpFrame
}

var errNotAnimated = errors.New("imgprim: not an animated webp")

func demuxAnimatedWebP(data []byte) (*animatedWebP, error) {
	if len(data) < 12 || binary.LittleEndian.Uint32(data[0:4]) != fourCCRIFF ||
		binary.LittleEndian.Uint32(data[8:12]) != fourCCWEBP {
		return nil, errNotAnimated
	}
	buf := data[12:]
	if len(buf) < 8 || binary.LittleEndian.Uint32(buf[0:4]) != fourCCVP8X {
		return nil, errNotAnimated
	}
	vp8xSize := binary.LittleEndian.Uint32(buf[4:8])
	if vp8xSize < 10 || uint64(8+vp8xSize) > uint64(len(buf)) {
		return nil, errNotAnimated
	}
	vp8xPayload := buf[8 : 8+vp8xSize]
	flags := vp8xPayload[0]
	const animationFlag = 0x02
	if flags&animationFlag == 0 {
		return nil, errNotAnimated
	}
	canvasW := 1 + (int(vp8xPayload[4]) | int(vp8xPayload[5])<<8 | int(vp8xPayload[6])<<16)
	canvasH := 1 + (int(vp8xPayload[7]) | int(vp8xPayload[8])<<8 | int(vp8xPayload[9])<<16)

	pos := 8 + int(vp8xSize) + int(vp8xSize&1)
	anim := &animatedWebP{canvasW: canvasW, canvasH: canvasH}

	for pos+8 <= len(buf) {
		tag := binary.LittleEndian.Uint32(buf[pos : pos+4])
		size := binary.LittleEndian.Uint32(buf[pos+4 : pos+8])
		payloadStart := pos + 8
		payloadEnd := payloadStart + int(size)
		if payloadEnd > len(buf) {
			break
		}
		payload := buf[payloadStart:payloadEnd]

		if tag == fourCCANMF {
			if f, ok := parseANMF(payload); ok {
				anim.frames = append(anim.frames, f)
			}
		}
		pos = payloadEnd + int(size&1)
	}
	if len(anim.frames) == 0 {
		return nil, errNotAnimated
	}
	return anim, nil
}

func parseANMF(payload []byte) (webpFrame, bool) {
	if len(payload) < 16 {
		return webpFrame{}, false
	}
	x := 2 * (int(payload[0]) | int(payload[1])<<8 | int(payload[2])<<16)
	y := 2 * (int(payload[3]) | int(payload[4])<<8 | int(payload[5])<<16)

	sub := payload[16:]
	for len(sub) >= 8 {
		tag := binary.LittleEndian.Uint32(sub[0:4])
		size := binary.LittleEndian.Uint32(sub[4:8])
		end := 8 + int(size)
		if end > len(sub) {
			break
		}
		if tag == fourCCVP8 || tag == fourCCVP8L {
			return webpFrame{x: x, y: y, fourcc: tag, payload: sub[8:end]}, true
		}
		sub = sub[end+int(size&1):]
	}
	return webpFrame{}, false
}

// wrapSingleImageWebP re-wraps a bare VP8/VP8L bitstream as a minimal
// standalone RIFF/WEBP file so it can be handed to x/image/webp.Decode.
func wrapSingleImageWebP(fourcc uint32, payload []byte) []byte {
	padded := len(payload) + len(payload)&1
	total := 4 + 8 + padded // "WEBP" + chunk header + padded payload
	buf := make([]byte, 8+total)
	binary.LittleEndian.PutUint32(buf[0:4], fourCCRIFF)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(total))
	binary.LittleEndian.PutUint32(buf[8:12], fourCCWEBP)
	binary.LittleEndian.PutUint32(buf[12:16], fourcc)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(payload)))
	copy(buf[20:], payload)
	return buf
}
