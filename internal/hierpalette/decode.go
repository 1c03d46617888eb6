// Package hierpalette implements the recursive quad-tree palette
// decoder for the 0x1A container's non-64x64 (HierPalette) variant:
// per-frame palette persistence (raw/delta/full) plus the 64->32->16->8
// tile recursion with per-level palette-restriction masks.
package hierpalette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fabkury/divoomdec/internal/bitio"
)

// Color is a palette entry.
type Color struct{ R, G, B byte }

// Frame header encrypt-type discriminants (low 7 bits of byte 5; the
// high bit is a variant marker with no documented meaning and is
// masked off).
const (
	EncryptRaw   = 0x11
	EncryptDelta = 0x13
	EncryptFull  = 0x15
)

var (
	// ErrFrameTooShort is returned when frame_data lacks the minimum
	// 8-byte header.
	ErrFrameTooShort = errors.New("hierpalette: frame data too short")
	// ErrBadMarker is returned when frame_data does not begin with 0xAA.
	ErrBadMarker = errors.New("hierpalette: missing 0xAA marker")
	// ErrPaletteOutOfRange is returned when the declared palette size
	// overruns the frame buffer.
	ErrPaletteOutOfRange = errors.New("hierpalette: palette out of range")
	// ErrPartialFrame is returned when the quad-tree walk runs past the
	// end of the pixel buffer.
	ErrPartialFrame = errors.New("hierpalette: partial frame")
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DecodeFrame decodes one 0x1A inner frame (frame_data starting at its
// 0xAA marker) against previousPalette (the container's carried
// palette, nil if none yet) and returns the frame's RGB pixels in
// row-major order plus the palette to carry into the next frame. A
// nil logger disables the per-tile trace logging the debug flag (§6)
// controls.
func DecodeFrame(frameData []byte, width, height int, previousPalette []Color, logger *slog.Logger) (rgb []byte, palette []Color, err error) {
	if logger == nil {
		logger = discardLogger
	}
	if len(frameData) < 8 {
		return nil, nil, ErrFrameTooShort
	}
	if frameData[0] != 0xAA {
		return nil, nil, ErrBadMarker
	}
	encryptType := frameData[5] & 0x7F
	paletteSize := int(binary.LittleEndian.Uint16(frameData[6:8]))
	const paletteStart = 8

	if encryptType == EncryptRaw {
		want := width * height * 3
		if len(frameData) < paletteStart+want {
			return nil, nil, fmt.Errorf("%w: raw payload", ErrPartialFrame)
		}
		out := make([]byte, want)
		copy(out, frameData[paletteStart:paletteStart+want])
		return out, nil, nil // raw frames reset palette persistence
	}

	switch encryptType {
	case EncryptDelta:
		palette = append(palette, previousPalette...)
	default:
		// EncryptFull and any other/unsupported encrypt_type build the
		// palette from scratch; previousPalette is ignored.
	}

	for i := 0; i < paletteSize; i++ {
		off := paletteStart + i*3
		if off+2 >= len(frameData) {
			return nil, nil, ErrPaletteOutOfRange
		}
		palette = append(palette, Color{frameData[off], frameData[off+1], frameData[off+2]})
	}
	pixelDataOffset := paletteStart + paletteSize*3
	var pixel []byte
	if pixelDataOffset < len(frameData) {
		pixel = frameData[pixelDataOffset:]
	}

	d := &decoder{
		pixel:   pixel,
		palette: palette,
		width:   width,
		height:  height,
		baseBpp: bitio.BitsForCount(max(1, len(palette))),
		logger:  logger,
	}
	d.out = make([]Color, width*height)

	off := 0
	n, err := d.decodeFix64(off, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	off += n
	if width == 128 && height == 128 {
		for _, q := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
			n, err := d.decodeFix64(off, q[0], q[1])
			if err != nil {
				return nil, nil, err
			}
			off += n
		}
	}
	logger.Debug("hierpalette: frame decoded", "palette_size", len(palette), "width", width, "height", height)

	rgb = make([]byte, width*height*3)
	for i, c := range d.out {
		rgb[i*3] = c.R
		rgb[i*3+1] = c.G
		rgb[i*3+2] = c.B
	}
	return rgb, palette, nil
}

type decoder struct {
	pixel   []byte
	palette []Color
	width   int
	height  int
	baseBpp int
	out     []Color
	logger  *slog.Logger
}

func (d *decoder) paletteAt(idx int) Color {
	if len(d.palette) == 0 {
		return Color{}
	}
	if idx < 0 || idx >= len(d.palette) {
		idx = 0
	}
	return d.palette[idx]
}

// readMask reads an N-bit selection mask starting at ptr and returns
// the set bit positions mapped through parent (parent[i] for each set
// bit i, or i directly when parent is nil — the level-64 case, where
// the mask selects directly into the full palette). An empty result is
// substituted with {0} per the palette-restriction-empty rule.
func (d *decoder) readMask(ptr, n int, parent []int) (selected []int, bytesRead int, err error) {
	maskBytes := (n + 7) / 8
	if ptr+maskBytes > len(d.pixel) {
		return nil, 0, fmt.Errorf("%w: mask", ErrPartialFrame)
	}
	for i := 0; i < n; i++ {
		if (d.pixel[ptr+(i>>3)]>>(uint(i)&7))&1 != 0 {
			if parent == nil {
				selected = append(selected, i)
			} else if i < len(parent) {
				selected = append(selected, parent[i])
			}
		}
	}
	if len(selected) == 0 {
		selected = []int{0}
	}
	return selected, maskBytes, nil
}

func readCtrlHeader(pixel []byte, offset int) (ctrl byte, n int, ptr int, err error) {
	if offset+1 > len(pixel) {
		return 0, 0, 0, fmt.Errorf("%w: tile header", ErrPartialFrame)
	}
	ctrl = pixel[offset]
	if ctrl == 0 {
		return ctrl, 0, offset + 1, nil
	}
	if offset+2 > len(pixel) {
		return 0, 0, 0, fmt.Errorf("%w: tile header", ErrPartialFrame)
	}
	n = int(pixel[offset+1])
	if n == 0 {
		n = 0x100
	}
	return ctrl, n, offset + 2, nil
}

// --- level 64 ---

func (d *decoder) decodeFix64(offset, xq, yq int) (int, error) {
	x0, y0 := xq*64, yq*64
	ctrl, n, ptr, err := readCtrlHeader(d.pixel, offset)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("hierpalette: level64 tile", "xq", xq, "yq", yq, "ctrl", ctrl, "n", n)

	switch ctrl {
	case 2:
		selected, maskBytes, err := d.readMask(ptr, n, nil)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		bpp := bitio.BitsForCount(len(selected))
		values, next, _ := bitio.Values(d.pixel, ptr, 64*64, bpp)
		d.paintBlocks64(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(selected) {
				idx = 0
			}
			return d.paletteAt(selected[idx])
		})
		return next - offset, nil
	case 0:
		bpp := d.baseBpp
		values, next, _ := bitio.Values(d.pixel, ptr, 64*64, bpp)
		d.paintBlocks64(x0, y0, values, func(idx int) Color {
			return d.paletteAt(idx)
		})
		return next - offset, nil
	default:
		selected, maskBytes, err := d.readMask(ptr, n, nil)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		consumed := 0
		for _, q := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			c, err := d.decodeFix32(ptr+consumed, xq*2+q[0], yq*2+q[1], selected)
			if err != nil {
				return 0, err
			}
			consumed += c
		}
		return (ptr + consumed) - offset, nil
	}
}

func (d *decoder) paintBlocks64(x0, y0 int, values []uint32, lookup func(int) Color) {
	w := d.width
	it := 0
	for br := 0; br < 8; br++ {
		for bc := 0; bc < 8; bc++ {
			for row := 0; row < 8; row++ {
				y := y0 + br*8 + row
				base := y*w + x0 + bc*8
				for col := 0; col < 8; col++ {
					d.out[base+col] = lookup(int(values[it]))
					it++
				}
			}
		}
	}
}

// --- level 32 ---

func (d *decoder) decodeFix32(offset, xq, yq int, parentMap []int) (int, error) {
	x0, y0 := xq*32, yq*32
	ctrl, n, ptr, err := readCtrlHeader(d.pixel, offset)
	if err != nil {
		return 0, err
	}

	switch ctrl {
	case 2:
		selected, maskBytes, err := d.readMask(ptr, n, parentMap)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		bpp := bitio.BitsForCount(len(selected))
		values, next, _ := bitio.Values(d.pixel, ptr, 32*32, bpp)
		d.paintBlocks32(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(selected) {
				idx = 0
			}
			return d.paletteAt(selected[idx])
		})
		return next - offset, nil
	case 0:
		bpp := bitio.BitsForCount(max(1, len(parentMap)))
		values, next, _ := bitio.Values(d.pixel, ptr, 32*32, bpp)
		d.paintBlocks32(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(parentMap) {
				idx = 0
				if len(parentMap) == 0 {
					return d.paletteAt(0)
				}
			}
			return d.paletteAt(parentMap[idx])
		})
		return next - offset, nil
	default:
		selected, maskBytes, err := d.readMask(ptr, n, parentMap)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		consumed := 0
		for _, q := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			c, err := d.decodeFix16(ptr+consumed, xq*2+q[0], yq*2+q[1], selected)
			if err != nil {
				return 0, err
			}
			consumed += c
		}
		return (ptr + consumed) - offset, nil
	}
}

func (d *decoder) paintBlocks32(x0, y0 int, values []uint32, lookup func(int) Color) {
	w := d.width
	it := 0
	for br := 0; br < 4; br++ {
		for bc := 0; bc < 4; bc++ {
			for row := 0; row < 8; row++ {
				y := y0 + br*8 + row
				base := y*w + x0 + bc*8
				for col := 0; col < 8; col++ {
					d.out[base+col] = lookup(int(values[it]))
					it++
				}
			}
		}
	}
}

// --- level 16 ---

func (d *decoder) decodeFix16(offset, xq, yq int, parentMap []int) (int, error) {
	x0, y0 := xq*16, yq*16
	ctrl, n, ptr, err := readCtrlHeader(d.pixel, offset)
	if err != nil {
		return 0, err
	}

	switch ctrl {
	case 2:
		selected, maskBytes, err := d.readMask(ptr, n, parentMap)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		bpp := bitio.BitsForCount(len(selected))
		values, next, _ := bitio.Values(d.pixel, ptr, 16*16, bpp)
		d.paintBlocks16(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(selected) {
				idx = 0
			}
			return d.paletteAt(selected[idx])
		})
		return next - offset, nil
	case 0:
		bpp := bitio.BitsForCount(max(1, len(parentMap)))
		values, next, _ := bitio.Values(d.pixel, ptr, 16*16, bpp)
		d.paintBlocks16(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(parentMap) {
				if len(parentMap) == 0 {
					return d.paletteAt(0)
				}
				idx = 0
			}
			return d.paletteAt(parentMap[idx])
		})
		return next - offset, nil
	default:
		selected, maskBytes, err := d.readMask(ptr, n, parentMap)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		consumed := 0
		for _, q := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			c, err := d.decodeFix8(ptr+consumed, xq*2+q[0], yq*2+q[1], selected)
			if err != nil {
				return 0, err
			}
			consumed += c
		}
		return (ptr + consumed) - offset, nil
	}
}

// paintBlocks16 paints a 16x16 tile as two 8-wide vertical bands
// (row_block selects the y half, band selects the x half).
func (d *decoder) paintBlocks16(x0, y0 int, values []uint32, lookup func(int) Color) {
	w := d.width
	it := 0
	for rowBlock := 0; rowBlock < 2; rowBlock++ {
		for band := 0; band < 2; band++ {
			xBand := x0 + band*8
			for row := 0; row < 8; row++ {
				y := y0 + rowBlock*8 + row
				base := y*w + xBand
				for col := 0; col < 8; col++ {
					d.out[base+col] = lookup(int(values[it]))
					it++
				}
			}
		}
	}
}

// --- level 8 (terminal only) ---

func (d *decoder) decodeFix8(offset, xq, yq int, parentMap []int) (int, error) {
	x0, y0 := xq*8, yq*8
	if offset >= len(d.pixel) {
		return 0, fmt.Errorf("%w: tile header", ErrPartialFrame)
	}
	first := d.pixel[offset]

	if first&0x80 != 0 {
		// Unlike levels 64/32/16, level 8 has no zero-means-max
		// substitution: N==0 yields a zero-byte, zero-selection mask.
		n := int(first & 0x7F)
		ptr := offset + 1
		selected, maskBytes, err := d.readMask(ptr, n, parentMap)
		if err != nil {
			return 0, err
		}
		ptr += maskBytes
		bpp := bitio.BitsForCount(len(selected))
		values, next, _ := bitio.Values(d.pixel, ptr, 8*8, bpp)
		d.paintBlock8(x0, y0, values, func(idx int) Color {
			if idx < 0 || idx >= len(selected) {
				idx = 0
			}
			return d.paletteAt(selected[idx])
		})
		return next - offset, nil
	}

	bpp := bitio.BitsForCount(len(parentMap))
	ptr := offset + 1
	values, next, _ := bitio.Values(d.pixel, ptr, 8*8, bpp)
	d.paintBlock8(x0, y0, values, func(idx int) Color {
		if idx < 0 || idx >= len(parentMap) {
			if len(parentMap) == 0 {
				return d.paletteAt(0)
			}
			idx = 0
		}
		return d.paletteAt(parentMap[idx])
	})
	return next - offset, nil
}

func (d *decoder) paintBlock8(x0, y0 int, values []uint32, lookup func(int) Color) {
	w := d.width
	it := 0
	for row := 0; row < 8; row++ {
		base := (y0+row)*w + x0
		for col := 0; col < 8; col++ {
			d.out[base+col] = lookup(int(values[it]))
			it++
		}
	}
}
