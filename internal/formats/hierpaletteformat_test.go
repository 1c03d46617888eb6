package formats

import (
	"testing"

	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/hierpalette"
)

func packHierIndices(idx, count, bits int) []byte {
	total := count * bits
	out := make([]byte, (total+7)/8)
	bitPos := 0
	for i := 0; i < count; i++ {
		for b := 0; b < bits; b++ {
			if (idx>>uint(b))&1 != 0 {
				out[bitPos/8] |= 1 << uint(bitPos%8)
			}
			bitPos++
		}
	}
	return out
}

func bitsForHier(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 1
	for (1 << uint(bits)) < n {
		bits++
	}
	return bits
}

// buildHierFrame builds one 0x1A inner frame data chunk: marker, its
// own little-endian length (read by the outer loop to find the next
// frame), 2 reserved bytes, encrypt type, palette size, palette, and a
// single ctrl=0 terminal tile at level 64 that solidly paints a 64x64
// canvas with palette index idx.
func buildHierFrame(encryptType byte, palette []hierpalette.Color, idx int) []byte {
	buf := []byte{0xAA, 0, 0, 0, 0, encryptType, byte(len(palette)), byte(len(palette) >> 8)}
	for _, c := range palette {
		buf = append(buf, c.R, c.G, c.B)
	}
	buf = append(buf, 0) // ctrl=0
	bpp := bitsForHier(len(palette))
	if bpp > 0 {
		buf = append(buf, packHierIndices(idx, 64*64, bpp)...)
	}
	buf[1] = byte(len(buf))
	buf[2] = byte(len(buf) >> 8)
	return buf
}

// wrapHierFrame prefixes f with the 4 bytes DecodeHierPalette skips
// before checking for the 0xAA marker.
func wrapHierFrame(f []byte) []byte {
	return append([]byte{0, 0, 0, 0}, f...)
}

// buildHier128Frame builds one 0x1A inner frame for a 128x128 canvas:
// four level-64 ctrl=0 terminal tiles back to back, in the (0,0),
// (1,0), (0,1), (1,1) quadrant order DecodeFrame walks them in, each
// solidly painted with its own palette index.
func buildHier128Frame(encryptType byte, palette []hierpalette.Color, idxs [4]int) []byte {
	buf := []byte{0xAA, 0, 0, 0, 0, encryptType, byte(len(palette)), byte(len(palette) >> 8)}
	for _, c := range palette {
		buf = append(buf, c.R, c.G, c.B)
	}
	bpp := bitsForHier(len(palette))
	for _, idx := range idxs {
		buf = append(buf, 0) // ctrl=0
		if bpp > 0 {
			buf = append(buf, packHierIndices(idx, 64*64, bpp)...)
		}
	}
	buf[1] = byte(len(buf))
	buf[2] = byte(len(buf) >> 8)
	return buf
}

func TestDecodeHierPalette128QuadrantPlacement(t *testing.T) {
	palette := []hierpalette.Color{{10, 10, 10}, {20, 20, 20}, {30, 30, 30}, {40, 40, 40}}
	idxs := [4]int{0, 1, 2, 3} // quadrant order: (0,0), (1,0), (0,1), (1,1)
	f0 := buildHier128Frame(hierpalette.EncryptFull, palette, idxs)
	payload := wrapHierFrame(f0)

	hdr := container.Header{TotalFrames: 1, Width: 128, Height: 128}
	frames := DecodeHierPalette(hdr, payload, nil)
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	rgb := frames[0]
	at := func(x, y int) []byte {
		i := (y*128 + x) * 3
		return rgb[i : i+3]
	}
	cases := []struct {
		x, y, idx int
		name      string
	}{
		{0, 0, 0, "quadrant (0,0)"},
		{64, 0, 1, "quadrant (1,0)"},
		{0, 64, 2, "quadrant (0,1)"},
		{64, 64, 3, "quadrant (1,1)"},
	}
	for _, c := range cases {
		want := palette[c.idx]
		got := at(c.x, c.y)
		if got[0] != want.R || got[1] != want.G || got[2] != want.B {
			t.Errorf("%s pixel(%d,%d) = %v, want %v", c.name, c.x, c.y, got, want)
		}
	}
}

func TestDecodeHierPaletteTwoFrames(t *testing.T) {
	palette := []hierpalette.Color{{255, 0, 0}, {0, 255, 0}}
	f0 := buildHierFrame(hierpalette.EncryptFull, palette, 0)
	f1 := buildHierFrame(hierpalette.EncryptFull, palette, 1)

	var payload []byte
	payload = append(payload, wrapHierFrame(f0)...)
	payload = append(payload, wrapHierFrame(f1)...)

	hdr := container.Header{TotalFrames: 2, Width: 64, Height: 64}
	frames := DecodeHierPalette(hdr, payload, nil)
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0][0] != 255 || frames[0][1] != 0 {
		t.Errorf("frame0 = %v, want red", frames[0][:3])
	}
	if frames[1][0] != 0 || frames[1][1] != 255 {
		t.Errorf("frame1 = %v, want green", frames[1][:3])
	}
}

func TestDecodeHierPaletteRecoversOnBadMarker(t *testing.T) {
	palette := []hierpalette.Color{{255, 0, 0}, {0, 255, 0}}
	f0 := buildHierFrame(hierpalette.EncryptFull, palette, 1)
	good := wrapHierFrame(f0)

	var corrupted []byte
	corrupted = append(corrupted, good...)
	corrupted = append(corrupted, good...)
	// Corrupt frame 3's marker (third copy in the 3-frame declaration).
	markerIdx := len(good) + len(good) + 4
	corrupted = append(corrupted, good...)
	corrupted[markerIdx] = 0x00

	hdr := container.Header{TotalFrames: 3, Width: 64, Height: 64}
	frames := DecodeHierPalette(hdr, corrupted, nil)
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3 (2 good + 1 duplicated recovery)", len(frames))
	}
	if frames[2][0] != frames[1][0] || frames[2][1] != frames[1][1] {
		t.Fatalf("frame 2 should duplicate frame 1 on recovery")
	}
}
