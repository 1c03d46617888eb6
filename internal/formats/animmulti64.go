package formats

import (
	"fmt"

	"github.com/fabkury/divoomdec/internal/container"
)

// encryptionAnimMulti64 is the 0x0C frame-encryption discriminator for
// the 64x64 dispatch of format 0x1A.
const encryptionAnimMulti64 = 0x0C

// DecodeAnimMulti64 decodes the 64x64 variant of the 0x1A container:
// no AES, a sequence of size-prefixed frames each palette-coded with
// the reverse-engineered bits-per-pixel derivation below.
func DecodeAnimMulti64(hdr container.Header, payload []byte) ([][]byte, error) {
	var frames [][]byte
	pos := 0
	for i := 0; i < hdr.TotalFrames; i++ {
		if pos+4 > len(payload) {
			break
		}
		size := int(container.ReadBE32(payload[pos : pos+4]))
		pos += 4
		if size <= 0 || pos+size > len(payload) {
			break
		}
		frameData := payload[pos : pos+size]
		pos += size

		decoded, err := decodeAnimMulti64Frame(frameData)
		if err != nil {
			if len(frames) > 0 {
				frames = append(frames, frames[len(frames)-1])
			} else {
				frames = append(frames, make([]byte, hdr.Width*hdr.Height*3))
			}
			continue
		}
		frames = append(frames, decoded)
	}
	return frames, nil
}

// decodeAnimMulti64Frame decodes a single 0x0C-encrypted 64x64 frame.
func decodeAnimMulti64Frame(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("animmulti64: frame too short: %d bytes", len(data))
	}
	encryptType := data[5]
	if encryptType != encryptionAnimMulti64 {
		return nil, fmt.Errorf("animmulti64: expected 0x0C encryption, got 0x%02X", encryptType)
	}

	paletteCount := int(data[6])
	var bVar9, iVar11 int
	if paletteCount == 0 {
		bVar9 = 8
		iVar11 = 768 // fallback for a corrupted frame
	} else {
		iVar11 = paletteCount * 3
		bVar9 = bitsPerPixelFromPaletteCount(paletteCount)
	}

	out := make([]byte, 64*64*3)
	pos := (iVar11 + 8) & 0xFFFF

	for pixelIdx := 0; pixelIdx < 4096; pixelIdx++ {
		colorIndex := getDotInfo(data, pos, pixelIdx&0xFFFF, bVar9)
		target := pixelIdx * 3
		if colorIndex == -1 {
			continue // already zero-initialized (black)
		}
		colorPos := 8 + colorIndex*3
		if colorPos+2 < len(data) {
			out[target] = data[colorPos]
			out[target+1] = data[colorPos+1]
			out[target+2] = data[colorPos+2]
		}
	}
	return out, nil
}

// bitsPerPixelFromPaletteCount reproduces the reference bit-scan
// derivation bit-for-bit. Its intent beyond "bits-per-pixel derivation"
// is not documented; treat as canonical per the reference.
func bitsPerPixelFromPaletteCount(paletteCount int) int {
	bVar9 := -1 // sentinel for "unset" (0xFF in the reference)
	bVar15 := 1
	u := paletteCount
	for {
		if u&1 != 0 {
			wasUnset := bVar9 == -1
			bVar9 = bVar15
			if wasUnset {
				bVar9 = bVar15 - 1
			}
		}
		next := u &^ 1
		bVar15++
		u = next >> 1
		if next == 0 {
			break
		}
	}
	return bVar9
}

// getDotInfo extracts the palette index for pixelIdx from the packed
// bVar9-bits-per-pixel stream starting at byte offset pos. Returns -1
// when the index falls outside the buffer (transparent -> black).
// Reverse-engineered from native code; preserved bit-exactly.
func getDotInfo(data []byte, pos, pixelIdx, bVar9 int) int {
	if pos >= len(data) {
		return -1
	}

	uVar2 := (bVar9 * pixelIdx) & 7
	uVar4 := (bVar9 * pixelIdx * 65536) >> 0x13

	if bVar9 >= 9 {
		// Unimplemented in the reference for bVar9 >= 9; treat as
		// transparent rather than panic.
		return -1
	}

	uVar3 := bVar9 + uVar2
	if uVar3 < 9 {
		idx := pos + uVar4
		if idx >= len(data) {
			return -1
		}
		shift := (8 - uVar3) & 0xFF
		uVar6 := (int(data[idx]) << uint(shift)) & 0xFF
		shift2 := (uVar2 + (8 - uVar3)) & 0xFF
		uVar6 >>= uint(shift2)
		return uVar6
	}

	idx1 := pos + uVar4 + 1
	idx0 := pos + uVar4
	if idx1 >= len(data) || idx0 >= len(data) {
		return -1
	}
	shift := (0x10 - uVar3) & 0xFF
	uVar6 := (int(data[idx1]) << uint(shift)) & 0xFF
	uVar6 >>= uint(shift)
	uVar6 &= 0xFFFF
	shift3 := (8 - uVar2) & 0xFF
	uVar6 <<= uint(shift3)
	uVar6 |= int(data[idx0]) >> uint(uVar2)
	return uVar6
}
