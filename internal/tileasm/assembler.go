// Package tileasm converts a flat, tile-major RGB byte stream into a
// linear row-major frame buffer. Several Divoom variants serialize
// pixels as a grid of 16x16 tiles rather than plain scanlines; this
// package reverses that layout.
package tileasm

import (
	"errors"
	"fmt"
)

// TileSize is the edge length of one tile.
const TileSize = 16

// ErrShortInput is returned when src is smaller than rowCount*columnCount*
// TileSize*TileSize*3 bytes.
var ErrShortInput = errors.New("tileasm: source buffer too short")

// Assemble reassembles src (tile-major, row-major within each tile, 3
// bytes per pixel) into a (height, width, 3) row-major frame, where
// height = rowCount*TileSize and width = columnCount*TileSize.
//
// Tiles are ordered by (grid_y, grid_x) where grid_x advances every 256
// pixels and wraps at rowCount tiles — not columnCount — before grid_y
// advances. This matches the reference serialization exactly; do not
// "fix" the asymmetry.
func Assemble(src []byte, rowCount, columnCount int) ([]byte, error) {
	width := columnCount * TileSize
	height := rowCount * TileSize
	need := rowCount * columnCount * TileSize * TileSize * 3
	if len(src) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(src), need)
	}

	out := make([]byte, height*width*3)
	tilePixels := TileSize * TileSize
	totalPixels := rowCount * columnCount * tilePixels

	for p := 0; p < totalPixels; p++ {
		x := p % TileSize
		y := (p / TileSize) % TileSize
		gridX := (p / tilePixels) % rowCount
		gridY := (p / tilePixels) / rowCount

		outY := gridY*TileSize + y
		outX := gridX*TileSize + x
		srcOff := p * 3
		dstOff := (outY*width + outX) * 3
		out[dstOff] = src[srcOff]
		out[dstOff+1] = src[srcOff+1]
		out[dstOff+2] = src[srcOff+2]
	}

	return out, nil
}

// Disassemble is the inverse of Assemble: given a row-major (height,
// width, 3) frame, produce the tile-major byte stream that Assemble
// would reconstruct it from. Used only by tests to verify the mapping
// is bijective on tile-aligned buffers of a square grid (rowCount ==
// columnCount); on other grids the rowCount-based wrap is not
// one-to-one, so no exact inverse exists.
func Disassemble(frame []byte, rowCount, columnCount int) ([]byte, error) {
	width := columnCount * TileSize
	height := rowCount * TileSize
	need := height * width * 3
	if len(frame) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortInput, len(frame), need)
	}

	out := make([]byte, need)
	tilePixels := TileSize * TileSize
	totalPixels := rowCount * columnCount * tilePixels

	for p := 0; p < totalPixels; p++ {
		x := p % TileSize
		y := (p / TileSize) % TileSize
		gridX := (p / tilePixels) % rowCount
		gridY := (p / tilePixels) / rowCount

		srcY := gridY*TileSize + y
		srcX := gridX*TileSize + x
		srcOff := (srcY*width + srcX) * 3
		dstOff := p * 3
		out[dstOff] = frame[srcOff]
		out[dstOff+1] = frame[srcOff+1]
		out[dstOff+2] = frame[srcOff+2]
	}

	return out, nil
}
