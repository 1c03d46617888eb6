// Package anim provides the decoded-output entity shared by every
// container variant: an ordered sequence of RGB pixel frames plus the
// tile geometry and timing the source container declared.
package anim

import "fmt"

// Frame is one decoded image: height*width*3 RGB samples, row-major,
// top-to-bottom, left-to-right within a row.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// At returns the (r, g, b) sample at (x, y).
func (f Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Animation is the decoded output of every container variant: ordered
// RGB frames plus the tile geometry and per-frame delay declared by
// the source container.
type Animation struct {
	SpeedMS     int
	RowCount    int
	ColumnCount int
	Width       int
	Height      int
	Frames      []Frame
}

// FrameCount returns len(Frames); the Animation invariant is
// FrameCount() == len(Frames) always.
func (a *Animation) FrameCount() int {
	return len(a.Frames)
}

// New assembles an Animation from raw per-frame RGB buffers, verifying
// every buffer matches the declared height*width*3 shape.
func New(width, height, rowCount, columnCount, speedMS int, raw [][]byte) (*Animation, error) {
	want := width * height * 3
	frames := make([]Frame, len(raw))
	for i, pix := range raw {
		if len(pix) != want {
			return nil, fmt.Errorf("anim: frame %d has %d bytes, want %d (%dx%dx3)", i, len(pix), want, width, height)
		}
		frames[i] = Frame{Pix: pix, Width: width, Height: height}
	}
	return &Animation{
		SpeedMS:     speedMS,
		RowCount:    rowCount,
		ColumnCount: columnCount,
		Width:       width,
		Height:      height,
		Frames:      frames,
	}, nil
}
