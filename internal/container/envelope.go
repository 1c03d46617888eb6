package container

import "fmt"

// Header is the common envelope that precedes every variant's payload
// except 0x09 and 0x11, which carry their own shorter headers (see
// ParseAnimSingleHeader and ParsePicMultiHeader).
type Header struct {
	Format      FormatTag
	TotalFrames int
	SpeedMS     int
	RowCount    int
	ColumnCount int
	Width       int
	Height      int
}

// Peek returns the leading format-tag byte without consuming it. It is
// the first step of dispatch (C5): the caller uses it to pick a
// decoder before calling the matching Parse* function.
func Peek(data []byte) (FormatTag, error) {
	if len(data) < 1 {
		return 0, ErrTruncatedHeader
	}
	if !IsKnown(data[0]) {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnsupportedFormat, data[0])
	}
	return FormatTag(data[0]), nil
}

// ParseHeader parses the format tag plus the common 5-byte header
// (total_frames, speed_ms BE16, row_count, column_count). It is used by
// every variant except 0x09 (AnimSingle) and 0x11 (PicMulti), which have
// their own header shapes.
//
// The returned rest slice starts immediately after the header — for
// 0x1A this is exactly the "preserved and re-emitted" bytes §4.1
// requires the dispatcher to buffer: callers route on Header.Width/
// Height and then hand (header, rest) to the chosen decoder rather than
// re-parsing from data.
func ParseHeader(data []byte) (hdr Header, rest []byte, err error) {
	tag, err := Peek(data)
	if err != nil {
		return Header{}, nil, err
	}
	body := data[1:]
	if len(body) < EnvelopeHeaderSize {
		return Header{}, nil, ErrTruncatedHeader
	}
	rowCount := int(body[3])
	columnCount := int(body[4])
	hdr = Header{
		Format:      tag,
		TotalFrames: int(body[0]),
		SpeedMS:     int(ReadBE16(body[1:3])),
		RowCount:    rowCount,
		ColumnCount: columnCount,
		Width:       TileSize * columnCount,
		Height:      TileSize * rowCount,
	}
	return hdr, body[EnvelopeHeaderSize:], nil
}

// ParseAnimSingleHeader parses the 0x09 envelope: format tag then a
// 2-byte big-endian speed_ms. Dimensions are fixed at 16x16 and
// total_frames is derived later from decrypted payload length.
func ParseAnimSingleHeader(data []byte) (speedMS int, rest []byte, err error) {
	tag, err := Peek(data)
	if err != nil {
		return 0, nil, err
	}
	if tag != FormatAnimSingle {
		return 0, nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedFormat, byte(tag))
	}
	body := data[1:]
	if len(body) < AnimSingleHeaderSize {
		return 0, nil, ErrTruncatedHeader
	}
	return int(ReadBE16(body[0:2])), body[AnimSingleHeaderSize:], nil
}

// PicMultiHeader is the 0x11 envelope: row_count, column_count, and a
// big-endian payload length, rather than the common 5-byte shape.
type PicMultiHeader struct {
	RowCount      int
	ColumnCount   int
	Width         int
	Height        int
	PayloadLength int
}

// ParsePicMultiHeader parses the 0x11 envelope.
func ParsePicMultiHeader(data []byte) (hdr PicMultiHeader, rest []byte, err error) {
	tag, err := Peek(data)
	if err != nil {
		return PicMultiHeader{}, nil, err
	}
	if tag != FormatPicMulti {
		return PicMultiHeader{}, nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedFormat, byte(tag))
	}
	body := data[1:]
	if len(body) < PicMultiHeaderSize {
		return PicMultiHeader{}, nil, ErrTruncatedHeader
	}
	rowCount := int(body[0])
	columnCount := int(body[1])
	hdr = PicMultiHeader{
		RowCount:      rowCount,
		ColumnCount:   columnCount,
		Width:         TileSize * columnCount,
		Height:        TileSize * rowCount,
		PayloadLength: int(ReadBE32(body[2:6])),
	}
	return hdr, body[PicMultiHeaderSize:], nil
}

// IsAnimMulti64 reports whether a Header parsed for format 0x1A should
// route to the AnimMulti64 decoder (64x64, 0x0C frame encryption) rather
// than HierPalette.
func (h Header) IsAnimMulti64() bool {
	return h.Format == FormatHier && h.Width == 64 && h.Height == 64
}
