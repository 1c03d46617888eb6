package divoomdec

import "errors"

// Container-level errors abort the whole decode. Per-frame conditions
// (a partial frame, a bad marker, a primitive failing on one frame of a
// multi-frame container) never reach the caller: they are consumed
// internally by each format's recovery loop and surface only as a
// possibly-truncated Animation. Decode does return ErrPrimitiveFailure
// when a primitive fails on data the whole container depends on (for
// example the AES payload of 0x09/0x11/0x12, the zstd stream of 0x2A,
// or the single frame of 0x11).
var (
	ErrUnsupportedFormat = errors.New("divoomdec: unsupported format")
	ErrTruncatedHeader   = errors.New("divoomdec: truncated header")
	ErrTruncatedPayload  = errors.New("divoomdec: truncated payload")
	ErrBadMarker         = errors.New("divoomdec: bad frame marker")
	ErrPaletteOutOfRange = errors.New("divoomdec: palette offset out of range")
	ErrInvalidEncryption = errors.New("divoomdec: invalid frame encryption byte")
	ErrPrimitiveFailure  = errors.New("divoomdec: primitive decode failure")
	ErrPartialFrame      = errors.New("divoomdec: partial frame")
)
