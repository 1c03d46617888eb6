package container

import "errors"

// Sentinel errors for the container envelope layer. Per-format decoders
// define their own sentinels for payload-level failures; these cover
// only the common prefix parsed before dispatch.
var (
	// ErrUnsupportedFormat is returned when the leading byte is not one
	// of the eight known format tags.
	ErrUnsupportedFormat = errors.New("container: unsupported format tag")

	// ErrTruncatedHeader is returned when fewer bytes are available
	// than the format's fixed header requires.
	ErrTruncatedHeader = errors.New("container: truncated header")
)
