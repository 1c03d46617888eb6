// Package container implements the common envelope shared by all eight
// Divoom pixel-animation container variants: the leading format-tag
// byte, the fixed-size headers that follow it, and the fixed AES
// parameters every encrypted variant shares.
package container

import "encoding/binary"

// FormatTag identifies one of the eight container variants by its
// leading byte.
type FormatTag byte

// The eight known format discriminants.
const (
	FormatAnimSingle   FormatTag = 0x09
	FormatPicMulti     FormatTag = 0x11
	FormatAnimMulti    FormatTag = 0x12
	FormatHier         FormatTag = 0x1A // dispatches further to AnimMulti64 or HierPalette
	FormatJpegAnim31   FormatTag = 0x1F
	FormatJpegAnim41   FormatTag = 0x29
	FormatZstdRawRGB   FormatTag = 0x2A
	FormatEmbeddedImage FormatTag = 0x2B
)

// KnownFormats lists every valid leading byte, in the order spec.md
// enumerates them.
var KnownFormats = [...]FormatTag{
	FormatAnimSingle, FormatPicMulti, FormatAnimMulti, FormatHier,
	FormatJpegAnim31, FormatJpegAnim41, FormatZstdRawRGB, FormatEmbeddedImage,
}

// IsKnown reports whether b is one of the eight valid format tags.
func IsKnown(b byte) bool {
	for _, f := range KnownFormats {
		if byte(f) == b {
			return true
		}
	}
	return false
}

// AES parameters shared by every encrypted variant (0x09, 0x11, 0x12).
// Static across all devices — a device-side design choice, not a flaw
// in this decoder.
const (
	AESKey = "78hrey23y28ogs89"
	AESIV  = "1234567890123456"
)

// TileSize is the edge length of one 16x16 tile used by the tile-major
// serialization of the pre-0x1A variants.
const TileSize = 16

// BytesPerPixel is the RGB sample width of every decoded frame.
const BytesPerPixel = 3

// AnimSingleFrameBytes is the fixed per-frame size for format 0x09:
// one 16x16 tile of RGB samples.
const AnimSingleFrameBytes = TileSize * TileSize * BytesPerPixel

// Header sizes, in bytes.
const (
	// EnvelopeHeaderSize is the common 5-byte header
	// (total_frames, speed_ms BE16, row_count, column_count) that
	// follows the format tag for every variant except 0x09 and 0x11.
	EnvelopeHeaderSize = 5

	// AnimSingleHeaderSize is the 0x09 header: speed_ms BE16 only.
	AnimSingleHeaderSize = 2

	// PicMultiHeaderSize is the 0x11 header:
	// row_count, column_count, payload_length BE32.
	PicMultiHeaderSize = 6

	// PicMultiSpeedMS is the fixed (non-serialized) inter-frame delay
	// for the single-frame PicMulti format.
	PicMultiSpeedMS = 40
)

// JpegAnim41ReservedLen is the undocumented reserved block between the
// 5-byte header and the first JPEG frame in format 0x29.
const JpegAnim41ReservedLen = 9

// JpegAnim41GapPrefix is the first three bytes of the optional 5-byte
// gap occasionally inserted between consecutive JPEG frames in 0x29.
var JpegAnim41GapPrefix = [3]byte{0x02, 0x00, 0x00}

// ZstdMagic is the zstd frame magic number, used to locate the
// compressed payload inside the 0x2A container (which prefixes it with
// an unspecified small preamble).
var ZstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// JPEG SOI/EOI markers, used to split a concatenated JPEG sequence.
var (
	JpegSOI = [2]byte{0xFF, 0xD8}
	JpegEOI = [2]byte{0xFF, 0xD9}
)

// GIF8 is the GIF signature searched for inside 0x2B payloads.
var GIF8 = [4]byte{'G', 'I', 'F', '8'}

// RIFFTag and WEBPTag are the envelope markers of an embedded WebP
// stream inside a 0x2B payload.
var (
	RIFFTag = [4]byte{'R', 'I', 'F', 'F'}
	WEBPTag = [4]byte{'W', 'E', 'B', 'P'}
)

// ReadBE16 reads a big-endian uint16. All multi-byte header fields in
// this format family are big-endian (unlike the little-endian RIFF
// ancestry the container layer was adapted from); only the HierPalette
// per-frame payload_length and palette_size fields are little-endian
// (see internal/formats/hierpaletteformat.go and
// internal/hierpalette/decode.go).
func ReadBE16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

// ReadBE32 reads a big-endian uint32.
func ReadBE32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// ReadLE16 reads a little-endian uint16.
func ReadLE16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
