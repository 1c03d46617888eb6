package formats

import (
	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/zstdprim"
)

// DecodeZstdRawRGB decodes format 0x2A: a zstd-compressed run of raw
// RGB frames, located by scanning for the zstd magic. The result is
// capped at total_frames; if fewer full frames are available, only the
// available ones are returned (no padding). total_frames == 0 yields
// no frames at all.
func DecodeZstdRawRGB(hdr container.Header, payload []byte) ([][]byte, error) {
	decompressed, err := zstdprim.Decompress(payload)
	if err != nil {
		return nil, err
	}
	frameSize := hdr.Width * hdr.Height * 3
	if frameSize == 0 {
		return nil, nil
	}
	n := len(decompressed) / frameSize
	if n > hdr.TotalFrames {
		n = hdr.TotalFrames
	}
	frames := make([][]byte, n)
	for i := 0; i < n; i++ {
		frames[i] = decompressed[i*frameSize : (i+1)*frameSize]
	}
	return frames, nil
}
