package divoomdec

import (
	"errors"
	"fmt"
	"os"

	"github.com/fabkury/divoomdec/anim"
	"github.com/fabkury/divoomdec/internal/container"
	"github.com/fabkury/divoomdec/internal/formats"
)

// Probe describes a container's declared metadata without decoding any
// pixel data (the SUPPLEMENTED introspection analogous to the
// teacher's GetFeatures).
type Probe struct {
	Format      byte
	TotalFrames int
	SpeedMS     int
	Width       int
	Height      int
}

// ProbeBytes inspects data's envelope and returns its declared
// metadata without decoding any frame.
func ProbeBytes(data []byte) (*Probe, error) {
	tag, err := container.Peek(data)
	if err != nil {
		return nil, mapContainerErr(err)
	}

	switch tag {
	case container.FormatAnimSingle:
		speedMS, _, err := container.ParseAnimSingleHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		return &Probe{Format: byte(tag), SpeedMS: speedMS, Width: container.TileSize, Height: container.TileSize}, nil
	case container.FormatPicMulti:
		hdr, _, err := container.ParsePicMultiHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		return &Probe{Format: byte(tag), TotalFrames: 1, SpeedMS: container.PicMultiSpeedMS, Width: hdr.Width, Height: hdr.Height}, nil
	default:
		hdr, _, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		return &Probe{Format: byte(tag), TotalFrames: hdr.TotalFrames, SpeedMS: hdr.SpeedMS, Width: hdr.Width, Height: hdr.Height}, nil
	}
}

// Decode dispatches on data's leading format byte (C5) and returns the
// decoded Animation. cfg may be nil for defaults.
func Decode(data []byte, cfg *Config) (*anim.Animation, error) {
	tag, err := container.Peek(data)
	if err != nil {
		return nil, mapContainerErr(err)
	}

	switch tag {
	case container.FormatAnimSingle:
		speedMS, rest, err := container.ParseAnimSingleHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, err := formats.DecodeAnimSingle(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(container.TileSize, container.TileSize, 1, 1, speedMS, frames)

	case container.FormatPicMulti:
		phdr, rest, err := container.ParsePicMultiHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frame, err := formats.DecodePicMulti(phdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(phdr.Width, phdr.Height, phdr.RowCount, phdr.ColumnCount, container.PicMultiSpeedMS, [][]byte{frame})

	case container.FormatAnimMulti:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, err := formats.DecodeAnimMulti(hdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(hdr.Width, hdr.Height, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	case container.FormatHier:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		var frames [][]byte
		if hdr.IsAnimMulti64() {
			frames, err = formats.DecodeAnimMulti64(hdr, rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
			}
		} else {
			frames = formats.DecodeHierPalette(hdr, rest, cfg.logger())
		}
		return anim.New(hdr.Width, hdr.Height, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	case container.FormatJpegAnim31:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, err := formats.DecodeJpegAnim31(hdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(hdr.Width, hdr.Height, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	case container.FormatJpegAnim41:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, w, h, err := formats.DecodeJpegAnim41(hdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(w, h, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	case container.FormatZstdRawRGB:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, err := formats.DecodeZstdRawRGB(hdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(hdr.Width, hdr.Height, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	case container.FormatEmbeddedImage:
		hdr, rest, err := container.ParseHeader(data)
		if err != nil {
			return nil, mapContainerErr(err)
		}
		frames, w, h, err := formats.DecodeEmbeddedImage(hdr, rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrimitiveFailure, err)
		}
		return anim.New(w, h, hdr.RowCount, hdr.ColumnCount, hdr.SpeedMS, frames)

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedFormat, byte(tag))
	}
}

// DecodeFile reads path and decodes it; a thin os.ReadFile + Decode
// wrapper, matching the teacher's reader/byte-slice split.
func DecodeFile(path string, cfg *Config) (*anim.Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("divoomdec: reading %s: %w", path, err)
	}
	return Decode(data, cfg)
}

func mapContainerErr(err error) error {
	switch {
	case errors.Is(err, container.ErrTruncatedHeader):
		return fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	case errors.Is(err, container.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	default:
		return err
	}
}
