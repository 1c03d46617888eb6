// Package divoomdec decodes Divoom pixel-display animation containers.
//
// Eight container variants, discriminated by a leading format byte,
// each wrap some combination of AES-128-CBC encryption, LZO1X or zstd
// compression, 16x16 tile-major pixel layout, embedded JPEG/GIF/WebP
// streams, or a hierarchical quad-tree palette encoding. This package
// normalizes all eight into one Animation value: an ordered sequence
// of height*width*3 RGB frames plus the container's declared tile
// geometry and per-frame delay.
//
// Basic usage:
//
//	a, err := divoomdec.Decode(data, nil)
package divoomdec
