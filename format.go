// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import "fmt"

// TextureFormat identifies the pixel format of a texture.
type TextureFormat uint8

const (
	// FormatR8 is a single 8-bit normalized channel.
	FormatR8 TextureFormat = iota

	// FormatR16F is a single 16-bit floating point channel.
	FormatR16F

	// FormatRGBA8 is four 8-bit normalized channels.
	FormatRGBA8
)

// BytesPerPixel returns the storage size of one pixel in this format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatR8:
		return 1
	case FormatR16F:
		return 2
	case FormatRGBA8:
		return 4
	default:
		return 0
	}
}

// Valid reports whether f is a known texture format.
func (f TextureFormat) Valid() bool {
	return f.BytesPerPixel() != 0
}

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case FormatR8:
		return "R8"
	case FormatR16F:
		return "R16F"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint8(f))
	}
}

// DataLen returns the expected byte length of pixel data for a square
// texture of the given edge size in this format.
func (f TextureFormat) DataLen(size int) int {
	return f.BytesPerPixel() * size * size
}
