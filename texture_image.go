// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// TextureFromImage creates an RGBA8 texture of the given square edge
// size from any image.Image, scaling with bilinear filtering when the
// source bounds differ from size×size.
//
// The pixel data is repacked tightly (stride == 4*size) before upload,
// so images with padded strides or non-zero origins are handled.
func TextureFromImage(d Device, img image.Image, size int) (Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: texture size %d", ErrInvalidArgument, size)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Dx() != size || bounds.Dy() != size {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		rgba = dst
		bounds = dst.Bounds()
	}

	pixels := rgba.Pix
	if rgba.Stride != 4*size || bounds.Min != (image.Point{}) {
		pixels = make([]byte, FormatRGBA8.DataLen(size))
		for y := 0; y < size; y++ {
			row := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pixels[y*4*size:(y+1)*4*size], rgba.Pix[row:row+4*size])
		}
	}

	return d.CreateTextureFromData(FormatRGBA8, size, pixels)
}
