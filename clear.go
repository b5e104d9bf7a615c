// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// Rect is an axis-aligned pixel rectangle with its origin in the
// backend's native convention.
type Rect struct {
	X, Y, Width, Height int
}

// ClearParams selects which targets a Device.Clear call affects and the
// values they are cleared to. A nil field leaves that target untouched.
//
// The distinction between "clear nothing" and "clear everything to
// defaults" is deliberate: a ClearParams with all targets nil issues no
// native clear at all.
type ClearParams struct {
	// Color, when non-nil, clears the color target to the given value.
	Color *Color

	// Depth, when non-nil, clears the depth target to the given value.
	Depth *float32

	// Stencil, when non-nil, clears the stencil target to the given value.
	Stencil *uint8

	// Rect, when non-nil, restricts the clear to a pixel rectangle.
	// Backends that scissor the clear restore the previous scissor
	// state afterwards.
	Rect *Rect
}

// Empty reports whether no clear target is requested. An empty clear is
// a no-op: the device issues zero native calls for it.
func (p ClearParams) Empty() bool {
	return p.Color == nil && p.Depth == nil && p.Stencil == nil
}

// ClearColor is a convenience constructor for a color-only clear.
func ClearColor(c Color) ClearParams {
	return ClearParams{Color: &c}
}

// ClearAll is a convenience constructor clearing color, depth and
// stencil in one call.
func ClearAll(c Color, depth float32, stencil uint8) ClearParams {
	return ClearParams{Color: &c, Depth: &depth, Stencil: &stencil}
}
