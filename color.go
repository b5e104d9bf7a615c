// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// Color is an RGBA color with float32 components in [0, 1].
// It is the value loaded into the native clear-color registers.
type Color struct {
	R, G, B, A float32
}

// RGBA constructs an opaque-capable color from the given components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// TransparentBlack is the zero color, fully transparent.
var TransparentBlack = Color{}
