// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// BlendFactor selects a source or destination blending coefficient.
type BlendFactor uint8

const (
	// BlendOne multiplies by 1.
	BlendOne BlendFactor = iota

	// BlendZero multiplies by 0.
	BlendZero

	// BlendSrcAlpha multiplies by the source alpha.
	BlendSrcAlpha

	// BlendOneMinusSrcAlpha multiplies by 1 minus the source alpha.
	BlendOneMinusSrcAlpha

	// BlendDstColor multiplies by the destination color.
	BlendDstColor
)

// DepthFunc selects the depth test comparison.
type DepthFunc uint8

const (
	// DepthLess passes fragments closer than the stored depth.
	DepthLess DepthFunc = iota

	// DepthAlways passes every fragment.
	DepthAlways
)

// CullMode selects which triangle faces are discarded.
type CullMode uint8

const (
	// CullNone disables face culling.
	CullNone CullMode = iota

	// CullBack discards back-facing triangles.
	CullBack

	// CullFront discards front-facing triangles.
	CullFront
)

// BlendState configures the blending equation factors.
type BlendState struct {
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

// DepthState configures the depth test.
type DepthState struct {
	// Func is the depth comparison function.
	Func DepthFunc

	// Write enables depth buffer writes.
	Write bool
}

// RenderState is the bundle of pipeline toggles a Device applies before
// draw operations. A nil Blend or Depth pointer disables that feature.
//
// Devices diff a requested state against the previously applied one and
// issue only the native calls needed to realize the difference.
type RenderState struct {
	// Blend, when non-nil, enables blending with the given factors.
	Blend *BlendState

	// Depth, when non-nil, enables the depth test.
	Depth *DepthState

	// Cull selects face culling. The zero value disables culling.
	Cull CullMode
}

// DefaultRenderState is the state a device starts in and the state
// ResetRenderState restores: no blending, no depth test, no culling.
var DefaultRenderState = RenderState{}
