// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "github.com/gogpu/gpudev"

// glState mirrors the native context's mutable state. Every mutation of
// the native context goes through one of its methods, which issue the
// native call and the tracked update together and skip calls that would
// be redundant. A fresh GL context starts with the zero values recorded
// here (clear depth is the exception, which GL initializes to 1).
type glState struct {
	// activeUnit is the unit selected by the last ActiveTexture call.
	activeUnit Enum

	// texUnits holds the texture bound to each unit.
	texUnits []Texture

	vertArray VertexArray
	prog      Program
	fbo       Framebuffer

	clearColor   [4]float32
	clearDepth   float32
	clearStencil int
	scissor      bool

	blend struct {
		enable         bool
		srcRGB, dstRGB Enum
		srcA, dstA     Enum
	}
	depthTest bool
	depthFunc Enum
	depthMask bool
	cull      bool
	cullMode  Enum
}

// newGLState records the defaults of a freshly created context.
func newGLState(units int) glState {
	s := glState{
		activeUnit: TEXTURE0,
		texUnits:   make([]Texture, units),
		clearDepth: 1,
		depthFunc:  LESS,
		depthMask:  true,
		cullMode:   BACK,
	}
	s.blend.srcRGB, s.blend.dstRGB = ONE, ZERO
	s.blend.srcA, s.blend.dstA = ONE, ZERO
	return s
}

func (s *glState) activeTexture(f Functions, unit Enum) {
	if unit != s.activeUnit {
		f.ActiveTexture(unit)
		s.activeUnit = unit
	}
}

// bindTexture selects the unit and binds t to it. The unit selection
// must precede the bind call; reversing the order would bind to
// whatever unit happened to be active.
func (s *glState) bindTexture(f Functions, unit int, t Texture) {
	s.activeTexture(f, TEXTURE0+Enum(unit))
	if t != s.texUnits[unit] {
		f.BindTexture(TEXTURE_2D, t)
		s.texUnits[unit] = t
	}
}

func (s *glState) bindVertexArray(f Functions, a VertexArray) {
	if a != s.vertArray {
		f.BindVertexArray(a)
		s.vertArray = a
	}
}

func (s *glState) useProgram(f Functions, p Program) {
	if p != s.prog {
		f.UseProgram(p)
		s.prog = p
	}
}

// bindFramebuffer binds fb as the render target; the zero value
// restores the default framebuffer.
func (s *glState) bindFramebuffer(f Functions, fb Framebuffer) {
	if fb != s.fbo {
		f.BindFramebuffer(FRAMEBUFFER, fb)
		s.fbo = fb
	}
}

// deleteTexture deletes t natively and drops it from every unit it was
// bound to; GL unbinds deleted textures from all units implicitly.
func (s *glState) deleteTexture(f Functions, t Texture) {
	f.DeleteTexture(t)
	for i, bound := range s.texUnits {
		if bound == t {
			s.texUnits[i] = Texture{}
		}
	}
}

// deleteVertexArray deletes a natively; GL resets the binding to zero
// if a was bound.
func (s *glState) deleteVertexArray(f Functions, a VertexArray) {
	f.DeleteVertexArray(a)
	if a == s.vertArray {
		s.vertArray = VertexArray{}
	}
}

// deleteFramebuffer deletes fb natively; GL rebinds the default
// framebuffer if fb was bound.
func (s *glState) deleteFramebuffer(f Functions, fb Framebuffer) {
	f.DeleteFramebuffer(fb)
	if fb == s.fbo {
		s.fbo = Framebuffer{}
	}
}

func (s *glState) setClearColor(f Functions, c gpudev.Color) {
	col := [4]float32{c.R, c.G, c.B, c.A}
	if col != s.clearColor {
		f.ClearColor(c.R, c.G, c.B, c.A)
		s.clearColor = col
	}
}

func (s *glState) setClearDepth(f Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearStencil(f Functions, v int) {
	if v != s.clearStencil {
		f.ClearStencil(v)
		s.clearStencil = v
	}
}

// set toggles a capability, skipping the native call when the tracked
// state already matches.
func (s *glState) set(f Functions, target Enum, enable bool) {
	var cur *bool
	switch target {
	case BLEND:
		cur = &s.blend.enable
	case DEPTH_TEST:
		cur = &s.depthTest
	case CULL_FACE:
		cur = &s.cull
	case SCISSOR_TEST:
		cur = &s.scissor
	default:
		panic("gl: unknown capability")
	}
	if *cur == enable {
		return
	}
	*cur = enable
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}

func (s *glState) setBlendFuncSeparate(f Functions, srcRGB, dstRGB, srcA, dstA Enum) {
	b := &s.blend
	if srcRGB != b.srcRGB || dstRGB != b.dstRGB || srcA != b.srcA || dstA != b.dstA {
		b.srcRGB, b.dstRGB = srcRGB, dstRGB
		b.srcA, b.dstA = srcA, dstA
		f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	}
}

func (s *glState) setDepthFunc(f Functions, df Enum) {
	if df != s.depthFunc {
		f.DepthFunc(df)
		s.depthFunc = df
	}
}

func (s *glState) setDepthMask(f Functions, mask bool) {
	if mask != s.depthMask {
		f.DepthMask(mask)
		s.depthMask = mask
	}
}

func (s *glState) setCullFace(f Functions, mode Enum) {
	if mode != s.cullMode {
		f.CullFace(mode)
		s.cullMode = mode
	}
}
