// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// Texture is an opaque handle to a native GPU texture.
//
// A texture is exclusively owned by the caller that created it; the
// device retains it only transiently as a binding back-reference.
// Release it with Device.DeleteTexture.
type Texture interface {
	// Format returns the pixel format the texture was created with.
	Format() TextureFormat

	// Size returns the square edge length in pixels.
	Size() int

	// Released reports whether the native object has been deleted.
	// Operations on a released handle fail with ErrUseAfterRelease.
	Released() bool
}

// Shader is an opaque handle to a compiled native shader stage.
type Shader interface {
	// Stage returns the pipeline stage the shader was compiled for.
	Stage() ShaderStage

	// Released reports whether the native object has been deleted.
	Released() bool
}

// Program is an opaque handle to a linked native shader program.
type Program interface {
	// Released reports whether the native object has been deleted.
	Released() bool
}

// VertexArray is an opaque handle to a native vertex array object.
// At most one vertex array is bound to a device at a time.
type VertexArray interface {
	// Released reports whether the native object has been deleted.
	Released() bool
}

// Framebuffer is an opaque handle to a render target backed by a
// single color texture. The texture stays owned by the caller; deleting
// the framebuffer releases only the framebuffer object.
type Framebuffer interface {
	// Texture returns the color texture the framebuffer renders into.
	Texture() Texture

	// Released reports whether the native object has been deleted.
	Released() bool
}

// Uniform is a resolved location of a named program parameter.
// A Uniform belongs to the program it was resolved from; writing it
// requires that program to be the currently bound one.
type Uniform interface {
	// Name returns the uniform name the location was resolved from.
	Name() string
}
