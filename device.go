// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

// Capabilities describes the limits of a concrete device.
// Backends query the native context once at construction time.
type Capabilities struct {
	// MaxTextureSize is the maximum square texture edge length.
	MaxTextureSize int

	// MaxTextureUnits is the number of texture binding units.
	MaxTextureUnits int
}

// Device is the abstract contract every concrete GPU backend implements.
//
// A Device owns its native context and the binding state derived from
// it. All operations are synchronous and must be issued from a single
// goroutine; the device neither reorders nor buffers calls.
//
// Resource factories return handles owned by the caller. Creation never
// leaves a new resource bound to any slot. Deletion clears every
// binding slot that referenced the handle and tombstones it: any later
// use fails with ErrUseAfterRelease.
type Device interface {
	// CreateTexture allocates an uninitialized square size×size texture.
	// Fails wrapping ErrInvalidArgument if size is not positive, and
	// wrapping ErrResourceAllocation if the native context cannot
	// allocate, including sizes exceeding Caps().MaxTextureSize.
	CreateTexture(format TextureFormat, size int) (Texture, error)

	// CreateTextureFromData allocates a texture and uploads data, whose
	// length must equal format.DataLen(size), else ErrInvalidArgument.
	CreateTextureFromData(format TextureFormat, size int, data []byte) (Texture, error)

	// CreateShader compiles source for the given stage. On compiler
	// failure it returns a *CompileError carrying the backend
	// diagnostic; no handle is returned for a failed compilation.
	CreateShader(stage ShaderStage, source string) (Shader, error)

	// CreateProgram links the given shader stages. At minimum a vertex
	// and a fragment shader are required, else ErrInvalidArgument. Link
	// failure returns a *LinkError with the backend diagnostic.
	CreateProgram(shaders ...Shader) (Program, error)

	// CreateVertexArray allocates a native vertex array object.
	CreateVertexArray() (VertexArray, error)

	// CreateFramebuffer allocates a render target with t as its color
	// attachment. The texture stays owned by the caller and must
	// outlive the framebuffer. Creation leaves the render-target slot
	// unchanged.
	CreateFramebuffer(t Texture) (Framebuffer, error)

	// BindTexture binds t to the given texture unit, replacing any
	// previous occupant. The unit must be within
	// [0, Caps().MaxTextureUnits).
	BindTexture(t Texture, unit int) error

	// UnbindTexture clears the given unit. Idempotent.
	UnbindTexture(unit int) error

	// BindVertexArray binds va to the single vertex-array slot.
	BindVertexArray(va VertexArray) error

	// UnbindVertexArray clears the vertex-array slot. Idempotent.
	UnbindVertexArray() error

	// BindProgram makes p the current program for uniform writes.
	BindProgram(p Program) error

	// UnbindProgram clears the current program. Idempotent.
	UnbindProgram() error

	// BindFramebuffer directs rendering into fb instead of the default
	// target.
	BindFramebuffer(fb Framebuffer) error

	// UnbindFramebuffer restores the default render target. Idempotent.
	UnbindFramebuffer() error

	// UniformLocation resolves the named uniform of p. The returned
	// location is only writable while p is the bound program.
	UniformLocation(p Program, name string) (Uniform, error)

	// SetUniform writes v to u in the currently bound program. Fails
	// with ErrInvalidArgument if no program is bound or u belongs to a
	// different program.
	SetUniform(u Uniform, v UniformValue) error

	// Clear clears the targets selected by params in a single native
	// call. An empty params issues no native call at all.
	Clear(params ClearParams) error

	// SetRenderState applies the pipeline toggle bundle, diffing
	// against the previously applied state.
	SetRenderState(s RenderState) error

	// RenderState returns the currently applied bundle.
	RenderState() RenderState

	// ResetRenderState restores DefaultRenderState.
	ResetRenderState() error

	// DeleteTexture releases t and clears any unit it was bound to.
	DeleteTexture(t Texture) error

	// DeleteShader releases s. Programs linked from s are unaffected.
	DeleteShader(s Shader) error

	// DeleteProgram releases p, unbinding it first if it is current.
	DeleteProgram(p Program) error

	// DeleteVertexArray releases va, clearing the vertex-array slot if
	// va occupies it.
	DeleteVertexArray(va VertexArray) error

	// DeleteFramebuffer releases fb, restoring the default render
	// target if fb is bound. The attached texture is not released.
	DeleteFramebuffer(fb Framebuffer) error

	// Caps returns the device limits.
	Caps() Capabilities

	// Release frees device-owned resources. The device must not be
	// used afterwards. Handles the caller still owns are not released.
	Release()
}

// WithRenderState runs fn with s applied and restores the previous
// state on every exit path, including error returns and panics.
//
// The restore uses the device's state diffing, so nesting is cheap when
// the inner state only differs partially.
func WithRenderState(d Device, s RenderState, fn func() error) error {
	prev := d.RenderState()
	if err := d.SetRenderState(s); err != nil {
		return err
	}
	defer func() {
		// Restore on panic exits too.
		if err := d.SetRenderState(prev); err != nil {
			Logger().Warn("render state restore failed", "err", err)
		}
	}()
	return fn()
}
