// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"

	"github.com/gogpu/gpudev"
)

// Device implements gpudev.Device on a native GL context.
//
// It keeps two views of the binding state: the tracked native state in
// glState, and the logical handle-level view exposed through the
// binding accessors. The two are updated together in every operation,
// so they never diverge.
type Device struct {
	funcs Functions
	caps  gpudev.Capabilities
	state glState

	boundTex  []*texture
	boundVA   *vertexArray
	boundProg *program
	boundFB   *framebuffer

	applied  gpudev.RenderState
	released bool
}

var _ gpudev.Device = (*Device)(nil)

// New wraps ctx in a Device. It queries the context limits once; a
// context reporting no texture units or a non-positive maximum texture
// size is rejected with ErrContextLimits.
func New(ctx Functions) (*Device, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	maxSize := ctx.GetInteger(MAX_TEXTURE_SIZE)
	units := ctx.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	if maxSize <= 0 || units <= 0 {
		return nil, fmt.Errorf("%w: max texture size %d, texture units %d", ErrContextLimits, maxSize, units)
	}
	d := &Device{
		funcs: ctx,
		caps: gpudev.Capabilities{
			MaxTextureSize:  maxSize,
			MaxTextureUnits: units,
		},
		state:    newGLState(units),
		boundTex: make([]*texture, units),
	}
	gpudev.Logger().Debug("gl device created",
		"max_texture_size", maxSize, "texture_units", units)
	return d, nil
}

// Concrete handle types. Each carries a back-pointer to its device so
// handles cannot cross devices undetected.
type texture struct {
	dev      *Device
	obj      Texture
	format   gpudev.TextureFormat
	size     int
	released bool
}

func (t *texture) Format() gpudev.TextureFormat { return t.format }
func (t *texture) Size() int                    { return t.size }
func (t *texture) Released() bool               { return t.released }

type shader struct {
	dev      *Device
	obj      Shader
	stage    gpudev.ShaderStage
	released bool
}

func (s *shader) Stage() gpudev.ShaderStage { return s.stage }
func (s *shader) Released() bool            { return s.released }

type program struct {
	dev      *Device
	obj      Program
	released bool
}

func (p *program) Released() bool { return p.released }

type vertexArray struct {
	dev      *Device
	obj      VertexArray
	released bool
}

func (a *vertexArray) Released() bool { return a.released }

type framebuffer struct {
	dev      *Device
	obj      Framebuffer
	tex      *texture
	released bool
}

func (fb *framebuffer) Texture() gpudev.Texture { return fb.tex }
func (fb *framebuffer) Released() bool          { return fb.released }

type uniform struct {
	prog *program
	loc  UniformLocation
	name string
}

func (u *uniform) Name() string { return u.name }

func (d *Device) guard() error {
	if d.released {
		return ErrDeviceReleased
	}
	return nil
}

func (d *Device) ownTexture(t gpudev.Texture) (*texture, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil texture", gpudev.ErrInvalidArgument)
	}
	tex, ok := t.(*texture)
	if !ok || tex.dev != d {
		return nil, ErrForeignHandle
	}
	if tex.released {
		return nil, gpudev.ErrUseAfterRelease
	}
	return tex, nil
}

func (d *Device) ownShader(s gpudev.Shader) (*shader, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil shader", gpudev.ErrInvalidArgument)
	}
	sh, ok := s.(*shader)
	if !ok || sh.dev != d {
		return nil, ErrForeignHandle
	}
	if sh.released {
		return nil, gpudev.ErrUseAfterRelease
	}
	return sh, nil
}

func (d *Device) ownProgram(p gpudev.Program) (*program, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil program", gpudev.ErrInvalidArgument)
	}
	prog, ok := p.(*program)
	if !ok || prog.dev != d {
		return nil, ErrForeignHandle
	}
	if prog.released {
		return nil, gpudev.ErrUseAfterRelease
	}
	return prog, nil
}

func (d *Device) ownVertexArray(va gpudev.VertexArray) (*vertexArray, error) {
	if va == nil {
		return nil, fmt.Errorf("%w: nil vertex array", gpudev.ErrInvalidArgument)
	}
	arr, ok := va.(*vertexArray)
	if !ok || arr.dev != d {
		return nil, ErrForeignHandle
	}
	if arr.released {
		return nil, gpudev.ErrUseAfterRelease
	}
	return arr, nil
}

func (d *Device) ownFramebuffer(fb gpudev.Framebuffer) (*framebuffer, error) {
	if fb == nil {
		return nil, fmt.Errorf("%w: nil framebuffer", gpudev.ErrInvalidArgument)
	}
	f, ok := fb.(*framebuffer)
	if !ok || f.dev != d {
		return nil, ErrForeignHandle
	}
	if f.released {
		return nil, gpudev.ErrUseAfterRelease
	}
	return f, nil
}

// formatEnums maps a texture format to its GL internal format, pixel
// format and component type.
func formatEnums(f gpudev.TextureFormat) (internal, format, ty Enum, err error) {
	switch f {
	case gpudev.FormatR8:
		return R8, RED, UNSIGNED_BYTE, nil
	case gpudev.FormatR16F:
		return R16F, RED, HALF_FLOAT, nil
	case gpudev.FormatRGBA8:
		return RGBA8, RGBA, UNSIGNED_BYTE, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: %s", gpudev.ErrUnsupportedFormat, f)
	}
}

// CreateTexture implements gpudev.Device.
func (d *Device) CreateTexture(format gpudev.TextureFormat, size int) (gpudev.Texture, error) {
	return d.newTexture(format, size, nil)
}

// CreateTextureFromData implements gpudev.Device.
func (d *Device) CreateTextureFromData(format gpudev.TextureFormat, size int, data []byte) (gpudev.Texture, error) {
	if want := format.DataLen(size); len(data) != want {
		return nil, fmt.Errorf("%w: texture data length %d, want %d", gpudev.ErrInvalidArgument, len(data), want)
	}
	return d.newTexture(format, size, data)
}

func (d *Device) newTexture(format gpudev.TextureFormat, size int, data []byte) (gpudev.Texture, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	internal, pix, ty, err := formatEnums(format)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: texture size %d", gpudev.ErrInvalidArgument, size)
	}
	// Exceeding the context limit is an allocation failure the caller
	// may recover from with a smaller size, not a caller bug.
	if size > d.caps.MaxTextureSize {
		return nil, fmt.Errorf("%w: texture size %d exceeds limit %d", gpudev.ErrResourceAllocation, size, d.caps.MaxTextureSize)
	}
	obj := d.funcs.CreateTexture()
	if !obj.Valid() {
		return nil, fmt.Errorf("%w: texture", gpudev.ErrResourceAllocation)
	}

	// Defining the texture requires binding it. Use unit 0 as scratch
	// and restore its previous occupant so creation leaves no binding
	// slot observably changed.
	prev := d.state.texUnits[0]
	d.state.bindTexture(d.funcs, 0, obj)
	d.funcs.TexImage2D(TEXTURE_2D, 0, internal, size, size, pix, ty)
	if data != nil {
		d.funcs.TexSubImage2D(TEXTURE_2D, 0, 0, 0, size, size, pix, ty, data)
	}
	d.funcs.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int(LINEAR))
	d.funcs.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int(LINEAR))
	d.funcs.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, int(CLAMP_TO_EDGE))
	d.funcs.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, int(CLAMP_TO_EDGE))
	d.state.bindTexture(d.funcs, 0, prev)

	return &texture{dev: d, obj: obj, format: format, size: size}, nil
}

// CreateVertexArray implements gpudev.Device.
func (d *Device) CreateVertexArray() (gpudev.VertexArray, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	obj := d.funcs.CreateVertexArray()
	if !obj.Valid() {
		return nil, fmt.Errorf("%w: vertex array", gpudev.ErrResourceAllocation)
	}
	return &vertexArray{dev: d, obj: obj}, nil
}

// CreateFramebuffer implements gpudev.Device. Attaching the texture
// requires binding the new framebuffer; the previous render-target
// binding is restored before returning.
func (d *Device) CreateFramebuffer(t gpudev.Texture) (gpudev.Framebuffer, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	tex, err := d.ownTexture(t)
	if err != nil {
		return nil, err
	}
	obj := d.funcs.CreateFramebuffer()
	if !obj.Valid() {
		return nil, fmt.Errorf("%w: framebuffer", gpudev.ErrResourceAllocation)
	}

	prev := d.state.fbo
	d.state.bindFramebuffer(d.funcs, obj)
	d.funcs.FramebufferTexture2D(FRAMEBUFFER, COLOR_ATTACHMENT0, TEXTURE_2D, tex.obj, 0)
	status := d.funcs.CheckFramebufferStatus(FRAMEBUFFER)
	d.state.bindFramebuffer(d.funcs, prev)
	if status != FRAMEBUFFER_COMPLETE {
		d.state.deleteFramebuffer(d.funcs, obj)
		return nil, fmt.Errorf("%w: framebuffer incomplete, status 0x%04x", gpudev.ErrResourceAllocation, uint(status))
	}

	return &framebuffer{dev: d, obj: obj, tex: tex}, nil
}

// BindTexture implements gpudev.Device.
func (d *Device) BindTexture(t gpudev.Texture, unit int) error {
	if err := d.guard(); err != nil {
		return err
	}
	if unit < 0 || unit >= d.caps.MaxTextureUnits {
		return fmt.Errorf("%w: texture unit %d outside [0, %d)", gpudev.ErrInvalidArgument, unit, d.caps.MaxTextureUnits)
	}
	tex, err := d.ownTexture(t)
	if err != nil {
		return err
	}
	d.state.bindTexture(d.funcs, unit, tex.obj)
	d.boundTex[unit] = tex
	return nil
}

// UnbindTexture implements gpudev.Device.
func (d *Device) UnbindTexture(unit int) error {
	if err := d.guard(); err != nil {
		return err
	}
	if unit < 0 || unit >= d.caps.MaxTextureUnits {
		return fmt.Errorf("%w: texture unit %d outside [0, %d)", gpudev.ErrInvalidArgument, unit, d.caps.MaxTextureUnits)
	}
	if d.boundTex[unit] == nil {
		return nil
	}
	d.state.bindTexture(d.funcs, unit, Texture{})
	d.boundTex[unit] = nil
	return nil
}

// BindVertexArray implements gpudev.Device.
func (d *Device) BindVertexArray(va gpudev.VertexArray) error {
	if err := d.guard(); err != nil {
		return err
	}
	arr, err := d.ownVertexArray(va)
	if err != nil {
		return err
	}
	d.state.bindVertexArray(d.funcs, arr.obj)
	d.boundVA = arr
	return nil
}

// UnbindVertexArray implements gpudev.Device.
func (d *Device) UnbindVertexArray() error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.boundVA == nil {
		return nil
	}
	d.state.bindVertexArray(d.funcs, VertexArray{})
	d.boundVA = nil
	return nil
}

// BindProgram implements gpudev.Device.
func (d *Device) BindProgram(p gpudev.Program) error {
	if err := d.guard(); err != nil {
		return err
	}
	prog, err := d.ownProgram(p)
	if err != nil {
		return err
	}
	d.state.useProgram(d.funcs, prog.obj)
	d.boundProg = prog
	return nil
}

// UnbindProgram implements gpudev.Device.
func (d *Device) UnbindProgram() error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.boundProg == nil {
		return nil
	}
	d.state.useProgram(d.funcs, Program{})
	d.boundProg = nil
	return nil
}

// BindFramebuffer implements gpudev.Device.
func (d *Device) BindFramebuffer(fb gpudev.Framebuffer) error {
	if err := d.guard(); err != nil {
		return err
	}
	f, err := d.ownFramebuffer(fb)
	if err != nil {
		return err
	}
	d.state.bindFramebuffer(d.funcs, f.obj)
	d.boundFB = f
	return nil
}

// UnbindFramebuffer implements gpudev.Device.
func (d *Device) UnbindFramebuffer() error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.boundFB == nil {
		return nil
	}
	d.state.bindFramebuffer(d.funcs, Framebuffer{})
	d.boundFB = nil
	return nil
}

// UniformLocation implements gpudev.Device.
func (d *Device) UniformLocation(p gpudev.Program, name string) (gpudev.Uniform, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	prog, err := d.ownProgram(p)
	if err != nil {
		return nil, err
	}
	loc := d.funcs.GetUniformLocation(prog.obj, name)
	if !loc.Valid() {
		return nil, fmt.Errorf("%w: uniform %q not found", gpudev.ErrInvalidArgument, name)
	}
	return &uniform{prog: prog, loc: loc, name: name}, nil
}

// SetUniform implements gpudev.Device.
func (d *Device) SetUniform(u gpudev.Uniform, v gpudev.UniformValue) error {
	if err := d.guard(); err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: nil uniform", gpudev.ErrInvalidArgument)
	}
	un, ok := u.(*uniform)
	if !ok || un.prog.dev != d {
		return ErrForeignHandle
	}
	if un.prog.released {
		return gpudev.ErrUseAfterRelease
	}
	if d.boundProg != un.prog {
		return fmt.Errorf("%w: uniform %q written while its program is not bound", gpudev.ErrInvalidArgument, un.name)
	}
	switch v.Kind() {
	case gpudev.UniformKindInt:
		d.funcs.Uniform1i(un.loc, int(v.Int()))
	case gpudev.UniformKindFloat:
		f := v.Floats()
		d.funcs.Uniform1f(un.loc, f[0])
	case gpudev.UniformKindVec2:
		f := v.Floats()
		d.funcs.Uniform2f(un.loc, f[0], f[1])
	case gpudev.UniformKindVec4:
		f := v.Floats()
		d.funcs.Uniform4f(un.loc, f[0], f[1], f[2], f[3])
	case gpudev.UniformKindMat4:
		d.funcs.UniformMatrix4fv(un.loc, v.Floats())
	default:
		return fmt.Errorf("%w: unknown uniform kind %d", gpudev.ErrInvalidArgument, v.Kind())
	}
	return nil
}

// Clear implements gpudev.Device. An empty params issues no native
// calls; otherwise exactly one Clear call is made, scissored to
// params.Rect when set.
func (d *Device) Clear(params gpudev.ClearParams) error {
	if err := d.guard(); err != nil {
		return err
	}
	if params.Empty() {
		return nil
	}
	if r := params.Rect; r != nil && (r.Width < 0 || r.Height < 0) {
		return fmt.Errorf("%w: clear rect %dx%d", gpudev.ErrInvalidArgument, r.Width, r.Height)
	}

	var mask Enum
	if c := params.Color; c != nil {
		d.state.setClearColor(d.funcs, *c)
		mask |= COLOR_BUFFER_BIT
	}
	if dp := params.Depth; dp != nil {
		d.state.setClearDepth(d.funcs, *dp)
		mask |= DEPTH_BUFFER_BIT
	}
	if st := params.Stencil; st != nil {
		d.state.setClearStencil(d.funcs, int(*st))
		mask |= STENCIL_BUFFER_BIT
	}

	if r := params.Rect; r != nil {
		prevScissor := d.state.scissor
		d.funcs.Scissor(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
		d.state.set(d.funcs, SCISSOR_TEST, true)
		d.funcs.Clear(mask)
		d.state.set(d.funcs, SCISSOR_TEST, prevScissor)
		return nil
	}
	d.funcs.Clear(mask)
	return nil
}

func blendFactorEnum(f gpudev.BlendFactor) (Enum, error) {
	switch f {
	case gpudev.BlendOne:
		return ONE, nil
	case gpudev.BlendZero:
		return ZERO, nil
	case gpudev.BlendSrcAlpha:
		return SRC_ALPHA, nil
	case gpudev.BlendOneMinusSrcAlpha:
		return ONE_MINUS_SRC_ALPHA, nil
	case gpudev.BlendDstColor:
		return DST_COLOR, nil
	default:
		return 0, fmt.Errorf("%w: blend factor %d", gpudev.ErrInvalidArgument, f)
	}
}

func depthFuncEnum(f gpudev.DepthFunc) (Enum, error) {
	switch f {
	case gpudev.DepthLess:
		return LESS, nil
	case gpudev.DepthAlways:
		return ALWAYS, nil
	default:
		return 0, fmt.Errorf("%w: depth func %d", gpudev.ErrInvalidArgument, f)
	}
}

func cullModeEnum(m gpudev.CullMode) (Enum, bool, error) {
	switch m {
	case gpudev.CullNone:
		return 0, false, nil
	case gpudev.CullBack:
		return BACK, true, nil
	case gpudev.CullFront:
		return FRONT, true, nil
	default:
		return 0, false, fmt.Errorf("%w: cull mode %d", gpudev.ErrInvalidArgument, m)
	}
}

// SetRenderState implements gpudev.Device. The requested state is
// validated in full before any native call, so a rejected state leaves
// the applied state untouched.
func (d *Device) SetRenderState(s gpudev.RenderState) error {
	if err := d.guard(); err != nil {
		return err
	}
	var srcE, dstE Enum
	if b := s.Blend; b != nil {
		var err error
		if srcE, err = blendFactorEnum(b.SrcFactor); err != nil {
			return err
		}
		if dstE, err = blendFactorEnum(b.DstFactor); err != nil {
			return err
		}
	}
	var depthE Enum
	if dp := s.Depth; dp != nil {
		var err error
		if depthE, err = depthFuncEnum(dp.Func); err != nil {
			return err
		}
	}
	cullE, cullOn, err := cullModeEnum(s.Cull)
	if err != nil {
		return err
	}

	if s.Blend != nil {
		d.state.set(d.funcs, BLEND, true)
		d.state.setBlendFuncSeparate(d.funcs, srcE, dstE, srcE, dstE)
	} else {
		d.state.set(d.funcs, BLEND, false)
	}
	if dp := s.Depth; dp != nil {
		d.state.set(d.funcs, DEPTH_TEST, true)
		d.state.setDepthFunc(d.funcs, depthE)
		d.state.setDepthMask(d.funcs, dp.Write)
	} else {
		d.state.set(d.funcs, DEPTH_TEST, false)
	}
	if cullOn {
		d.state.set(d.funcs, CULL_FACE, true)
		d.state.setCullFace(d.funcs, cullE)
	} else {
		d.state.set(d.funcs, CULL_FACE, false)
	}

	d.applied = cloneRenderState(s)
	return nil
}

// RenderState implements gpudev.Device.
func (d *Device) RenderState() gpudev.RenderState {
	return cloneRenderState(d.applied)
}

// ResetRenderState implements gpudev.Device.
func (d *Device) ResetRenderState() error {
	return d.SetRenderState(gpudev.DefaultRenderState)
}

// cloneRenderState copies the pointed-to sub-states so later caller
// mutations cannot alias the applied state.
func cloneRenderState(s gpudev.RenderState) gpudev.RenderState {
	if s.Blend != nil {
		b := *s.Blend
		s.Blend = &b
	}
	if s.Depth != nil {
		dp := *s.Depth
		s.Depth = &dp
	}
	return s
}

// DeleteTexture implements gpudev.Device.
func (d *Device) DeleteTexture(t gpudev.Texture) error {
	if err := d.guard(); err != nil {
		return err
	}
	tex, err := d.ownTexture(t)
	if err != nil {
		return err
	}
	d.state.deleteTexture(d.funcs, tex.obj)
	for i, bound := range d.boundTex {
		if bound == tex {
			d.boundTex[i] = nil
		}
	}
	tex.released = true
	tex.obj = Texture{}
	return nil
}

// DeleteShader implements gpudev.Device.
func (d *Device) DeleteShader(s gpudev.Shader) error {
	if err := d.guard(); err != nil {
		return err
	}
	sh, err := d.ownShader(s)
	if err != nil {
		return err
	}
	d.funcs.DeleteShader(sh.obj)
	sh.released = true
	sh.obj = Shader{}
	return nil
}

// DeleteProgram implements gpudev.Device. A currently bound program is
// unbound first; GL would otherwise defer the native deletion until
// the program stops being current.
func (d *Device) DeleteProgram(p gpudev.Program) error {
	if err := d.guard(); err != nil {
		return err
	}
	prog, err := d.ownProgram(p)
	if err != nil {
		return err
	}
	if d.boundProg == prog {
		d.state.useProgram(d.funcs, Program{})
		d.boundProg = nil
	}
	d.funcs.DeleteProgram(prog.obj)
	prog.released = true
	prog.obj = Program{}
	return nil
}

// DeleteVertexArray implements gpudev.Device.
func (d *Device) DeleteVertexArray(va gpudev.VertexArray) error {
	if err := d.guard(); err != nil {
		return err
	}
	arr, err := d.ownVertexArray(va)
	if err != nil {
		return err
	}
	if d.boundVA == arr {
		d.boundVA = nil
	}
	d.state.deleteVertexArray(d.funcs, arr.obj)
	arr.released = true
	arr.obj = VertexArray{}
	return nil
}

// DeleteFramebuffer implements gpudev.Device. The attached texture is
// not released; it stays owned by the caller.
func (d *Device) DeleteFramebuffer(fb gpudev.Framebuffer) error {
	if err := d.guard(); err != nil {
		return err
	}
	f, err := d.ownFramebuffer(fb)
	if err != nil {
		return err
	}
	if d.boundFB == f {
		d.boundFB = nil
	}
	d.state.deleteFramebuffer(d.funcs, f.obj)
	f.released = true
	f.obj = Framebuffer{}
	return nil
}

// Caps implements gpudev.Device.
func (d *Device) Caps() gpudev.Capabilities { return d.caps }

// Release implements gpudev.Device. Handles created by the device stay
// owned by the caller and are not deleted here.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	gpudev.Logger().Debug("gl device released")
}

// TextureBinding returns the texture logically bound to unit, or nil.
func (d *Device) TextureBinding(unit int) gpudev.Texture {
	if unit < 0 || unit >= len(d.boundTex) || d.boundTex[unit] == nil {
		return nil
	}
	return d.boundTex[unit]
}

// VertexArrayBinding returns the bound vertex array, or nil.
func (d *Device) VertexArrayBinding() gpudev.VertexArray {
	if d.boundVA == nil {
		return nil
	}
	return d.boundVA
}

// ProgramBinding returns the bound program, or nil.
func (d *Device) ProgramBinding() gpudev.Program {
	if d.boundProg == nil {
		return nil
	}
	return d.boundProg
}

// FramebufferBinding returns the bound framebuffer, or nil when the
// default render target is active.
func (d *Device) FramebufferBinding() gpudev.Framebuffer {
	if d.boundFB == nil {
		return nil
	}
	return d.boundFB
}
