// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gpudev"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// WebGPU guaranteed limits the device reports as its capabilities.
const (
	maxTextureSize  = 8192
	maxTextureUnits = 16
)

// Uniform buffer layout. Every resolved location occupies one aligned
// slot, sized for the largest value kind (a 4x4 float matrix).
const (
	uniformSlotSize   = 64
	uniformSlotCount  = 64
	uniformBufferSize = uniformSlotSize * uniformSlotCount
)

// Device implements gpudev.Device on a gogpu/wgpu HAL device.
//
// Bindings are logical: WebGPU consumes resources through bind groups
// built at draw time, so Bind and Unbind mutate tracked slots only.
// Clear accumulates pending load-op values; a renderer drains them
// with TakeClear when it begins a render pass.
type Device struct {
	hal   hal.Device
	queue hal.Queue
	caps  gpudev.Capabilities

	boundTex  []*texture
	boundVA   *vertexArray
	boundProg *program
	boundFB   *framebuffer

	pending  gpudev.ClearParams
	applied  gpudev.RenderState
	released bool
}

var _ gpudev.Device = (*Device)(nil)

// New creates a Device from a shared device handle. The handle's
// concrete provider must expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue, the convention gogpu window
// providers follow.
func New(provider gpudev.DeviceHandle) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: no HalDevice/HalQueue accessors", ErrNoHALDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALDevice)
	}
	d := &Device{
		hal:   device,
		queue: queue,
		caps: gpudev.Capabilities{
			MaxTextureSize:  maxTextureSize,
			MaxTextureUnits: maxTextureUnits,
		},
		boundTex: make([]*texture, maxTextureUnits),
	}
	gpudev.Logger().Debug("wgpu device created",
		"max_texture_size", maxTextureSize, "texture_units", maxTextureUnits)
	return d, nil
}

// Concrete handle types.
type texture struct {
	dev      *Device
	tex      hal.Texture
	format   gpudev.TextureFormat
	size     int
	released bool
}

func (t *texture) Format() gpudev.TextureFormat { return t.format }
func (t *texture) Size() int                    { return t.size }
func (t *texture) Released() bool               { return t.released }

type shader struct {
	dev      *Device
	module   hal.ShaderModule
	stage    gpudev.ShaderStage
	released bool
}

func (s *shader) Stage() gpudev.ShaderStage { return s.stage }
func (s *shader) Released() bool            { return s.released }

type program struct {
	dev      *Device
	shaders  []*shader
	buf      hal.Buffer
	uniforms map[string]*uniform
	released bool
}

func (p *program) Released() bool { return p.released }

// vertexArray is a logical handle. WebGPU describes vertex layout as
// pipeline state, so the handle carries no native object.
type vertexArray struct {
	dev      *Device
	released bool
}

func (a *vertexArray) Released() bool { return a.released }

// framebuffer is a logical handle. A render pass targets the attached
// texture's view directly, so the handle carries no native object.
type framebuffer struct {
	dev      *Device
	tex      *texture
	released bool
}

func (fb *framebuffer) Texture() gpudev.Texture { return fb.tex }
func (fb *framebuffer) Released() bool          { return fb.released }

type uniform struct {
	prog   *program
	name   string
	offset uint64
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

// formatFor maps a texture format to its WebGPU equivalent. R16F has
// no counterpart in the HAL type set and is rejected.
func formatFor(f gpudev.TextureFormat) (types.TextureFormat, error) {
	switch f {
	case gpudev.FormatR8:
		return types.TextureFormatR8Unorm, nil
	case gpudev.FormatRGBA8:
		return types.TextureFormatRGBA8Unorm, nil
	default:
		return types.TextureFormatUndefined, fmt.Errorf("%w: %s", gpudev.ErrUnsupportedFormat, f)
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
	halFormat, err := formatFor(format)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: texture size %d", gpudev.ErrInvalidArgument, size)
	}
	if size > d.caps.MaxTextureSize {
		return nil, fmt.Errorf("%w: texture size %d exceeds limit %d", gpudev.ErrResourceAllocation, size, d.caps.MaxTextureSize)
	}
	tex, err := d.hal.CreateTexture(&hal.TextureDescriptor{
		Label: "gpudev",
		Size: hal.Extent3D{
			Width:              uint32(size),
			Height:             uint32(size),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        halFormat,
		Usage:         types.TextureUsageTextureBinding | types.TextureUsageCopyDst | types.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: texture: %v", gpudev.ErrResourceAllocation, err)
	}
	t := &texture{dev: d, tex: tex, format: format, size: size}
	if data != nil {
		d.uploadTexture(t, data)
	}
	return t, nil
}

func (d *Device) uploadTexture(t *texture, data []byte) {
	dst := &hal.ImageCopyTexture{
		Texture:  t.tex,
		MipLevel: 0,
		Origin:   hal.Origin3D{},
		Aspect:   types.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(t.format.BytesPerPixel() * t.size),
		RowsPerImage: uint32(t.size),
	}
	extent := &hal.Extent3D{
		Width:              uint32(t.size),
		Height:             uint32(t.size),
		DepthOrArrayLayers: 1,
	}
	d.queue.WriteTexture(dst, data, layout, extent)
}

func (d *Device) newUniformBuffer() (hal.Buffer, error) {
	buf, err := d.hal.CreateBuffer(&hal.BufferDescriptor{
		Label: "gpudev uniforms",
		Size:  uniformBufferSize,
		Usage: types.BufferUsageUniform | types.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: uniform buffer: %v", gpudev.ErrResourceAllocation, err)
	}
	return buf, nil
}

// CreateVertexArray implements gpudev.Device.
func (d *Device) CreateVertexArray() (gpudev.VertexArray, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	return &vertexArray{dev: d}, nil
}

// CreateFramebuffer implements gpudev.Device. Textures are created
// with render-attachment usage, so the framebuffer only records which
// texture a render pass should target.
func (d *Device) CreateFramebuffer(t gpudev.Texture) (gpudev.Framebuffer, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	tex, err := d.ownTexture(t)
	if err != nil {
		return nil, err
	}
	return &framebuffer{dev: d, tex: tex}, nil
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
	d.boundVA = arr
	return nil
}

// UnbindVertexArray implements gpudev.Device.
func (d *Device) UnbindVertexArray() error {
	if err := d.guard(); err != nil {
		return err
	}
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
	d.boundProg = prog
	return nil
}

// UnbindProgram implements gpudev.Device.
func (d *Device) UnbindProgram() error {
	if err := d.guard(); err != nil {
		return err
	}
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
	d.boundFB = f
	return nil
}

// UnbindFramebuffer implements gpudev.Device.
func (d *Device) UnbindFramebuffer() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.boundFB = nil
	return nil
}

// UniformLocation implements gpudev.Device. WebGPU has no name
// reflection, so locations are slots in the program's uniform buffer,
// assigned on first resolve and stable afterwards.
func (d *Device) UniformLocation(p gpudev.Program, name string) (gpudev.Uniform, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	prog, err := d.ownProgram(p)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty uniform name", gpudev.ErrInvalidArgument)
	}
	if u, ok := prog.uniforms[name]; ok {
		return u, nil
	}
	if len(prog.uniforms) >= uniformSlotCount {
		return nil, fmt.Errorf("%w: %d locations", ErrUniformSpace, uniformSlotCount)
	}
	u := &uniform{
		prog:   prog,
		name:   name,
		offset: uint64(len(prog.uniforms)) * uniformSlotSize,
	}
	prog.uniforms[name] = u
	return u, nil
}

// encodeUniform serializes a uniform value as little-endian words, the
// layout WebGPU uniform blocks expect for scalars, vectors and
// column-major matrices.
func encodeUniform(v gpudev.UniformValue) []byte {
	if v.Kind() == gpudev.UniformKindInt {
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(v.Int()))
		return out
	}
	f := v.Floats()
	out := make([]byte, 4*len(f))
	for i, x := range f {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(x))
	}
	return out
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
	d.queue.WriteBuffer(un.prog.buf, un.offset, encodeUniform(v))
	return nil
}

// Clear implements gpudev.Device. Non-empty params merge into the
// pending load-op state per target; an empty params leaves it alone.
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
	if c := params.Color; c != nil {
		cc := *c
		d.pending.Color = &cc
	}
	if dp := params.Depth; dp != nil {
		dd := *dp
		d.pending.Depth = &dd
	}
	if st := params.Stencil; st != nil {
		ss := *st
		d.pending.Stencil = &ss
	}
	if r := params.Rect; r != nil {
		rr := *r
		d.pending.Rect = &rr
	}
	return nil
}

// TakeClear drains the pending clear state accumulated by Clear calls.
// A renderer calls it when beginning a render pass and translates the
// set targets into load operations.
func (d *Device) TakeClear() gpudev.ClearParams {
	p := d.pending
	d.pending = gpudev.ClearParams{}
	return p
}

// SetRenderState implements gpudev.Device. The state is validated and
// recorded; WebGPU realizes it as immutable pipeline state at draw
// time.
func (d *Device) SetRenderState(s gpudev.RenderState) error {
	if err := d.guard(); err != nil {
		return err
	}
	if b := s.Blend; b != nil {
		if b.SrcFactor > gpudev.BlendDstColor || b.DstFactor > gpudev.BlendDstColor {
			return fmt.Errorf("%w: blend factors %d/%d", gpudev.ErrInvalidArgument, b.SrcFactor, b.DstFactor)
		}
	}
	if dp := s.Depth; dp != nil && dp.Func > gpudev.DepthAlways {
		return fmt.Errorf("%w: depth func %d", gpudev.ErrInvalidArgument, dp.Func)
	}
	if s.Cull > gpudev.CullFront {
		return fmt.Errorf("%w: cull mode %d", gpudev.ErrInvalidArgument, s.Cull)
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
	for i, bound := range d.boundTex {
		if bound == tex {
			d.boundTex[i] = nil
		}
	}
	d.hal.DestroyTexture(tex.tex)
	tex.released = true
	tex.tex = nil
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
	d.hal.DestroyShaderModule(sh.module)
	sh.released = true
	sh.module = nil
	return nil
}

// DeleteProgram implements gpudev.Device.
func (d *Device) DeleteProgram(p gpudev.Program) error {
	if err := d.guard(); err != nil {
		return err
	}
	prog, err := d.ownProgram(p)
	if err != nil {
		return err
	}
	if d.boundProg == prog {
		d.boundProg = nil
	}
	d.hal.DestroyBuffer(prog.buf)
	prog.released = true
	prog.buf = nil
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
	arr.released = true
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
	f.released = true
	return nil
}

// Caps implements gpudev.Device.
func (d *Device) Caps() gpudev.Capabilities { return d.caps }

// Release implements gpudev.Device. The HAL device and queue belong to
// the provider and stay alive; only this wrapper is retired.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	gpudev.Logger().Debug("wgpu device released")
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
