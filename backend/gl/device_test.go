// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gpudev"
)

// fakeContext is a recording Functions implementation with a native
// binding model matching real GL: BindTexture affects whichever unit
// the last ActiveTexture call selected.
type fakeContext struct {
	calls []string

	nextID uint
	active int
	units  []uint
	vao    uint
	prog   uint
	fbo    uint

	maxSize  int
	maxUnits int

	compileFail bool
	compileLog  string
	linkFail    bool
	linkLog     string
	fboStatus   Enum

	uniforms map[string]int
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		maxSize:  4096,
		maxUnits: 8,
		units:    make([]uint, 8),
		uniforms: make(map[string]int),
	}
}

func (c *fakeContext) record(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *fakeContext) reset() { c.calls = nil }

func (c *fakeContext) count(prefix string) int {
	n := 0
	for _, call := range c.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func (c *fakeContext) CreateTexture() Texture {
	c.nextID++
	c.record("CreateTexture")
	return Texture{V: c.nextID}
}

func (c *fakeContext) DeleteTexture(t Texture) {
	c.record("DeleteTexture(%d)", t.V)
	for i, u := range c.units {
		if u == t.V {
			c.units[i] = 0
		}
	}
}

func (c *fakeContext) CreateShader(ty Enum) Shader {
	c.nextID++
	c.record("CreateShader")
	return Shader{V: c.nextID}
}

func (c *fakeContext) DeleteShader(s Shader) { c.record("DeleteShader(%d)", s.V) }

func (c *fakeContext) CreateProgram() Program {
	c.nextID++
	c.record("CreateProgram")
	return Program{V: c.nextID}
}

func (c *fakeContext) DeleteProgram(p Program) { c.record("DeleteProgram(%d)", p.V) }

func (c *fakeContext) CreateVertexArray() VertexArray {
	c.nextID++
	c.record("CreateVertexArray")
	return VertexArray{V: c.nextID}
}

func (c *fakeContext) DeleteVertexArray(a VertexArray) {
	c.record("DeleteVertexArray(%d)", a.V)
	if c.vao == a.V {
		c.vao = 0
	}
}

func (c *fakeContext) CreateFramebuffer() Framebuffer {
	c.nextID++
	c.record("CreateFramebuffer")
	return Framebuffer{V: c.nextID}
}

func (c *fakeContext) DeleteFramebuffer(f Framebuffer) {
	c.record("DeleteFramebuffer(%d)", f.V)
	if c.fbo == f.V {
		c.fbo = 0
	}
}

func (c *fakeContext) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum) {
	c.record("TexImage2D")
}

func (c *fakeContext) TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte) {
	c.record("TexSubImage2D")
}

func (c *fakeContext) TexParameteri(target, pname Enum, param int) { c.record("TexParameteri") }

func (c *fakeContext) ActiveTexture(unit Enum) {
	c.active = int(unit - TEXTURE0)
	c.record("ActiveTexture(%d)", c.active)
}

func (c *fakeContext) BindTexture(target Enum, t Texture) {
	c.units[c.active] = t.V
	c.record("BindTexture(%d)", t.V)
}

func (c *fakeContext) BindVertexArray(a VertexArray) {
	c.vao = a.V
	c.record("BindVertexArray(%d)", a.V)
}

func (c *fakeContext) UseProgram(p Program) {
	c.prog = p.V
	c.record("UseProgram(%d)", p.V)
}

func (c *fakeContext) BindFramebuffer(target Enum, f Framebuffer) {
	c.fbo = f.V
	c.record("BindFramebuffer(%d)", f.V)
}

func (c *fakeContext) FramebufferTexture2D(target, attachment, textarget Enum, t Texture, level int) {
	c.record("FramebufferTexture2D(%d)", t.V)
}

func (c *fakeContext) CheckFramebufferStatus(target Enum) Enum {
	if c.fboStatus != 0 {
		return c.fboStatus
	}
	return FRAMEBUFFER_COMPLETE
}

func (c *fakeContext) ShaderSource(s Shader, src string) { c.record("ShaderSource") }
func (c *fakeContext) CompileShader(s Shader)            { c.record("CompileShader") }

func (c *fakeContext) GetShaderi(s Shader, pname Enum) int {
	if c.compileFail {
		return 0
	}
	return 1
}

func (c *fakeContext) GetShaderInfoLog(s Shader) string { return c.compileLog }

func (c *fakeContext) AttachShader(p Program, s Shader) { c.record("AttachShader") }
func (c *fakeContext) LinkProgram(p Program)            { c.record("LinkProgram") }

func (c *fakeContext) GetProgrami(p Program, pname Enum) int {
	if c.linkFail {
		return 0
	}
	return 1
}

func (c *fakeContext) GetProgramInfoLog(p Program) string { return c.linkLog }

func (c *fakeContext) GetUniformLocation(p Program, name string) UniformLocation {
	if loc, ok := c.uniforms[name]; ok {
		return UniformLocation{V: loc}
	}
	return UniformLocation{V: -1}
}

func (c *fakeContext) Uniform1i(dst UniformLocation, v int)     { c.record("Uniform1i") }
func (c *fakeContext) Uniform1f(dst UniformLocation, v float32) { c.record("Uniform1f") }
func (c *fakeContext) Uniform2f(dst UniformLocation, v0, v1 float32) {
	c.record("Uniform2f")
}
func (c *fakeContext) Uniform4f(dst UniformLocation, v0, v1, v2, v3 float32) {
	c.record("Uniform4f")
}
func (c *fakeContext) UniformMatrix4fv(dst UniformLocation, values []float32) {
	c.record("UniformMatrix4fv")
}

func (c *fakeContext) Enable(target Enum)  { c.record("Enable(0x%04x)", uint(target)) }
func (c *fakeContext) Disable(target Enum) { c.record("Disable(0x%04x)", uint(target)) }
func (c *fakeContext) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	c.record("BlendFuncSeparate")
}
func (c *fakeContext) DepthFunc(f Enum)                  { c.record("DepthFunc") }
func (c *fakeContext) DepthMask(mask bool)               { c.record("DepthMask(%v)", mask) }
func (c *fakeContext) CullFace(mode Enum)                { c.record("CullFace") }
func (c *fakeContext) Scissor(x, y, width, height int32) { c.record("Scissor") }
func (c *fakeContext) ClearColor(r, g, b, a float32)     { c.record("ClearColor") }
func (c *fakeContext) ClearDepthf(d float32)             { c.record("ClearDepthf") }
func (c *fakeContext) ClearStencil(s int)                { c.record("ClearStencil") }
func (c *fakeContext) Clear(mask Enum)                   { c.record("Clear(0x%04x)", uint(mask)) }

func (c *fakeContext) GetInteger(pname Enum) int {
	switch pname {
	case MAX_TEXTURE_SIZE:
		return c.maxSize
	case MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return c.maxUnits
	default:
		return 0
	}
}

func newTestDevice(t *testing.T) (*Device, *fakeContext) {
	t.Helper()
	ctx := newFakeContext()
	d, err := New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx.reset()
	return d, ctx
}

func mustTexture(t *testing.T, d *Device) gpudev.Texture {
	t.Helper()
	tex, err := d.CreateTexture(gpudev.FormatRGBA8, 64)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return tex
}

func mustProgram(t *testing.T, d *Device) gpudev.Program {
	t.Helper()
	vs, err := d.CreateShader(gpudev.StageVertex, "void main() {}")
	if err != nil {
		t.Fatalf("CreateShader vertex: %v", err)
	}
	fs, err := d.CreateShader(gpudev.StageFragment, "void main() {}")
	if err != nil {
		t.Fatalf("CreateShader fragment: %v", err)
	}
	p, err := d.CreateProgram(vs, fs)
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	return p
}

func TestNewRejectsNilContext(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("New(nil) err = %v, want ErrNilContext", err)
	}
}

func TestNewRejectsBadLimits(t *testing.T) {
	ctx := newFakeContext()
	ctx.maxSize = 0
	if _, err := New(ctx); !errors.Is(err, ErrContextLimits) {
		t.Errorf("New err = %v, want ErrContextLimits", err)
	}
}

func TestCaps(t *testing.T) {
	d, _ := newTestDevice(t)
	caps := d.Caps()
	if caps.MaxTextureSize != 4096 || caps.MaxTextureUnits != 8 {
		t.Errorf("Caps() = %+v", caps)
	}
}

func TestBindTextureSelectsUnitFirst(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	ctx.reset()

	if err := d.BindTexture(tex, 1); err != nil {
		t.Fatalf("BindTexture: %v", err)
	}
	want := []string{"ActiveTexture(1)", "BindTexture(1)"}
	if len(ctx.calls) != len(want) || ctx.calls[0] != want[0] || ctx.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", ctx.calls, want)
	}
	if ctx.units[1] != 1 {
		t.Errorf("native unit 1 holds %d, want 1", ctx.units[1])
	}
}

func TestBindTextureReplaces(t *testing.T) {
	d, ctx := newTestDevice(t)
	t1 := mustTexture(t, d)
	t2 := mustTexture(t, d)

	if err := d.BindTexture(t1, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.BindTexture(t2, 0); err != nil {
		t.Fatal(err)
	}
	if got := d.TextureBinding(0); got != t2 {
		t.Errorf("TextureBinding(0) = %v, want second texture", got)
	}
	if ctx.units[0] != 2 {
		t.Errorf("native unit 0 holds %d, want 2", ctx.units[0])
	}
}

func TestRedundantBindIsFree(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	if err := d.BindTexture(tex, 2); err != nil {
		t.Fatal(err)
	}
	ctx.reset()

	if err := d.BindTexture(tex, 2); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("redundant bind issued %v", ctx.calls)
	}
}

func TestUnbindTextureIdempotent(t *testing.T) {
	d, ctx := newTestDevice(t)

	if err := d.UnbindTexture(3); err != nil {
		t.Fatalf("UnbindTexture on empty unit: %v", err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("unbind of empty unit issued %v", ctx.calls)
	}

	tex := mustTexture(t, d)
	if err := d.BindTexture(tex, 3); err != nil {
		t.Fatal(err)
	}
	if err := d.UnbindTexture(3); err != nil {
		t.Fatal(err)
	}
	if d.TextureBinding(3) != nil {
		t.Error("unit 3 still bound after unbind")
	}
	ctx.reset()
	if err := d.UnbindTexture(3); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("second unbind issued %v", ctx.calls)
	}
}

func TestBindTextureUnitRange(t *testing.T) {
	d, _ := newTestDevice(t)
	tex := mustTexture(t, d)

	for _, unit := range []int{-1, 8, 100} {
		if err := d.BindTexture(tex, unit); !errors.Is(err, gpudev.ErrInvalidArgument) {
			t.Errorf("BindTexture(unit=%d) err = %v, want ErrInvalidArgument", unit, err)
		}
	}
}

func TestCreateTexturePreservesBindings(t *testing.T) {
	d, ctx := newTestDevice(t)
	t1 := mustTexture(t, d)
	if err := d.BindTexture(t1, 0); err != nil {
		t.Fatal(err)
	}

	t2 := mustTexture(t, d)
	if got := d.TextureBinding(0); got != t1 {
		t.Errorf("TextureBinding(0) = %v, want first texture", got)
	}
	if ctx.units[0] != 1 {
		t.Errorf("native unit 0 holds %d, want 1", ctx.units[0])
	}
	for unit := 0; unit < d.Caps().MaxTextureUnits; unit++ {
		if d.TextureBinding(unit) == t2 {
			t.Errorf("new texture left bound to unit %d", unit)
		}
	}
}

func TestCreateTextureValidation(t *testing.T) {
	d, _ := newTestDevice(t)

	if _, err := d.CreateTexture(gpudev.FormatR8, 0); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("size 0 err = %v, want ErrInvalidArgument", err)
	}
	// Exceeding the device limit is recoverable allocation failure,
	// not a precondition violation.
	if _, err := d.CreateTexture(gpudev.FormatR8, 5000); !errors.Is(err, gpudev.ErrResourceAllocation) {
		t.Errorf("oversized err = %v, want ErrResourceAllocation", err)
	}
	if _, err := d.CreateTexture(gpudev.TextureFormat(99), 64); !errors.Is(err, gpudev.ErrUnsupportedFormat) {
		t.Errorf("bad format err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCreateTextureFromDataLength(t *testing.T) {
	d, _ := newTestDevice(t)

	data := make([]byte, 16*16*4)
	if _, err := d.CreateTextureFromData(gpudev.FormatRGBA8, 16, data); err != nil {
		t.Fatalf("CreateTextureFromData: %v", err)
	}
	if _, err := d.CreateTextureFromData(gpudev.FormatRGBA8, 16, data[:100]); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("short data err = %v, want ErrInvalidArgument", err)
	}
}

func TestClearEmptyIssuesNoCalls(t *testing.T) {
	d, ctx := newTestDevice(t)

	if err := d.Clear(gpudev.ClearParams{}); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("empty clear issued %v", ctx.calls)
	}
}

func TestClearColorSingleCall(t *testing.T) {
	d, ctx := newTestDevice(t)

	if err := d.Clear(gpudev.ClearColor(gpudev.Color{R: 1, G: 0.5, B: 0.25, A: 1})); err != nil {
		t.Fatal(err)
	}
	if n := ctx.count("Clear(0x"); n != 1 {
		t.Errorf("Clear issued %d native clears, want 1: %v", n, ctx.calls)
	}
	want := fmt.Sprintf("Clear(0x%04x)", uint(COLOR_BUFFER_BIT))
	if ctx.count(want) != 1 {
		t.Errorf("calls = %v, want one %s", ctx.calls, want)
	}
}

func TestClearAllMask(t *testing.T) {
	d, ctx := newTestDevice(t)

	if err := d.Clear(gpudev.ClearAll(gpudev.Color{A: 1}, 0.5, 1)); err != nil {
		t.Fatal(err)
	}
	mask := COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT | STENCIL_BUFFER_BIT
	want := fmt.Sprintf("Clear(0x%04x)", uint(mask))
	if ctx.count(want) != 1 {
		t.Errorf("calls = %v, want one %s", ctx.calls, want)
	}
}

func TestClearRectScissors(t *testing.T) {
	d, ctx := newTestDevice(t)

	params := gpudev.ClearColor(gpudev.Color{R: 1})
	params.Rect = &gpudev.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if err := d.Clear(params); err != nil {
		t.Fatal(err)
	}
	enable := fmt.Sprintf("Enable(0x%04x)", uint(SCISSOR_TEST))
	disable := fmt.Sprintf("Disable(0x%04x)", uint(SCISSOR_TEST))
	for _, want := range []string{"Scissor", enable, disable} {
		if ctx.count(want) != 1 {
			t.Errorf("calls = %v, want one %s", ctx.calls, want)
		}
	}
	if d.state.scissor {
		t.Error("scissor state not restored after rect clear")
	}
}

func TestClearRectValidation(t *testing.T) {
	d, _ := newTestDevice(t)

	params := gpudev.ClearColor(gpudev.Color{})
	params.Rect = &gpudev.Rect{Width: -1, Height: 10}
	if err := d.Clear(params); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("negative rect err = %v, want ErrInvalidArgument", err)
	}
}

func TestDeleteTextureClearsUnits(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	if err := d.BindTexture(tex, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.BindTexture(tex, 2); err != nil {
		t.Fatal(err)
	}

	if err := d.DeleteTexture(tex); err != nil {
		t.Fatal(err)
	}
	if !tex.Released() {
		t.Error("texture not marked released")
	}
	if d.TextureBinding(0) != nil || d.TextureBinding(2) != nil {
		t.Error("deleted texture still logically bound")
	}
	if ctx.units[0] != 0 || ctx.units[2] != 0 {
		t.Error("deleted texture still natively bound")
	}
	if err := d.BindTexture(tex, 0); !errors.Is(err, gpudev.ErrUseAfterRelease) {
		t.Errorf("bind after delete err = %v, want ErrUseAfterRelease", err)
	}
	if err := d.DeleteTexture(tex); !errors.Is(err, gpudev.ErrUseAfterRelease) {
		t.Errorf("double delete err = %v, want ErrUseAfterRelease", err)
	}
}

func TestDeleteProgramUnbindsFirst(t *testing.T) {
	d, ctx := newTestDevice(t)
	p := mustProgram(t, d)
	if err := d.BindProgram(p); err != nil {
		t.Fatal(err)
	}
	ctx.reset()

	if err := d.DeleteProgram(p); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) < 2 || !strings.HasPrefix(ctx.calls[0], "UseProgram(0)") || !strings.HasPrefix(ctx.calls[1], "DeleteProgram") {
		t.Errorf("calls = %v, want UseProgram(0) before DeleteProgram", ctx.calls)
	}
	if d.ProgramBinding() != nil {
		t.Error("deleted program still bound")
	}
}

func TestDeleteVertexArrayClearsSlot(t *testing.T) {
	d, _ := newTestDevice(t)
	va, err := d.CreateVertexArray()
	if err != nil {
		t.Fatal(err)
	}
	if err := d.BindVertexArray(va); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteVertexArray(va); err != nil {
		t.Fatal(err)
	}
	if d.VertexArrayBinding() != nil {
		t.Error("deleted vertex array still bound")
	}
	if err := d.BindVertexArray(va); !errors.Is(err, gpudev.ErrUseAfterRelease) {
		t.Errorf("bind after delete err = %v, want ErrUseAfterRelease", err)
	}
}

func TestCreateFramebufferRestoresBinding(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	ctx.reset()

	fb, err := d.CreateFramebuffer(tex)
	if err != nil {
		t.Fatalf("CreateFramebuffer: %v", err)
	}
	if fb.Texture() != tex {
		t.Error("framebuffer does not report its attachment")
	}
	if ctx.count("FramebufferTexture2D(1)") != 1 {
		t.Errorf("calls = %v, want the texture attached once", ctx.calls)
	}
	// Attachment binds the new object; the default target must be
	// rebound before returning.
	if d.FramebufferBinding() != nil || ctx.fbo != 0 {
		t.Error("creation left the framebuffer bound")
	}
}

func TestCreateFramebufferIncomplete(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	ctx.fboStatus = 0x8CD6

	if _, err := d.CreateFramebuffer(tex); !errors.Is(err, gpudev.ErrResourceAllocation) {
		t.Errorf("incomplete framebuffer err = %v, want ErrResourceAllocation", err)
	}
	if ctx.count("DeleteFramebuffer") != 1 {
		t.Error("incomplete framebuffer object not deleted")
	}
}

func TestFramebufferBindLifecycle(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	fb, err := d.CreateFramebuffer(tex)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.BindFramebuffer(fb); err != nil {
		t.Fatal(err)
	}
	if d.FramebufferBinding() != fb || ctx.fbo == 0 {
		t.Error("framebuffer not bound")
	}
	ctx.reset()
	if err := d.BindFramebuffer(fb); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("redundant bind issued %v", ctx.calls)
	}

	if err := d.UnbindFramebuffer(); err != nil {
		t.Fatal(err)
	}
	if d.FramebufferBinding() != nil || ctx.fbo != 0 {
		t.Error("default target not restored")
	}
	if err := d.UnbindFramebuffer(); err != nil {
		t.Fatalf("second unbind: %v", err)
	}
}

func TestDeleteFramebufferKeepsTexture(t *testing.T) {
	d, ctx := newTestDevice(t)
	tex := mustTexture(t, d)
	fb, err := d.CreateFramebuffer(tex)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.BindFramebuffer(fb); err != nil {
		t.Fatal(err)
	}

	if err := d.DeleteFramebuffer(fb); err != nil {
		t.Fatal(err)
	}
	if !fb.Released() {
		t.Error("framebuffer not marked released")
	}
	if d.FramebufferBinding() != nil || ctx.fbo != 0 {
		t.Error("deleted framebuffer still bound")
	}
	if tex.Released() {
		t.Error("attached texture released with the framebuffer")
	}
	if err := d.BindFramebuffer(fb); !errors.Is(err, gpudev.ErrUseAfterRelease) {
		t.Errorf("bind after delete err = %v, want ErrUseAfterRelease", err)
	}
}

func TestCompileError(t *testing.T) {
	d, ctx := newTestDevice(t)
	ctx.compileFail = true
	ctx.compileLog = "0:1: error: syntax error\n"

	sh, err := d.CreateShader(gpudev.StageFragment, "nonsense")
	if sh != nil {
		t.Error("failed compilation returned a handle")
	}
	var ce *gpudev.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CompileError", err)
	}
	if !errors.Is(err, gpudev.ErrShaderCompile) {
		t.Error("CompileError does not match ErrShaderCompile")
	}
	if ce.Stage != gpudev.StageFragment {
		t.Errorf("Stage = %v, want fragment", ce.Stage)
	}
	if ce.Diagnostic != "0:1: error: syntax error" {
		t.Errorf("Diagnostic = %q", ce.Diagnostic)
	}
	if ctx.count("DeleteShader") != 1 {
		t.Error("failed shader object not deleted")
	}
}

func TestLinkError(t *testing.T) {
	d, ctx := newTestDevice(t)
	vs, _ := d.CreateShader(gpudev.StageVertex, "void main() {}")
	fs, _ := d.CreateShader(gpudev.StageFragment, "void main() {}")
	ctx.linkFail = true
	ctx.linkLog = "error: mismatched varyings"

	p, err := d.CreateProgram(vs, fs)
	if p != nil {
		t.Error("failed link returned a handle")
	}
	var le *gpudev.LinkError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LinkError", err)
	}
	if !errors.Is(err, gpudev.ErrProgramLink) {
		t.Error("LinkError does not match ErrProgramLink")
	}
	if le.Diagnostic == "" {
		t.Error("empty link diagnostic")
	}
	if ctx.count("DeleteProgram") != 1 {
		t.Error("failed program object not deleted")
	}
}

func TestProgramRequiresBothStages(t *testing.T) {
	d, _ := newTestDevice(t)
	vs, _ := d.CreateShader(gpudev.StageVertex, "void main() {}")

	if _, err := d.CreateProgram(vs); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("vertex-only program err = %v, want ErrInvalidArgument", err)
	}
	if _, err := d.CreateProgram(); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("empty program err = %v, want ErrInvalidArgument", err)
	}
}

func TestUniformLocationUnknown(t *testing.T) {
	d, ctx := newTestDevice(t)
	p := mustProgram(t, d)
	ctx.uniforms["uColor"] = 3

	if _, err := d.UniformLocation(p, "uColor"); err != nil {
		t.Fatalf("UniformLocation: %v", err)
	}
	if _, err := d.UniformLocation(p, "uMissing"); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("unknown uniform err = %v, want ErrInvalidArgument", err)
	}
}

func TestSetUniformRequiresBoundProgram(t *testing.T) {
	d, ctx := newTestDevice(t)
	p := mustProgram(t, d)
	ctx.uniforms["uScale"] = 0
	u, err := d.UniformLocation(p, "uScale")
	if err != nil {
		t.Fatal(err)
	}

	if err := d.SetUniform(u, gpudev.UniformFloat(2)); !errors.Is(err, gpudev.ErrInvalidArgument) {
		t.Errorf("unbound SetUniform err = %v, want ErrInvalidArgument", err)
	}

	if err := d.BindProgram(p); err != nil {
		t.Fatal(err)
	}
	ctx.reset()
	if err := d.SetUniform(u, gpudev.UniformVec4(1, 2, 3, 4)); err != nil {
		t.Fatal(err)
	}
	if ctx.count("Uniform4f") != 1 {
		t.Errorf("calls = %v, want one Uniform4f", ctx.calls)
	}
}

func TestRenderStateDiffing(t *testing.T) {
	d, ctx := newTestDevice(t)
	blend := gpudev.RenderState{
		Blend: &gpudev.BlendState{SrcFactor: gpudev.BlendSrcAlpha, DstFactor: gpudev.BlendOneMinusSrcAlpha},
	}

	if err := d.SetRenderState(blend); err != nil {
		t.Fatal(err)
	}
	if ctx.count("Enable") != 1 || ctx.count("BlendFuncSeparate") != 1 {
		t.Errorf("first apply calls = %v", ctx.calls)
	}

	ctx.reset()
	if err := d.SetRenderState(blend); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 0 {
		t.Errorf("redundant apply issued %v", ctx.calls)
	}
}

func TestResetRenderState(t *testing.T) {
	d, ctx := newTestDevice(t)
	state := gpudev.RenderState{
		Depth: &gpudev.DepthState{Func: gpudev.DepthLess, Write: true},
		Cull:  gpudev.CullBack,
	}
	if err := d.SetRenderState(state); err != nil {
		t.Fatal(err)
	}
	ctx.reset()

	if err := d.ResetRenderState(); err != nil {
		t.Fatal(err)
	}
	got := d.RenderState()
	if got.Blend != nil || got.Depth != nil || got.Cull != gpudev.CullNone {
		t.Errorf("RenderState after reset = %+v", got)
	}
	disable := fmt.Sprintf("Disable(0x%04x)", uint(DEPTH_TEST))
	if ctx.count(disable) != 1 {
		t.Errorf("calls = %v, want depth test disabled", ctx.calls)
	}
}

func TestWithRenderStateRestoresOnError(t *testing.T) {
	d, _ := newTestDevice(t)
	base := gpudev.RenderState{Cull: gpudev.CullBack}
	if err := d.SetRenderState(base); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("draw failed")
	inner := gpudev.RenderState{
		Blend: &gpudev.BlendState{SrcFactor: gpudev.BlendOne, DstFactor: gpudev.BlendOne},
	}
	err := gpudev.WithRenderState(d, inner, func() error {
		if got := d.RenderState(); got.Blend == nil {
			t.Error("inner state not applied")
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped draw error", err)
	}
	got := d.RenderState()
	if got.Blend != nil || got.Cull != gpudev.CullBack {
		t.Errorf("state after WithRenderState = %+v, want base restored", got)
	}
}

func TestTwoUnitScenario(t *testing.T) {
	d, ctx := newTestDevice(t)
	t1 := mustTexture(t, d)
	t2 := mustTexture(t, d)
	ctx.reset()

	if err := d.BindTexture(t1, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.BindTexture(t2, 1); err != nil {
		t.Fatal(err)
	}
	if ctx.units[0] != 1 || ctx.units[1] != 2 {
		t.Errorf("native units = %v", ctx.units[:2])
	}
	if d.TextureBinding(0) != t1 || d.TextureBinding(1) != t2 {
		t.Error("logical bindings do not match")
	}

	// Unbinding unit 0 leaves only the second texture bound, on unit 1.
	if err := d.UnbindTexture(0); err != nil {
		t.Fatal(err)
	}
	if d.TextureBinding(0) != nil || ctx.units[0] != 0 {
		t.Error("unit 0 still occupied after unbind")
	}
	if d.TextureBinding(1) != t2 || ctx.units[1] != 2 {
		t.Error("unit 1 lost its binding")
	}
	for unit := 2; unit < d.Caps().MaxTextureUnits; unit++ {
		if d.TextureBinding(unit) != nil {
			t.Errorf("unexpected binding on unit %d", unit)
		}
	}

	// The unbind left unit 0 selected, so rebinding it needs no
	// ActiveTexture call.
	ctx.reset()
	if err := d.BindTexture(t2, 0); err != nil {
		t.Fatal(err)
	}
	if len(ctx.calls) != 1 || ctx.calls[0] != "BindTexture(2)" {
		t.Errorf("calls = %v, want a single bind on the active unit", ctx.calls)
	}
}

func TestForeignHandleRejected(t *testing.T) {
	d1, _ := newTestDevice(t)
	d2, _ := newTestDevice(t)
	tex := mustTexture(t, d1)

	if err := d2.BindTexture(tex, 0); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("foreign bind err = %v, want ErrForeignHandle", err)
	}
	if err := d2.DeleteTexture(tex); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("foreign delete err = %v, want ErrForeignHandle", err)
	}
}

func TestReleasedDeviceRejectsOperations(t *testing.T) {
	d, _ := newTestDevice(t)
	tex := mustTexture(t, d)
	d.Release()

	if _, err := d.CreateTexture(gpudev.FormatR8, 16); !errors.Is(err, ErrDeviceReleased) {
		t.Errorf("CreateTexture err = %v, want ErrDeviceReleased", err)
	}
	if err := d.BindTexture(tex, 0); !errors.Is(err, ErrDeviceReleased) {
		t.Errorf("BindTexture err = %v, want ErrDeviceReleased", err)
	}
	if err := d.Clear(gpudev.ClearColor(gpudev.Color{})); !errors.Is(err, ErrDeviceReleased) {
		t.Errorf("Clear err = %v, want ErrDeviceReleased", err)
	}
}
