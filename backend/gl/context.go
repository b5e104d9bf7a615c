// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// Enum is a native GL enumerant.
type Enum uint

// Native object names. The zero value is the GL null object.
type (
	Texture         struct{ V uint }
	Shader          struct{ V uint }
	Program         struct{ V uint }
	VertexArray     struct{ V uint }
	Framebuffer     struct{ V uint }
	UniformLocation struct{ V int }
)

// Valid reports whether t names a native texture.
func (t Texture) Valid() bool { return t.V != 0 }

// Valid reports whether s names a native shader.
func (s Shader) Valid() bool { return s.V != 0 }

// Valid reports whether p names a native program.
func (p Program) Valid() bool { return p.V != 0 }

// Valid reports whether a names a native vertex array.
func (a VertexArray) Valid() bool { return a.V != 0 }

// Valid reports whether f names a native framebuffer.
func (f Framebuffer) Valid() bool { return f.V != 0 }

// Valid reports whether u is a resolved uniform location.
func (u UniformLocation) Valid() bool { return u.V != -1 }

// GL enumerants used by the device. Values are the standard GL/GLES
// token values.
const (
	ALWAYS                           Enum = 0x0207
	BACK                             Enum = 0x0405
	BLEND                            Enum = 0x0BE2
	CLAMP_TO_EDGE                    Enum = 0x812F
	COLOR_ATTACHMENT0                Enum = 0x8CE0
	COLOR_BUFFER_BIT                 Enum = 0x4000
	COMPILE_STATUS                   Enum = 0x8B81
	CULL_FACE                        Enum = 0x0B44
	DEPTH_BUFFER_BIT                 Enum = 0x0100
	DEPTH_TEST                       Enum = 0x0B71
	DST_COLOR                        Enum = 0x0306
	FRAGMENT_SHADER                  Enum = 0x8B30
	FRAMEBUFFER                      Enum = 0x8D40
	FRAMEBUFFER_COMPLETE             Enum = 0x8CD5
	FRONT                            Enum = 0x0404
	HALF_FLOAT                       Enum = 0x140B
	LESS                             Enum = 0x0201
	LINEAR                           Enum = 0x2601
	LINK_STATUS                      Enum = 0x8B82
	MAX_COMBINED_TEXTURE_IMAGE_UNITS Enum = 0x8B4D
	MAX_TEXTURE_SIZE                 Enum = 0x0D33
	ONE                              Enum = 0x0001
	ONE_MINUS_SRC_ALPHA              Enum = 0x0303
	R16F                             Enum = 0x822D
	R8                               Enum = 0x8229
	RED                              Enum = 0x1903
	RGBA                             Enum = 0x1908
	RGBA8                            Enum = 0x8058
	SCISSOR_TEST                     Enum = 0x0C11
	SRC_ALPHA                        Enum = 0x0302
	STENCIL_BUFFER_BIT               Enum = 0x0400
	TEXTURE0                         Enum = 0x84C0
	TEXTURE_2D                       Enum = 0x0DE1
	TEXTURE_MAG_FILTER               Enum = 0x2800
	TEXTURE_MIN_FILTER               Enum = 0x2801
	TEXTURE_WRAP_S                   Enum = 0x2802
	TEXTURE_WRAP_T                   Enum = 0x2803
	UNSIGNED_BYTE                    Enum = 0x1401
	VERTEX_SHADER                    Enum = 0x8B31
	ZERO                             Enum = 0x0000
)

// Functions is the native GL context capability the device drives.
// Implementations delegate to a concrete GL binding; the device treats
// them as a black box satisfying the GL call semantics named here.
//
// A Functions value must only be wrapped by one Device, and only used
// from the goroutine the context is current on.
type Functions interface {
	// Resource allocation.
	CreateTexture() Texture
	DeleteTexture(t Texture)
	CreateShader(ty Enum) Shader
	DeleteShader(s Shader)
	CreateProgram() Program
	DeleteProgram(p Program)
	CreateVertexArray() VertexArray
	DeleteVertexArray(a VertexArray)
	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(f Framebuffer)

	// Texture definition. TexImage2D allocates storage without data;
	// TexSubImage2D uploads into allocated storage.
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)

	// Binding primitives. ActiveTexture selects the unit subsequent
	// BindTexture calls affect.
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	UseProgram(p Program)
	BindFramebuffer(target Enum, f Framebuffer)

	// Framebuffer completion. FramebufferTexture2D attaches t to the
	// bound framebuffer; CheckFramebufferStatus reports completeness.
	FramebufferTexture2D(target, attachment, textarget Enum, t Texture, level int)
	CheckFramebufferStatus(target Enum) Enum

	// Shader compilation and program linking.
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string

	// Uniform writes.
	GetUniformLocation(p Program, name string) UniformLocation
	Uniform1i(dst UniformLocation, v int)
	Uniform1f(dst UniformLocation, v float32)
	Uniform2f(dst UniformLocation, v0, v1 float32)
	Uniform4f(dst UniformLocation, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst UniformLocation, values []float32)

	// State primitives.
	Enable(c Enum)
	Disable(c Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	CullFace(mode Enum)
	Scissor(x, y, width, height int32)

	// Clear primitives.
	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	Clear(mask Enum)

	// Context queries.
	GetInteger(pname Enum) int
}
