// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import "fmt"

// ShaderStage identifies the pipeline stage a shader is compiled for.
type ShaderStage uint8

const (
	// StageVertex is the vertex processing stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment (pixel) processing stage.
	StageFragment
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

// UniformKind identifies the payload type of a UniformValue.
type UniformKind uint8

const (
	// UniformKindInt is a single 32-bit signed integer.
	UniformKindInt UniformKind = iota

	// UniformKindFloat is a single float32.
	UniformKindFloat

	// UniformKindVec2 is a pair of float32.
	UniformKindVec2

	// UniformKindVec4 is a quadruple of float32.
	UniformKindVec4

	// UniformKindMat4 is a column-major 4x4 float32 matrix.
	UniformKindMat4
)

// floatCount returns the number of float32 components for the kind,
// or 0 for integer payloads.
func (k UniformKind) floatCount() int {
	switch k {
	case UniformKindFloat:
		return 1
	case UniformKindVec2:
		return 2
	case UniformKindVec4:
		return 4
	case UniformKindMat4:
		return 16
	default:
		return 0
	}
}

// UniformValue is the value written into a program uniform.
// Construct it with one of the Uniform* constructors; the zero value
// is an integer zero.
type UniformValue struct {
	kind UniformKind
	i    int32
	f    [16]float32
}

// UniformInt wraps a 32-bit integer uniform value.
func UniformInt(v int32) UniformValue {
	return UniformValue{kind: UniformKindInt, i: v}
}

// UniformFloat wraps a scalar float uniform value.
func UniformFloat(v float32) UniformValue {
	u := UniformValue{kind: UniformKindFloat}
	u.f[0] = v
	return u
}

// UniformVec2 wraps a two-component vector uniform value.
func UniformVec2(x, y float32) UniformValue {
	u := UniformValue{kind: UniformKindVec2}
	u.f[0], u.f[1] = x, y
	return u
}

// UniformVec4 wraps a four-component vector uniform value.
func UniformVec4(x, y, z, w float32) UniformValue {
	u := UniformValue{kind: UniformKindVec4}
	u.f[0], u.f[1], u.f[2], u.f[3] = x, y, z, w
	return u
}

// UniformMat4 wraps a column-major 4x4 matrix uniform value.
func UniformMat4(m [16]float32) UniformValue {
	return UniformValue{kind: UniformKindMat4, f: m}
}

// Kind returns the payload type of the value.
func (v UniformValue) Kind() UniformKind { return v.kind }

// Int returns the integer payload. Valid only for UniformKindInt.
func (v UniformValue) Int() int32 { return v.i }

// Floats returns the float components of the value, sized for its kind.
// Valid for all float kinds; returns nil for UniformKindInt.
func (v UniformValue) Floats() []float32 {
	n := v.kind.floatCount()
	if n == 0 {
		return nil
	}
	return v.f[:n:n]
}
