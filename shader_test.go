// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import "testing"

func TestShaderStageString(t *testing.T) {
	if StageVertex.String() != "vertex" || StageFragment.String() != "fragment" {
		t.Errorf("stage names = %v, %v", StageVertex, StageFragment)
	}
	if got := ShaderStage(7).String(); got != "ShaderStage(7)" {
		t.Errorf("unknown stage = %q", got)
	}
}

func TestUniformValueInt(t *testing.T) {
	v := UniformInt(-42)
	if v.Kind() != UniformKindInt {
		t.Errorf("Kind = %v", v.Kind())
	}
	if v.Int() != -42 {
		t.Errorf("Int = %d", v.Int())
	}
	if v.Floats() != nil {
		t.Error("integer value has float components")
	}
}

func TestUniformValueFloats(t *testing.T) {
	tests := []struct {
		name string
		v    UniformValue
		want []float32
	}{
		{"float", UniformFloat(1.5), []float32{1.5}},
		{"vec2", UniformVec2(1, 2), []float32{1, 2}},
		{"vec4", UniformVec4(1, 2, 3, 4), []float32{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := tt.v.Floats()
		if len(got) != len(tt.want) {
			t.Errorf("%s: len = %d, want %d", tt.name, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: Floats()[%d] = %v, want %v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestUniformValueMat4(t *testing.T) {
	var m [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	v := UniformMat4(m)
	if v.Kind() != UniformKindMat4 {
		t.Errorf("Kind = %v", v.Kind())
	}
	got := v.Floats()
	if len(got) != 16 || got[15] != 15 {
		t.Errorf("Floats = %v", got)
	}
}

func TestUniformValueZero(t *testing.T) {
	var v UniformValue
	if v.Kind() != UniformKindInt || v.Int() != 0 {
		t.Errorf("zero value = kind %v int %d", v.Kind(), v.Int())
	}
}
