// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	return packSPIRV(spirvBytes)
}

// packSPIRV converts a SPIR-V byte blob to little-endian 32-bit words.
func packSPIRV(spirvBytes []byte) ([]uint32, error) {
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadSPIRV, len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateShader implements gpudev.Device. The source is WGSL; a naga
// compilation failure returns a *gpudev.CompileError carrying the naga
// diagnostic, and no handle.
func (d *Device) CreateShader(stage gpudev.ShaderStage, source string) (gpudev.Shader, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	switch stage {
	case gpudev.StageVertex, gpudev.StageFragment:
	default:
		return nil, fmt.Errorf("%w: shader stage %d", gpudev.ErrInvalidArgument, stage)
	}
	if source == "" {
		return nil, fmt.Errorf("%w: empty shader source", gpudev.ErrInvalidArgument)
	}
	words, err := compileWGSL(source)
	if err != nil {
		return nil, &gpudev.CompileError{Stage: stage, Diagnostic: strings.TrimSpace(err.Error())}
	}
	module, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: stage.String(),
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: shader module: %v", gpudev.ErrResourceAllocation, err)
	}
	return &shader{dev: d, module: module, stage: stage}, nil
}

// CreateProgram implements gpudev.Device. A program pairs the shader
// stages with a uniform buffer the SetUniform writes land in. At least
// a vertex and a fragment shader are required.
func (d *Device) CreateProgram(shaders ...gpudev.Shader) (gpudev.Program, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	owned := make([]*shader, 0, len(shaders))
	var haveVertex, haveFragment bool
	for _, s := range shaders {
		sh, err := d.ownShader(s)
		if err != nil {
			return nil, err
		}
		switch sh.stage {
		case gpudev.StageVertex:
			haveVertex = true
		case gpudev.StageFragment:
			haveFragment = true
		}
		owned = append(owned, sh)
	}
	if !haveVertex || !haveFragment {
		return nil, fmt.Errorf("%w: program requires a vertex and a fragment shader", gpudev.ErrInvalidArgument)
	}
	buf, err := d.newUniformBuffer()
	if err != nil {
		return nil, err
	}
	return &program{
		dev:      d,
		shaders:  owned,
		buf:      buf,
		uniforms: make(map[string]*uniform),
	}, nil
}
