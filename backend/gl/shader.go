// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpudev"
)

func stageEnum(stage gpudev.ShaderStage) (Enum, error) {
	switch stage {
	case gpudev.StageVertex:
		return VERTEX_SHADER, nil
	case gpudev.StageFragment:
		return FRAGMENT_SHADER, nil
	default:
		return 0, fmt.Errorf("%w: shader stage %d", gpudev.ErrInvalidArgument, stage)
	}
}

// CreateShader implements gpudev.Device. A failed compilation deletes
// the native object and returns a *gpudev.CompileError; no handle
// exists afterwards.
func (d *Device) CreateShader(stage gpudev.ShaderStage, source string) (gpudev.Shader, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	ty, err := stageEnum(stage)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return nil, fmt.Errorf("%w: empty shader source", gpudev.ErrInvalidArgument)
	}
	obj := d.funcs.CreateShader(ty)
	if !obj.Valid() {
		return nil, fmt.Errorf("%w: shader", gpudev.ErrResourceAllocation)
	}
	d.funcs.ShaderSource(obj, source)
	d.funcs.CompileShader(obj)
	if d.funcs.GetShaderi(obj, COMPILE_STATUS) == 0 {
		log := strings.TrimSpace(d.funcs.GetShaderInfoLog(obj))
		d.funcs.DeleteShader(obj)
		return nil, &gpudev.CompileError{Stage: stage, Diagnostic: log}
	}
	return &shader{dev: d, obj: obj, stage: stage}, nil
}

// CreateProgram implements gpudev.Device. At least a vertex and a
// fragment shader must be supplied. A failed link deletes the native
// program and returns a *gpudev.LinkError.
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

	obj := d.funcs.CreateProgram()
	if !obj.Valid() {
		return nil, fmt.Errorf("%w: program", gpudev.ErrResourceAllocation)
	}
	for _, sh := range owned {
		d.funcs.AttachShader(obj, sh.obj)
	}
	d.funcs.LinkProgram(obj)
	if d.funcs.GetProgrami(obj, LINK_STATUS) == 0 {
		log := strings.TrimSpace(d.funcs.GetProgramInfoLog(obj))
		d.funcs.DeleteProgram(obj)
		return nil, &gpudev.LinkError{Diagnostic: log}
	}
	return &program{dev: d, obj: obj}, nil
}
