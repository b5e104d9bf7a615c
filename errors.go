// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"errors"
	"fmt"
)

// Common device errors.
var (
	// ErrResourceAllocation is returned when the native context cannot
	// allocate a requested resource. The caller may retry or fall back.
	ErrResourceAllocation = errors.New("gpudev: resource allocation failed")

	// ErrInvalidArgument is returned on precondition violations: units
	// out of range, data length mismatches, missing required shader
	// stages, uniforms of a program that is not bound. It indicates a
	// caller bug and is not retriable.
	ErrInvalidArgument = errors.New("gpudev: invalid argument")

	// ErrUseAfterRelease is returned when a released handle is passed
	// to any device operation. It is a programmer error surfaced loudly
	// rather than silently ignored.
	ErrUseAfterRelease = errors.New("gpudev: use of released resource")

	// ErrUnsupportedFormat is returned when a backend has no native
	// representation for a requested texture format.
	ErrUnsupportedFormat = errors.New("gpudev: unsupported texture format")

	// ErrShaderCompile matches any *CompileError via errors.Is.
	ErrShaderCompile = errors.New("gpudev: shader compilation failed")

	// ErrProgramLink matches any *LinkError via errors.Is.
	ErrProgramLink = errors.New("gpudev: program link failed")
)

// CompileError reports a failed shader compilation. Diagnostic carries
// the backend's compiler output verbatim. No shader handle exists for a
// failed compilation.
type CompileError struct {
	// Stage is the pipeline stage that failed to compile.
	Stage ShaderStage

	// Diagnostic is the backend compiler's error text.
	Diagnostic string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("gpudev: %s shader compilation failed: %s", e.Stage, e.Diagnostic)
}

// Unwrap makes errors.Is(err, ErrShaderCompile) succeed.
func (e *CompileError) Unwrap() error { return ErrShaderCompile }

// LinkError reports a failed program link. Diagnostic carries the
// backend linker's output verbatim.
type LinkError struct {
	// Diagnostic is the backend linker's error text.
	Diagnostic string
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	return "gpudev: program link failed: " + e.Diagnostic
}

// Unwrap makes errors.Is(err, ErrProgramLink) succeed.
func (e *LinkError) Unwrap() error { return ErrProgramLink }
