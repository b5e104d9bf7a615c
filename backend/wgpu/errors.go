// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "errors"

// Package errors for the WGPU backend.
var (
	// ErrNilProvider is returned when New is called without a provider.
	ErrNilProvider = errors.New("wgpu: device provider is nil")

	// ErrNoHALDevice is returned when the provider does not expose a
	// usable HAL device and queue.
	ErrNoHALDevice = errors.New("wgpu: provider does not expose a HAL device")

	// ErrForeignHandle is returned when a handle created by a different
	// device or backend is passed to a device operation.
	ErrForeignHandle = errors.New("wgpu: handle belongs to a different device")

	// ErrDeviceReleased is returned when operations are called on a
	// released device.
	ErrDeviceReleased = errors.New("wgpu: device has been released")

	// ErrUniformSpace is returned when a program has no room left in
	// its uniform buffer for another location.
	ErrUniformSpace = errors.New("wgpu: program uniform space exhausted")

	// ErrBadSPIRV is returned when the compiler emits a SPIR-V blob
	// that is not a whole number of 32-bit words.
	ErrBadSPIRV = errors.New("wgpu: compiler emitted truncated SPIR-V")
)
