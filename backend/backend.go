// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides registration and selection of concrete
// gpudev device backends.
//
// Backends register themselves from init() functions in their packages;
// importing a backend package for side effects makes it selectable:
//
//	import _ "github.com/gogpu/gpudev/backend/gl"
package backend

import (
	"errors"

	"github.com/gogpu/gpudev"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when NewDevice is called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendGL is the name of the immediate-mode GL backend.
	BackendGL = "gl"

	// BackendWGPU is the name of the WebGPU HAL backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// Options carries the backend-specific inputs a device is constructed
// from. Each backend reads the fields it understands and ignores the
// rest.
type Options struct {
	// GLContext is the native context for the gl backend. It must
	// implement gl.Functions.
	GLContext any

	// Provider is the shared device handle for the wgpu backend.
	Provider gpudev.DeviceHandle
}

// DeviceBackend is the interface for device backends. It abstracts
// device construction, allowing the library to support multiple
// backends (GL contexts, WebGPU HAL devices) behind one selection
// mechanism.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type DeviceBackend interface {
	// Name returns the backend identifier (e.g., "gl", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before NewDevice.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// NewDevice creates a device from the given options.
	NewDevice(opts Options) (gpudev.Device, error)
}
