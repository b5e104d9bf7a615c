// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/backend"
)

// Backend adapts the wgpu package to the backend selection mechanism.
// It implements the backend.DeviceBackend interface.
type Backend struct {
	initialized bool
}

// NewBackend creates a new WGPU device backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init initializes the backend. The HAL device arrives per device
// through Options.Provider, so there is no global setup.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *Backend) Close() {
	b.initialized = false
}

// NewDevice creates a device from the shared handle in opts.Provider.
func (b *Backend) NewDevice(opts backend.Options) (gpudev.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return New(opts.Provider)
}
