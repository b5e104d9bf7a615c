// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/backend"
)

// Backend adapts the gl package to the backend selection mechanism.
// It implements the backend.DeviceBackend interface.
type Backend struct {
	initialized bool
}

// NewBackend creates a new GL device backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendGL
}

// Init initializes the backend. The GL backend holds no global
// resources of its own; the native context arrives per device through
// Options.GLContext.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *Backend) Close() {
	b.initialized = false
}

// NewDevice creates a device driving the context in opts.GLContext,
// which must implement Functions.
func (b *Backend) NewDevice(opts backend.Options) (gpudev.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	ctx, ok := opts.GLContext.(Functions)
	if !ok || ctx == nil {
		return nil, ErrNilContext
	}
	return New(ctx)
}
