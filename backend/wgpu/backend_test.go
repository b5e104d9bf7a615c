// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/backend"
)

func TestBackendName(t *testing.T) {
	b := NewBackend()
	if b.Name() != backend.BackendWGPU {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendWGPU)
	}
}

func TestBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Error("wgpu backend not registered on import")
	}
}

func TestBackendNewDevice(t *testing.T) {
	b := NewBackend()

	if _, err := b.NewDevice(backend.Options{}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("NewDevice before Init err = %v, want ErrNotInitialized", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	if _, err := b.NewDevice(backend.Options{}); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewDevice without provider err = %v, want ErrNilProvider", err)
	}
	if _, err := b.NewDevice(backend.Options{Provider: gpudev.NullDeviceHandle{}}); !errors.Is(err, ErrNoHALDevice) {
		t.Errorf("NewDevice with null provider err = %v, want ErrNoHALDevice", err)
	}
}
