// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpudev provides a backend-agnostic abstraction over a GPU
// rendering device.
//
// # Overview
//
// gpudev defines a uniform interface for creating and destroying GPU
// resources (textures, shaders, programs, vertex arrays) and for
// managing the mutable binding state the underlying graphics API
// requires before draw or clear operations. Concrete backends translate
// the abstract contract into native call sequences:
//
//   - backend/gl: immediate-mode GL-style contexts (desktop GL, GLES, WebGL)
//   - backend/wgpu: WebGPU HAL devices from the gogpu ecosystem
//
// # Quick start
//
//	import (
//	    "github.com/gogpu/gpudev"
//	    "github.com/gogpu/gpudev/backend/gl"
//	)
//
//	dev, err := gl.New(ctx) // ctx implements gl.Functions
//	if err != nil {
//	    return err
//	}
//	defer dev.Release()
//
//	tex, err := dev.CreateTexture(gpudev.FormatRGBA8, 256)
//	if err != nil {
//	    return err
//	}
//	if err := dev.BindTexture(tex, 0); err != nil {
//	    return err
//	}
//
// # Binding discipline
//
// A Device is the sole mutator of native binding state. Each concrete
// device pairs every native bind/unbind with an update to its internal
// binding map, so the logical view never diverges from what the GPU has
// bound. Consumers must not reach past the Device to mutate native
// state directly.
//
// # Concurrency
//
// Devices are single-threaded: all operations are direct synchronous
// calls into the native context, which is itself not safe for
// concurrent access. Wrap a native context in exactly one Device.
//
// # Architecture
//
// The library is organized into:
//   - Root package: the Device contract, handles, and value objects
//   - backend: factory registry for backend selection
//   - backend/gl, backend/wgpu: concrete devices
package gpudev

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
