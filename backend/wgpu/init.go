// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gpudev/backend"
)

// init registers the WGPU backend on package import.
// This enables automatic backend selection when using backend.Default().
//
// To use the WGPU backend, import this package:
//
//	import _ "github.com/gogpu/gpudev/backend/wgpu"
func init() {
	backend.Register(backend.BackendWGPU, func() backend.DeviceBackend {
		return &Backend{}
	})
}
