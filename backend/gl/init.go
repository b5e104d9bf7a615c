// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"github.com/gogpu/gpudev/backend"
)

// init registers the GL backend on package import.
// This enables automatic backend selection when using backend.Default().
//
// To use the GL backend, import this package:
//
//	import _ "github.com/gogpu/gpudev/backend/gl"
func init() {
	backend.Register(backend.BackendGL, func() backend.DeviceBackend {
		return &Backend{}
	})
}
