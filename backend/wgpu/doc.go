// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the gpudev device contract on top of the
// gogpu/wgpu HAL.
//
// The device is constructed from a gpudev.DeviceHandle whose concrete
// provider exposes HalDevice() and HalQueue() accessors, the sharing
// convention used by gogpu window applications. Shader sources are
// WGSL; they are compiled to SPIR-V through gogpu/naga at CreateShader
// time, so compilation errors surface immediately with the naga
// diagnostic.
//
// WebGPU has no mutable binding slots and clears render targets
// through load operations at render pass begin. Bindings are therefore
// tracked logically and Clear accumulates pending load-op values a
// renderer consumes with TakeClear; both honor the contract's
// observable semantics (replace on rebind, idempotent unbind, empty
// clear as a strict no-op) without issuing native calls.
package wgpu
