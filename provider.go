// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This is the integration point between gpudev and GPU frameworks like
// gogpu. The host application implements DeviceHandle and passes it to
// backend constructors (currently backend/wgpu), allowing gpudev to use
// the shared GPU device.
//
// Key principle: gpudev RECEIVES the device from the host, it does NOT
// create one. This enables shared GPU resources between gpudev and the
// host and consistent resource management across the stack.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// gpudev-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem. Providers that also
// expose HalDevice() any / HalQueue() any grant backends direct HAL
// access.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Useful in tests and for code paths where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns empty adapter information for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
