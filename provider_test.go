// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var h DeviceHandle = NullDeviceHandle{}

	if h.Device() != nil {
		t.Error("Device() != nil")
	}
	if h.Queue() != nil {
		t.Error("Queue() != nil")
	}
	if h.Adapter() != nil {
		t.Error("Adapter() != nil")
	}
	// AdapterInfo must be present for the gpucontext.DeviceProvider
	// interface to be satisfied; the null handle reports nothing.
	var info gpucontext.AdapterInfo = h.AdapterInfo()
	_ = info
	if got := h.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want undefined", got)
	}
}
