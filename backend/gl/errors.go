// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "errors"

// Package errors for the GL backend.
var (
	// ErrNilContext is returned when New is called without a context.
	ErrNilContext = errors.New("gl: native context is nil")

	// ErrContextLimits is returned when the context reports unusable
	// limits (no texture units or zero maximum texture size).
	ErrContextLimits = errors.New("gl: context reports unusable limits")

	// ErrForeignHandle is returned when a handle created by a different
	// device or backend is passed to a device operation.
	ErrForeignHandle = errors.New("gl: handle belongs to a different device")

	// ErrDeviceReleased is returned when operations are called on a
	// released device.
	ErrDeviceReleased = errors.New("gl: device has been released")
)
