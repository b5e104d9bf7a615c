// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl implements the gpudev device contract on top of an
// immediate-mode GL-style native context (desktop GL, GLES, WebGL).
//
// The native context is consumed through the Functions interface, an
// explicit capability object the caller constructs from whatever GL
// binding it uses (go-gl, gio's gl wrappers, syscall/js). The device
// never touches ambient GL state: it owns its context exclusively and
// is the sole mutator of its binding state.
//
// Many GL entry points are order-sensitive; texture binding in
// particular requires selecting the active unit before issuing the bind
// call. The device encapsulates these sequences and tracks every
// binding slot so redundant native calls are skipped and the logical
// view never diverges from the context's actual state.
package gl
