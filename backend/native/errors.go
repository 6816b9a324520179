// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned by New when the device or queue is nil.
	ErrNilDevice = errors.New("native: device is nil")

	// ErrNoAdapter is returned by Open when the HAL instance exposes no
	// adapter.
	ErrNoAdapter = errors.New("native: no GPU adapter available")

	// ErrForeignTexture is recorded when a texture bound to a stage was
	// not prepared by a native backend.
	ErrForeignTexture = errors.New("native: texture not prepared by this backend")

	// ErrClosed is returned for textures prepared after Close.
	ErrClosed = errors.New("native: backend closed")
)

// VariantNotAvailableError indicates a HAL backend variant is unknown or
// not registered with the HAL.
type VariantNotAvailableError struct {
	Name string
}

func (e *VariantNotAvailableError) Error() string {
	return "native: HAL backend not available: " + e.Name
}
