// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native provides a guardian backend on a gogpu/wgpu HAL device.
//
// Attribute commands update a tracked render pipeline description built
// from gputypes descriptors (color target, depth-stencil and primitive
// state). Callers rebuild their pipeline when [Backend.Dirty] reports a
// change and read the description with [Backend.PipelineState].
//
// Textures are real HAL textures: PrepareTexture creates and uploads
// them, ReleaseTexture destroys them.
//
// # Opening a device
//
// Use [New] with a device and queue obtained elsewhere, or [Open] to
// create an instance on a registered HAL backend variant. HAL backends
// register themselves on import:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
//	b, err := native.Open("vulkan")
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//	g, err := guardian.New(b)
//
// # Errors
//
// Attribute commands have no error return. The first HAL failure is
// recorded and reported by [Backend.Err].
package native
