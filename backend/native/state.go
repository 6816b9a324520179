// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/guardian"
)

// TargetFormat is the color target format of the tracked pipeline.
const TargetFormat = gputypes.TextureFormatBGRA8Unorm

// DepthFormat is the depth-stencil format of the tracked pipeline.
const DepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// PipelineState describes the render pipeline the current attributes
// require, plus the per-draw bindings that do not affect the pipeline.
type PipelineState struct {
	// Target is the color target. Target.Blend is nil when blending is
	// disabled.
	Target gputypes.ColorTargetState

	// DepthStencil has DepthCompare set to Always when the depth test is
	// disabled.
	DepthStencil gputypes.DepthStencilState

	// Primitive holds culling and winding.
	Primitive gputypes.PrimitiveState

	// Color is the flat vertex color.
	Color gputypes.Color

	// Textures holds the IDs of the textures bound per stage, 0 for an
	// unbound stage.
	Textures [attrib.MaxTextureStages]uint64
}

// pipelineState is the mutable form of PipelineState; blend is kept by
// value so the snapshot can hand out its own pointer.
type pipelineState struct {
	blendEnabled bool
	blend        gputypes.BlendState
	writeMask    gputypes.ColorWriteMask
	depthTest    bool
	depthCompare gputypes.CompareFunction
	depthWrite   bool
	cull         gputypes.CullMode
	front        gputypes.FrontFace
	color        gputypes.Color
}

// defaultPipelineState matches the initial values of the built-in
// attributes.
func defaultPipelineState() pipelineState {
	return pipelineState{
		blend:        gputypes.BlendStateReplace(),
		writeMask:    gputypes.ColorWriteMaskAll,
		depthCompare: gputypes.CompareFunctionLess,
		depthWrite:   true,
		cull:         gputypes.CullModeBack,
		front:        gputypes.FrontFaceCCW,
		color:        gputypes.ColorWhite,
	}
}

// PipelineState returns a snapshot of the tracked state.
func (b *Backend) PipelineState() PipelineState {
	s := b.state
	ps := PipelineState{
		Target: gputypes.ColorTargetState{
			Format:    TargetFormat,
			WriteMask: s.writeMask,
		},
		DepthStencil: gputypes.DefaultDepthStencilState(DepthFormat),
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: s.front,
			CullMode:  s.cull,
		},
		Color: s.color,
	}
	if s.blendEnabled {
		blend := s.blend
		ps.Target.Blend = &blend
	}
	ps.DepthStencil.DepthWriteEnabled = s.depthWrite
	ps.DepthStencil.DepthCompare = gputypes.CompareFunctionAlways
	if s.depthTest {
		ps.DepthStencil.DepthCompare = s.depthCompare
	}
	for i, tc := range b.textures {
		if tc != nil {
			ps.Textures[i] = tc.ID()
		}
	}
	return ps
}

// Dirty reports whether the pipeline description changed since the last
// ClearDirty. Color and texture bindings do not make the pipeline dirty.
// A new backend starts dirty.
func (b *Backend) Dirty() bool {
	return b.dirty
}

// ClearDirty marks the pipeline description as built.
func (b *Backend) ClearDirty() {
	b.dirty = false
}

// update applies fn to the state and marks the pipeline dirty if the
// state changed.
func (b *Backend) update(fn func(s *pipelineState)) {
	before := b.state
	fn(&b.state)
	if b.state != before {
		b.dirty = true
	}
}

// SetColor implements attrib.Backend.
func (b *Backend) SetColor(c gputypes.Color) {
	b.state.color = c
}

// SetBlend implements attrib.Backend.
func (b *Backend) SetBlend(enabled bool, state gputypes.BlendState) {
	b.update(func(s *pipelineState) {
		s.blendEnabled = enabled
		if enabled {
			s.blend = state
		} else {
			s.blend = gputypes.BlendStateReplace()
		}
	})
}

// SetColorWriteMask implements attrib.Backend.
func (b *Backend) SetColorWriteMask(mask gputypes.ColorWriteMask) {
	b.update(func(s *pipelineState) { s.writeMask = mask })
}

// SetCullMode implements attrib.Backend.
func (b *Backend) SetCullMode(mode gputypes.CullMode, front gputypes.FrontFace) {
	b.update(func(s *pipelineState) {
		s.cull = mode
		s.front = front
	})
}

// SetDepthTest implements attrib.Backend.
func (b *Backend) SetDepthTest(enabled bool, compare gputypes.CompareFunction) {
	b.update(func(s *pipelineState) {
		s.depthTest = enabled
		s.depthCompare = compare
	})
}

// SetDepthWrite implements attrib.Backend.
func (b *Backend) SetDepthWrite(enabled bool) {
	b.update(func(s *pipelineState) { s.depthWrite = enabled })
}

// BindTexture implements attrib.Backend. Binding a texture this backend
// did not prepare records ErrForeignTexture and leaves the stage unbound.
func (b *Backend) BindTexture(stage int, tex attrib.TextureHandle) {
	if stage < 0 || stage >= len(b.textures) {
		return
	}
	if tex == nil {
		b.textures[stage] = nil
		return
	}
	tc, ok := tex.(*guardian.TextureContext)
	if !ok || b.live[tc] == nil {
		b.setErr(ErrForeignTexture)
		b.textures[stage] = nil
		return
	}
	b.textures[stage] = tc
}

// BoundTexture returns the texture bound to stage, or nil.
func (b *Backend) BoundTexture(stage int) *guardian.TextureContext {
	if stage < 0 || stage >= len(b.textures) {
		return nil
	}
	return b.textures[stage]
}
