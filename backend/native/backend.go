// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg"
	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/guardian"
	"github.com/gogpu/wgpu/hal"
)

// Name is the registry name of the native backend.
const Name = "native"

// variants maps configuration names to HAL backend variants.
var variants = map[string]gputypes.Backend{
	"vulkan":   gputypes.BackendVulkan,
	"metal":    gputypes.BackendMetal,
	"dx12":     gputypes.BackendDX12,
	"gl":       gputypes.BackendGL,
	"software": gputypes.BackendEmpty,
	"noop":     gputypes.BackendEmpty,
	"empty":    gputypes.BackendEmpty,
}

// variantOrder is the order Open tries variants in when none is named.
var variantOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// Backend is a guardian backend driving a HAL device.
//
// Backend belongs to the guardian's render goroutine and is not safe for
// concurrent use.
type Backend struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	variant  gputypes.Backend
	logger   *slog.Logger

	state    pipelineState
	textures [attrib.MaxTextureStages]*guardian.TextureContext
	live     map[*guardian.TextureContext]hal.Texture

	dirty  bool
	err    error
	closed bool
}

var _ guardian.Backend = (*Backend)(nil)

// New creates a backend on an open device. The caller keeps ownership of
// the device; Close only releases the textures the backend created.
func New(device hal.Device, queue hal.Queue) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Backend{
		device: device,
		queue:  queue,
		logger: gsg.Logger(),
		state:  defaultPipelineState(),
		live:   make(map[*guardian.TextureContext]hal.Texture),
		dirty:  true,
	}, nil
}

// Open creates an instance on the named HAL backend variant, opens the
// first adapter and returns a backend owning the device. An empty name
// selects the first registered variant in the order vulkan, metal, dx12,
// gl, software.
func Open(name string) (*Backend, error) {
	variant, err := lookupVariant(name)
	if err != nil {
		return nil, err
	}
	api, ok := hal.GetBackend(variant)
	if !ok {
		return nil, &VariantNotAvailableError{Name: name}
	}

	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("native: create %s instance: %w", variant, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open %s adapter: %w", variant, err)
	}

	b, err := New(open.Device, open.Queue)
	if err != nil {
		open.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	b.instance = instance
	b.variant = variant
	b.logger.Info("native: device opened", "variant", variant.String(), "adapter", adapters[0].Info.Name)
	return b, nil
}

// lookupVariant resolves a variant name. An empty name picks the first
// registered variant.
func lookupVariant(name string) (gputypes.Backend, error) {
	if name == "" {
		registered := hal.AvailableBackends()
		for _, v := range variantOrder {
			if slices.Contains(registered, v) {
				return v, nil
			}
		}
		return 0, &VariantNotAvailableError{Name: "any"}
	}
	v, ok := variants[strings.ToLower(name)]
	if !ok {
		return 0, &VariantNotAvailableError{Name: name}
	}
	return v, nil
}

// Register adds the native backend to reg. The factory opens the HAL
// variant named by Config.HALBackend.
func Register(reg *guardian.Registry) {
	reg.Register(Name, func(cfg guardian.Config) (*guardian.Guardian, error) {
		b, err := Open(cfg.HALBackend)
		if err != nil {
			return nil, err
		}
		g, err := guardian.New(b, cfg.Options()...)
		if err != nil {
			b.Close()
			return nil, err
		}
		return g, nil
	})
}

// Name implements guardian.Backend.
func (b *Backend) Name() string { return Name }

// Variant returns the HAL variant of a backend created by Open.
func (b *Backend) Variant() gputypes.Backend { return b.variant }

// BufferMask implements guardian.Backend. A HAL device renders into a
// presented color target with a depth-stencil attachment.
func (b *Backend) BufferMask() guardian.BufferType {
	return guardian.BufferBack | guardian.BufferDepth | guardian.BufferStencil
}

// Device returns the HAL device.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue.
func (b *Backend) Queue() hal.Queue { return b.queue }

// Err returns the first HAL failure, if any.
func (b *Backend) Err() error { return b.err }

// setErr records err unless an earlier failure is already recorded.
func (b *Backend) setErr(err error) {
	if err == nil {
		return
	}
	if b.err == nil {
		b.err = err
	}
	b.logger.Warn("native: command failed", "err", err)
}

// Close destroys the textures that are still alive and, for a backend
// created by Open, the device and instance.
//
// Close does not tell the guardian: textures it destroys stay marked as
// prepared. Call Guardian.ReleaseAllTextures before Close.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	for tc, tex := range b.live {
		b.device.DestroyTexture(tex)
		delete(b.live, tc)
	}
	if b.instance != nil {
		b.device.Destroy()
		b.instance.Destroy()
		b.instance = nil
	}
}
