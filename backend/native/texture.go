// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/guardian"
	"github.com/gogpu/wgpu/hal"
)

// PrepareTexture implements guardian.Backend. It creates a 2D texture
// with a single mip level and uploads the initial pixels, if any.
func (b *Backend) PrepareTexture(desc guardian.TextureDesc) (*guardian.TextureContext, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              uint32(desc.Width),
			Height:             uint32(desc.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}

	tc := guardian.NewTextureContext(desc, tex, b.upload)
	if desc.Pixels != nil {
		if err := b.write(tex, desc.Width, desc.Height, desc.Pixels); err != nil {
			b.device.DestroyTexture(tex)
			return nil, fmt.Errorf("native: upload texture %q: %w", desc.Label, err)
		}
	}
	b.live[tc] = tex
	return tc, nil
}

// upload is the update function of the textures this backend prepares.
func (b *Backend) upload(tc *guardian.TextureContext, pixels []byte) error {
	tex, ok := b.live[tc]
	if !ok {
		return guardian.ErrTextureReleased
	}
	if err := b.write(tex, tc.Width(), tc.Height(), pixels); err != nil {
		return fmt.Errorf("native: upload texture %q: %w", tc.Label(), err)
	}
	return nil
}

func (b *Backend) write(tex hal.Texture, width, height int, pixels []byte) error {
	return b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture: tex,
			Aspect:  gputypes.TextureAspectAll,
		},
		pixels,
		&hal.ImageDataLayout{
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)
}

// UploadImage replaces the content of a texture with img converted to
// RGBA. The image must have the texture size.
func (b *Backend) UploadImage(tc *guardian.TextureContext, img image.Image) error {
	rgba := guardian.ToRGBA(img, 0)
	if rgba.Bounds().Dx() != tc.Width() || rgba.Bounds().Dy() != tc.Height() {
		return fmt.Errorf("%w: image %v does not fit %dx%d", guardian.ErrInvalidTexture, img.Bounds().Size(), tc.Width(), tc.Height())
	}
	return tc.UpdateData(rgba.Pix)
}

// ReleaseTexture implements guardian.Backend. Bindings of the texture are
// dropped.
func (b *Backend) ReleaseTexture(tc *guardian.TextureContext) {
	tex, ok := b.live[tc]
	if !ok {
		return
	}
	for i, bound := range b.textures {
		if bound == tc {
			b.textures[i] = nil
		}
	}
	b.device.DestroyTexture(tex)
	delete(b.live, tc)
}

// LiveTextures returns the number of textures created and not yet
// destroyed.
func (b *Backend) LiveTextures() int {
	return len(b.live)
}
