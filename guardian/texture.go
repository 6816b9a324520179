package guardian

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/google/uuid"
)

// nextTextureID hands out texture IDs. Zero is reserved for "no texture".
var nextTextureID atomic.Uint64

// TextureContext is a texture prepared on a backend. The guardian tracks
// prepared textures by the identity of their context.
//
// TextureContext implements attrib.TextureHandle, so it can be bound with
// an attrib.Texture attribute, and gpucontext.Texture.
type TextureContext struct {
	id       uint64
	label    string
	desc     TextureDesc
	native   any
	update   func(tc *TextureContext, pixels []byte) error
	released bool
}

// Compile-time interface checks.
var (
	_ gpucontext.Texture        = (*TextureContext)(nil)
	_ gpucontext.TextureUpdater = (*TextureContext)(nil)
)

// NewTextureContext creates the context for a texture a backend has
// prepared. native is the backend's own texture object and update, if
// not nil, uploads new pixel data.
func NewTextureContext(desc TextureDesc, native any, update func(tc *TextureContext, pixels []byte) error) *TextureContext {
	desc = desc.withDefaults()
	label := desc.Label
	if label == "" {
		label = "gsg-texture-" + uuid.NewString()
	}
	desc.Pixels = nil
	return &TextureContext{
		id:     nextTextureID.Add(1),
		label:  label,
		desc:   desc,
		native: native,
		update: update,
	}
}

// ID returns the unique, non-zero texture ID.
func (tc *TextureContext) ID() uint64 {
	return tc.id
}

// Label returns the debug label.
func (tc *TextureContext) Label() string {
	return tc.label
}

// Desc returns the descriptor the texture was prepared with, without
// pixel data.
func (tc *TextureContext) Desc() TextureDesc {
	return tc.desc
}

// Native returns the backend's texture object.
func (tc *TextureContext) Native() any {
	return tc.native
}

// Width returns the texture width in pixels.
func (tc *TextureContext) Width() int {
	return tc.desc.Width
}

// Height returns the texture height in pixels.
func (tc *TextureContext) Height() int {
	return tc.desc.Height
}

// Released reports whether the backend has released the texture.
func (tc *TextureContext) Released() bool {
	return tc.released
}

// UpdateData replaces the texture content with tightly packed RGBA rows.
func (tc *TextureContext) UpdateData(pixels []byte) error {
	if tc.released {
		return ErrTextureReleased
	}
	if len(pixels) != tc.desc.Width*tc.desc.Height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrInvalidTexture, len(pixels), tc.desc.Width, tc.desc.Height)
	}
	if tc.update == nil {
		return nil
	}
	return tc.update(tc, pixels)
}

func (tc *TextureContext) String() string {
	return fmt.Sprintf("%s#%d(%dx%d)", tc.label, tc.id, tc.desc.Width, tc.desc.Height)
}

// PrepareTexture uploads a texture through the backend and marks it
// prepared.
func (g *Guardian) PrepareTexture(desc TextureDesc) (*TextureContext, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	tc, err := g.backend.PrepareTexture(desc.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("guardian: prepare %q on %s: %w", desc.Label, g.backend.Name(), err)
	}
	g.MarkPreparedTexture(tc)
	g.logger.Debug("guardian: texture prepared", "texture", tc.String())
	return tc, nil
}

// MarkPreparedTexture adds tc to the prepared textures. It reports whether
// tc was new.
func (g *Guardian) MarkPreparedTexture(tc *TextureContext) bool {
	if _, ok := g.prepared[tc]; ok {
		return false
	}
	g.prepared[tc] = struct{}{}
	return true
}

// UnmarkPreparedTexture removes tc from the prepared textures. It reports
// whether tc was present. Unmarking an unknown texture is not an error.
func (g *Guardian) UnmarkPreparedTexture(tc *TextureContext) bool {
	if _, ok := g.prepared[tc]; !ok {
		return false
	}
	delete(g.prepared, tc)
	return true
}

// IsPreparedTexture reports whether tc is currently prepared.
func (g *Guardian) IsPreparedTexture(tc *TextureContext) bool {
	_, ok := g.prepared[tc]
	return ok
}

// PreparedTextures returns the number of prepared textures.
func (g *Guardian) PreparedTextures() int {
	return len(g.prepared)
}

// ReleaseTexture frees tc on the backend, unmarks it and drops it from
// the texture pool.
func (g *Guardian) ReleaseTexture(tc *TextureContext) {
	g.backend.ReleaseTexture(tc)
	tc.released = true
	g.UnmarkPreparedTexture(tc)
	g.pool.forget(tc)
	g.logger.Debug("guardian: texture released", "texture", tc.String())
}

// ReleaseAllTextures releases every prepared texture.
//
// The prepared set is copied first: releasing one texture may unmark
// others.
func (g *Guardian) ReleaseAllTextures() {
	snapshot := make([]*TextureContext, 0, len(g.prepared))
	for tc := range g.prepared {
		snapshot = append(snapshot, tc)
	}
	for _, tc := range snapshot {
		g.ReleaseTexture(tc)
	}
	if n := len(g.prepared); n != 0 {
		panic(fmt.Sprintf("guardian: %d textures still prepared after releasing all", n))
	}
	if len(snapshot) > 0 {
		g.logger.Info("guardian: released all textures", "count", len(snapshot))
	}
}
