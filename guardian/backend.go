package guardian

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
)

// Backend is what a Guardian drives. Besides the attribute commands it
// reports the framebuffer planes it has and manages texture memory.
type Backend interface {
	attrib.Backend

	// Name identifies the backend in logs and registries.
	Name() string

	// BufferMask returns the framebuffer planes the backend provides.
	// The guardian reads it on construction and on every Reset.
	BufferMask() BufferType

	// PrepareTexture uploads a texture and returns its context.
	// Implementations create the context with NewTextureContext.
	PrepareTexture(desc TextureDesc) (*TextureContext, error)

	// ReleaseTexture frees the backend memory of a texture. It is called
	// by the guardian, which then unmarks the texture.
	ReleaseTexture(tc *TextureContext)
}

// TextureDesc describes a texture to prepare.
type TextureDesc struct {
	// Label is used for debugging. If empty, a unique label is generated.
	Label string

	// Width and Height are the texture size in pixels.
	Width, Height int

	// Format defaults to RGBA8Unorm.
	Format gputypes.TextureFormat

	// Usage defaults to TextureBinding|CopyDst.
	Usage gputypes.TextureUsage

	// Pixels is the optional initial content, tightly packed rows of
	// Width*4 bytes.
	Pixels []byte
}

// withDefaults fills in the default format and usage.
func (d TextureDesc) withDefaults() TextureDesc {
	if d.Format == gputypes.TextureFormatUndefined {
		d.Format = gputypes.TextureFormatRGBA8Unorm
	}
	if d.Usage == gputypes.TextureUsageNone {
		d.Usage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	}
	return d
}

// Validate checks the size and pixel data of the descriptor.
func (d TextureDesc) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return ErrInvalidTexture
	}
	if d.Pixels != nil && len(d.Pixels) != d.Width*d.Height*4 {
		return ErrInvalidTexture
	}
	return nil
}
