package guardian

import "strings"

// BufferType is a bit mask of framebuffer planes.
type BufferType uint16

// Framebuffer planes.
const (
	BufferFront BufferType = 1 << iota
	BufferBack
	BufferDepth
	BufferStencil
	BufferAccum
	BufferAux

	BufferNone  BufferType = 0
	BufferColor            = BufferFront | BufferBack
	BufferAll              = BufferColor | BufferDepth | BufferStencil | BufferAccum | BufferAux
)

var bufferNames = [...]string{"front", "back", "depth", "stencil", "accum", "aux"}

// Has reports whether all planes of other are present in b.
func (b BufferType) Has(other BufferType) bool {
	return b&other == other
}

// String returns the plane names joined with "|", or "none".
func (b BufferType) String() string {
	if b == BufferNone {
		return "none"
	}
	var names []string
	for i, name := range bufferNames {
		if b&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// RenderBuffer is a set of framebuffer planes a guardian allows the
// caller to operate on. It is only valid while the guardian that
// returned it is.
type RenderBuffer struct {
	g       *Guardian
	buffers BufferType
}

// Buffers returns the planes of the render buffer.
func (rb RenderBuffer) Buffers() BufferType {
	return rb.buffers
}

// Guardian returns the guardian the render buffer belongs to.
func (rb RenderBuffer) Guardian() *Guardian {
	return rb.g
}

// IsEmpty reports whether the render buffer covers no planes.
func (rb RenderBuffer) IsEmpty() bool {
	return rb.buffers == BufferNone
}
