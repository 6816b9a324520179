package attrib

import (
	"cmp"
	"strconv"
)

// Texture binds a texture to a texture stage. Each stage is its own kind,
// see [TextureStage]. The initial value leaves the stage unbound.
type Texture struct {
	Stage  int
	Handle TextureHandle
}

// Kind implements [Attribute].
func (t Texture) Kind() Kind { return TextureStage(t.Stage) }

// Issue implements [Value].
func (t Texture) Issue(b Backend) { b.BindTexture(t.Stage, t.Handle) }

// MakeInitial implements [Value].
func (t Texture) MakeInitial() Value { return Texture{Stage: t.Stage} }

// CompareTo implements [Value]. Textures compare by handle ID; an unbound
// stage sorts before any bound one.
func (t Texture) CompareTo(other Value) int {
	o, ok := other.(Texture)
	if !ok {
		return compareType(t, other)
	}
	if d := cmp.Compare(t.Stage, o.Stage); d != 0 {
		return d
	}
	return cmp.Compare(handleID(t.Handle), handleID(o.Handle))
}

func (t Texture) String() string {
	if t.Handle == nil {
		return "unbound"
	}
	return "texture#" + strconv.FormatUint(t.Handle.ID(), 10)
}

// handleID returns 0 for a missing handle. Valid handles have non-zero IDs.
func handleID(h TextureHandle) uint64 {
	if h == nil {
		return 0
	}
	return h.ID()
}
