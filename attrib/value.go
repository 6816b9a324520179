package attrib

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gogpu/gputypes"
)

// Value is a single attribute value. Values are immutable once they have
// been stored in a [Set].
//
// A nil Value in a requested set means "explicitly unset this attribute".
type Value interface {
	// Issue programs the value onto the backend.
	Issue(b Backend)

	// MakeInitial returns the value representing the backend's default
	// state for this attribute kind.
	MakeInitial() Value

	// CompareTo orders the value against another value of the same kind.
	// It returns 0 if issuing other would have the same effect as
	// issuing the receiver.
	CompareTo(other Value) int
}

// Attribute is a Value that knows its own kind.
// All attributes defined in this package implement Attribute.
type Attribute interface {
	Value
	fmt.Stringer

	// Kind returns the kind the value is stored under.
	Kind() Kind
}

// TextureHandle is a backend texture that can be bound by a [Texture]
// attribute. Handles with equal IDs refer to the same texture.
type TextureHandle interface {
	ID() uint64
}

// Backend is the command surface attributes program.
//
// Implementations translate each call into backend state; the call order
// is the order produced by the merge diff.
type Backend interface {
	// SetColor sets the flat color used when vertices carry no color.
	SetColor(c gputypes.Color)

	// SetBlend enables or disables blending with the given state.
	SetBlend(enabled bool, state gputypes.BlendState)

	// SetColorWriteMask selects the color channels that are written.
	SetColorWriteMask(mask gputypes.ColorWriteMask)

	// SetCullMode sets face culling and the front face winding.
	SetCullMode(mode gputypes.CullMode, front gputypes.FrontFace)

	// SetDepthTest enables or disables the depth test.
	SetDepthTest(enabled bool, compare gputypes.CompareFunction)

	// SetDepthWrite enables or disables depth buffer writes.
	SetDepthWrite(enabled bool)

	// BindTexture binds tex to the given stage; a nil tex unbinds it.
	BindTexture(stage int, tex TextureHandle)
}

// compareType orders values of different dynamic types, so CompareTo
// stays a total order even when a caller stores foreign values under a
// built-in kind.
func compareType(a, b Value) int {
	return strings.Compare(typeName(a), typeName(b))
}

// typeName returns the dynamic type name of v; a nil value sorts first.
func typeName(v Value) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
