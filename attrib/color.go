package attrib

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Color is the flat color applied to geometry without vertex colors.
// The initial value is opaque white.
type Color struct {
	C gputypes.Color
}

// RGBA returns a Color attribute with the given components.
func RGBA(r, g, b, a float64) Color {
	return Color{C: gputypes.NewColor(r, g, b, a)}
}

// Kind implements [Attribute].
func (Color) Kind() Kind { return KindColor }

// Issue implements [Value].
func (c Color) Issue(b Backend) { b.SetColor(c.C) }

// MakeInitial implements [Value].
func (Color) MakeInitial() Value { return Color{C: gputypes.ColorWhite} }

// CompareTo implements [Value].
func (c Color) CompareTo(other Value) int {
	o, ok := other.(Color)
	if !ok {
		return compareType(c, other)
	}
	if d := cmp.Compare(c.C.R, o.C.R); d != 0 {
		return d
	}
	if d := cmp.Compare(c.C.G, o.C.G); d != 0 {
		return d
	}
	if d := cmp.Compare(c.C.B, o.C.B); d != 0 {
		return d
	}
	return cmp.Compare(c.C.A, o.C.A)
}

func (c Color) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", c.C.R, c.C.G, c.C.B, c.C.A)
}

// ColorWrite selects the color channels written by draws.
// The initial value writes all channels.
type ColorWrite struct {
	Mask gputypes.ColorWriteMask
}

// Kind implements [Attribute].
func (ColorWrite) Kind() Kind { return KindColorWrite }

// Issue implements [Value].
func (w ColorWrite) Issue(b Backend) { b.SetColorWriteMask(w.Mask) }

// MakeInitial implements [Value].
func (ColorWrite) MakeInitial() Value { return ColorWrite{Mask: gputypes.ColorWriteMaskAll} }

// CompareTo implements [Value].
func (w ColorWrite) CompareTo(other Value) int {
	o, ok := other.(ColorWrite)
	if !ok {
		return compareType(w, other)
	}
	return cmp.Compare(w.Mask, o.Mask)
}

func (w ColorWrite) String() string {
	if w.Mask == gputypes.ColorWriteMaskNone {
		return "none"
	}
	var b strings.Builder
	for _, ch := range []struct {
		bit  gputypes.ColorWriteMask
		name byte
	}{
		{gputypes.ColorWriteMaskRed, 'r'},
		{gputypes.ColorWriteMaskGreen, 'g'},
		{gputypes.ColorWriteMaskBlue, 'b'},
		{gputypes.ColorWriteMaskAlpha, 'a'},
	} {
		if w.Mask&ch.bit != 0 {
			b.WriteByte(ch.name)
		}
	}
	return b.String()
}
