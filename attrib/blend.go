package attrib

import (
	"cmp"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Blend controls framebuffer blending. The initial value is blending
// disabled. Two disabled Blend values compare equal whatever their State.
type Blend struct {
	Enabled bool
	State   gputypes.BlendState
}

// BlendOff returns a Blend with blending disabled.
func BlendOff() Blend {
	return Blend{State: gputypes.BlendStateReplace()}
}

// BlendAlpha returns standard non-premultiplied alpha blending.
func BlendAlpha() Blend {
	return Blend{Enabled: true, State: gputypes.BlendStateAlpha()}
}

// BlendPremultiplied returns blending for premultiplied alpha.
func BlendPremultiplied() Blend {
	return Blend{Enabled: true, State: gputypes.BlendStatePremultiplied()}
}

// BlendAdditive returns additive blending: dst + src.
func BlendAdditive() Blend {
	add := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationAdd,
	}
	return Blend{Enabled: true, State: gputypes.BlendState{Color: add, Alpha: add}}
}

var blendPresets = []struct {
	name  string
	blend func() Blend
}{
	{"alpha", BlendAlpha},
	{"premultiplied", BlendPremultiplied},
	{"additive", BlendAdditive},
}

// BlendByName returns the preset blend with the given name: "off",
// "alpha", "premultiplied" or "additive".
func BlendByName(name string) (Blend, bool) {
	if name == "off" {
		return BlendOff(), true
	}
	for _, p := range blendPresets {
		if p.name == name {
			return p.blend(), true
		}
	}
	return Blend{}, false
}

// Kind implements [Attribute].
func (Blend) Kind() Kind { return KindBlend }

// Issue implements [Value].
func (bl Blend) Issue(b Backend) { b.SetBlend(bl.Enabled, bl.State) }

// MakeInitial implements [Value].
func (Blend) MakeInitial() Value { return BlendOff() }

// CompareTo implements [Value].
func (bl Blend) CompareTo(other Value) int {
	o, ok := other.(Blend)
	if !ok {
		return compareType(bl, other)
	}
	if d := compareBool(bl.Enabled, o.Enabled); d != 0 || !bl.Enabled {
		return d
	}
	if d := compareComponent(bl.State.Color, o.State.Color); d != 0 {
		return d
	}
	return compareComponent(bl.State.Alpha, o.State.Alpha)
}

func compareComponent(a, b gputypes.BlendComponent) int {
	if d := cmp.Compare(a.SrcFactor, b.SrcFactor); d != 0 {
		return d
	}
	if d := cmp.Compare(a.DstFactor, b.DstFactor); d != 0 {
		return d
	}
	return cmp.Compare(a.Operation, b.Operation)
}

func (bl Blend) String() string {
	if !bl.Enabled {
		return "off"
	}
	for _, p := range blendPresets {
		if p.blend().CompareTo(bl) == 0 {
			return p.name
		}
	}
	c := bl.State.Color
	return fmt.Sprintf("%v(src*%v, dst*%v)", c.Operation, c.SrcFactor, c.DstFactor)
}
