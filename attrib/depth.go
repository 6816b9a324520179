package attrib

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// DepthTest enables the depth test with a comparison function.
// The initial value is the depth test disabled. Two disabled DepthTest
// values compare equal whatever their Compare function.
type DepthTest struct {
	Enabled bool
	Compare gputypes.CompareFunction
}

// DepthTestOn returns an enabled depth test passing fragments closer than
// the stored depth.
func DepthTestOn() DepthTest {
	return DepthTest{Enabled: true, Compare: gputypes.CompareFunctionLess}
}

// Kind implements [Attribute].
func (DepthTest) Kind() Kind { return KindDepthTest }

// Issue implements [Value].
func (d DepthTest) Issue(b Backend) { b.SetDepthTest(d.Enabled, d.Compare) }

// MakeInitial implements [Value].
func (DepthTest) MakeInitial() Value {
	return DepthTest{Compare: gputypes.CompareFunctionLess}
}

// CompareTo implements [Value].
func (d DepthTest) CompareTo(other Value) int {
	o, ok := other.(DepthTest)
	if !ok {
		return compareType(d, other)
	}
	if c := compareBool(d.Enabled, o.Enabled); c != 0 || !d.Enabled {
		return c
	}
	return cmp.Compare(d.Compare, o.Compare)
}

func (d DepthTest) String() string {
	if !d.Enabled {
		return "off"
	}
	return d.Compare.String()
}

// DepthWrite enables writes to the depth buffer.
// The initial value has depth writes enabled.
type DepthWrite struct {
	Enabled bool
}

// Kind implements [Attribute].
func (DepthWrite) Kind() Kind { return KindDepthWrite }

// Issue implements [Value].
func (d DepthWrite) Issue(b Backend) { b.SetDepthWrite(d.Enabled) }

// MakeInitial implements [Value].
func (DepthWrite) MakeInitial() Value { return DepthWrite{Enabled: true} }

// CompareTo implements [Value].
func (d DepthWrite) CompareTo(other Value) int {
	o, ok := other.(DepthWrite)
	if !ok {
		return compareType(d, other)
	}
	return compareBool(d.Enabled, o.Enabled)
}

func (d DepthWrite) String() string {
	if d.Enabled {
		return "on"
	}
	return "off"
}

// CullFace selects the culled faces and the front face winding.
// The initial value culls back faces with counter-clockwise front faces.
type CullFace struct {
	Mode  gputypes.CullMode
	Front gputypes.FrontFace
}

// Kind implements [Attribute].
func (CullFace) Kind() Kind { return KindCullFace }

// Issue implements [Value].
func (c CullFace) Issue(b Backend) { b.SetCullMode(c.Mode, c.Front) }

// MakeInitial implements [Value].
func (CullFace) MakeInitial() Value {
	return CullFace{Mode: gputypes.CullModeBack, Front: gputypes.FrontFaceCCW}
}

// CompareTo implements [Value].
func (c CullFace) CompareTo(other Value) int {
	o, ok := other.(CullFace)
	if !ok {
		return compareType(c, other)
	}
	if d := cmp.Compare(c.Mode, o.Mode); d != 0 {
		return d
	}
	return cmp.Compare(c.Front, o.Front)
}

func (c CullFace) String() string {
	return c.Mode.String() + "/" + c.Front.String()
}
