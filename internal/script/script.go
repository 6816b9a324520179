package script

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/guardian"
	toml "github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownAttribute is returned for a frame key that names no
	// attribute kind.
	ErrUnknownAttribute = errors.New("script: unknown attribute")

	// ErrBadValue is returned for an attribute value of the wrong type or
	// out of range.
	ErrBadValue = errors.New("script: bad value")

	// ErrUnknownTexture is returned when a frame binds a texture the
	// script does not define.
	ErrUnknownTexture = errors.New("script: unknown texture")
)

// Script is a sequence of attribute states replayed one per frame.
//
//	complete = true
//
//	[textures.checker]
//	pattern = "checker"
//	size = 8
//
//	[[frame]]
//	blend = "alpha"
//	color = [1, 0, 0, 1]
//	depth_test = "less"
//	texture0 = "checker"
//
//	[[frame]]
//	complete = false
//	unset = ["blend"]
type Script struct {
	// Complete is the default request mode of the frames.
	Complete bool

	// Textures are the textures the frames can bind, by name.
	Textures map[string]TextureDef

	// Frames are the requested states in replay order.
	Frames []Frame

	// Dir is the directory relative texture paths resolve against.
	Dir string
}

// Frame is one requested state.
type Frame struct {
	// Name is an optional label used in output.
	Name string

	// Complete overrides the script default when set.
	Complete *bool

	// Attrs maps attribute names, as accepted by attrib.ParseKind, to
	// their raw TOML values.
	Attrs map[string]any

	// Unset lists attribute names to explicitly unset.
	Unset []string
}

type rawScript struct {
	Complete bool                  `toml:"complete"`
	Textures map[string]TextureDef `toml:"textures"`
	Frames   []map[string]any      `toml:"frame"`
}

// Parse decodes a script from TOML.
func Parse(data []byte) (*Script, error) {
	var raw rawScript
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	s := &Script{
		Complete: raw.Complete,
		Textures: raw.Textures,
		Frames:   make([]Frame, 0, len(raw.Frames)),
	}
	for i, table := range raw.Frames {
		f, err := newFrame(table)
		if err != nil {
			return nil, fmt.Errorf("script: frame %d: %w", i+1, err)
		}
		s.Frames = append(s.Frames, f)
	}
	for name, def := range s.Textures {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("script: texture %q: %w", name, err)
		}
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

func newFrame(table map[string]any) (Frame, error) {
	f := Frame{Attrs: make(map[string]any, len(table))}
	for key, v := range table {
		switch key {
		case "name":
			s, ok := v.(string)
			if !ok {
				return f, badValue(key, v)
			}
			f.Name = s
		case "complete":
			b, ok := v.(bool)
			if !ok {
				return f, badValue(key, v)
			}
			f.Complete = &b
		case "unset":
			names, err := stringList(key, v)
			if err != nil {
				return f, err
			}
			f.Unset = names
		default:
			f.Attrs[key] = v
		}
	}
	return f, nil
}

// IsComplete returns the request mode of the frame.
func (f Frame) IsComplete(scriptDefault bool) bool {
	if f.Complete != nil {
		return *f.Complete
	}
	return scriptDefault
}

// Build converts the frame into a request set. Texture attributes look up
// their handles in textures by name; an empty name leaves the stage
// unbound.
func (f Frame) Build(textures map[string]*guardian.TextureContext) (*attrib.Set, error) {
	s := &attrib.Set{}
	// Sorted so the first error is deterministic.
	for _, key := range slices.Sorted(maps.Keys(f.Attrs)) {
		k, ok := attrib.ParseKind(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
		}
		a, err := parseAttr(k, f.Attrs[key], textures)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		s.Add(a)
	}
	for _, name := range f.Unset {
		k, ok := attrib.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
		if s.Has(k) {
			return nil, fmt.Errorf("%w: %s both set and unset", ErrBadValue, name)
		}
		s.Unset(k)
	}
	return s, nil
}

func parseAttr(k attrib.Kind, v any, textures map[string]*guardian.TextureContext) (attrib.Attribute, error) {
	if k.IsTexture() {
		name, ok := v.(string)
		if !ok {
			return nil, badValue(k.String(), v)
		}
		if name == "" {
			return attrib.Texture{Stage: k.Stage()}, nil
		}
		tc, ok := textures[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
		}
		return attrib.Texture{Stage: k.Stage(), Handle: tc}, nil
	}

	switch k {
	case attrib.KindBlend:
		name, ok := v.(string)
		if !ok {
			return nil, badValue("blend", v)
		}
		b, ok := attrib.BlendByName(name)
		if !ok {
			return nil, badValue("blend", v)
		}
		return b, nil
	case attrib.KindColor:
		c, err := parseColor(v)
		if err != nil {
			return nil, err
		}
		return attrib.Color{C: c}, nil
	case attrib.KindColorWrite:
		s, ok := v.(string)
		if !ok {
			return nil, badValue("color_write", v)
		}
		mask, err := parseWriteMask(s)
		if err != nil {
			return nil, err
		}
		return attrib.ColorWrite{Mask: mask}, nil
	case attrib.KindCullFace:
		s, ok := v.(string)
		if !ok {
			return nil, badValue("cull_face", v)
		}
		return parseCull(s)
	case attrib.KindDepthTest:
		return parseDepthTest(v)
	case attrib.KindDepthWrite:
		b, ok := v.(bool)
		if !ok {
			return nil, badValue("depth_write", v)
		}
		return attrib.DepthWrite{Enabled: b}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, k)
}

var compareFunctions = map[string]gputypes.CompareFunction{
	"never":         gputypes.CompareFunctionNever,
	"less":          gputypes.CompareFunctionLess,
	"equal":         gputypes.CompareFunctionEqual,
	"less_equal":    gputypes.CompareFunctionLessEqual,
	"greater":       gputypes.CompareFunctionGreater,
	"not_equal":     gputypes.CompareFunctionNotEqual,
	"greater_equal": gputypes.CompareFunctionGreaterEqual,
	"always":        gputypes.CompareFunctionAlways,
}

// parseDepthTest accepts true (less), false, "off" or a compare function
// name.
func parseDepthTest(v any) (attrib.Attribute, error) {
	switch v := v.(type) {
	case bool:
		if v {
			return attrib.DepthTestOn(), nil
		}
		return attrib.DepthTest{Compare: gputypes.CompareFunctionLess}, nil
	case string:
		if v == "off" {
			return attrib.DepthTest{Compare: gputypes.CompareFunctionLess}, nil
		}
		f, ok := compareFunctions[v]
		if !ok {
			return nil, badValue("depth_test", v)
		}
		return attrib.DepthTest{Enabled: true, Compare: f}, nil
	}
	return nil, badValue("depth_test", v)
}

// parseCull accepts a mode optionally followed by a winding: "back",
// "front cw", "none".
func parseCull(s string) (attrib.Attribute, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, badValue("cull_face", s)
	}
	c := attrib.CullFace{Front: gputypes.FrontFaceCCW}
	switch fields[0] {
	case "none":
		c.Mode = gputypes.CullModeNone
	case "front":
		c.Mode = gputypes.CullModeFront
	case "back":
		c.Mode = gputypes.CullModeBack
	default:
		return nil, badValue("cull_face", s)
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "ccw":
		case "cw":
			c.Front = gputypes.FrontFaceCW
		default:
			return nil, badValue("cull_face", s)
		}
	}
	return c, nil
}

// parseWriteMask accepts "none", "all" or any combination of the letters
// r, g, b and a.
func parseWriteMask(s string) (gputypes.ColorWriteMask, error) {
	switch s {
	case "none":
		return gputypes.ColorWriteMaskNone, nil
	case "all":
		return gputypes.ColorWriteMaskAll, nil
	case "":
		return 0, badValue("color_write", s)
	}
	var mask gputypes.ColorWriteMask
	for _, r := range s {
		switch r {
		case 'r':
			mask |= gputypes.ColorWriteMaskRed
		case 'g':
			mask |= gputypes.ColorWriteMaskGreen
		case 'b':
			mask |= gputypes.ColorWriteMaskBlue
		case 'a':
			mask |= gputypes.ColorWriteMaskAlpha
		default:
			return 0, badValue("color_write", s)
		}
	}
	return mask, nil
}

// parseColor accepts an array of three or four components in [0, 1].
// Alpha defaults to 1.
func parseColor(v any) (gputypes.Color, error) {
	list, ok := v.([]any)
	if !ok || len(list) < 3 || len(list) > 4 {
		return gputypes.Color{}, badValue("color", v)
	}
	c := [4]float64{3: 1}
	for i, e := range list {
		f, ok := number(e)
		if !ok || f < 0 || f > 1 {
			return gputypes.Color{}, badValue("color", v)
		}
		c[i] = f
	}
	return gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func stringList(key string, v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, badValue(key, v)
	}
	out := make([]string, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, badValue(key, v)
		}
		out[i] = s
	}
	return out, nil
}

func badValue(key string, v any) error {
	return fmt.Errorf("%w for %s: %v", ErrBadValue, key, v)
}
