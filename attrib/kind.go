package attrib

import "strconv"

// Kind identifies an attribute category. Kinds are totally ordered and the
// order is the order in which attributes are issued by a single state
// change, so callers can encode issue dependencies in their kind numbers.
type Kind uint16

// Built-in kinds, in issue order.
const (
	KindInvalid Kind = iota
	KindBlend
	KindColor
	KindColorWrite
	KindCullFace
	KindDepthTest
	KindDepthWrite

	// KindTexture0 is the first texture stage; stage n uses KindTexture0+n.
	KindTexture0
)

// MaxTextureStages is the number of texture stages with a built-in kind.
const MaxTextureStages = 16

// KindUser is the first kind available for caller-defined attributes.
const KindUser Kind = 1024

// TextureStage returns the kind of texture stage n.
// It panics if n is outside [0, MaxTextureStages).
func TextureStage(n int) Kind {
	if n < 0 || n >= MaxTextureStages {
		panic("attrib: texture stage out of range: " + strconv.Itoa(n))
	}
	return KindTexture0 + Kind(n)
}

// IsTexture reports whether k is a texture stage kind.
func (k Kind) IsTexture() bool {
	return k >= KindTexture0 && k < KindTexture0+MaxTextureStages
}

// Stage returns the texture stage of k, or -1 if k is not a texture kind.
func (k Kind) Stage() int {
	if !k.IsTexture() {
		return -1
	}
	return int(k - KindTexture0)
}

var kindNames = [...]string{
	KindInvalid:    "Invalid",
	KindBlend:      "Blend",
	KindColor:      "Color",
	KindColorWrite: "ColorWrite",
	KindCullFace:   "CullFace",
	KindDepthTest:  "DepthTest",
	KindDepthWrite: "DepthWrite",
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch {
	case int(k) < len(kindNames):
		return kindNames[k]
	case k.IsTexture():
		return "Texture" + strconv.Itoa(k.Stage())
	case k >= KindUser:
		return "User" + strconv.Itoa(int(k-KindUser))
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind returns the kind with the given name, as produced by
// [Kind.String]. Names are matched in snake case as well, so "depth_test"
// and "DepthTest" both yield KindDepthTest.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if Kind(k) == KindInvalid {
			continue
		}
		if name == n || name == snake(n) {
			return Kind(k), true
		}
	}
	for _, prefix := range []string{"Texture", "texture"} {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			n, err := strconv.Atoi(name[len(prefix):])
			if err == nil && n >= 0 && n < MaxTextureStages {
				return TextureStage(n), true
			}
		}
	}
	return KindInvalid, false
}

func snake(s string) string {
	b := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b = append(b, '_')
			}
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
