package attrib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetPutKeepsOrder(t *testing.T) {
	s := &Set{}
	s.Add(DepthTestOn())
	s.Add(red)
	s.Add(BlendAdditive())
	s.Add(Texture{Stage: 1, Handle: &fakeTexture{N: 7}})

	want := []Kind{KindBlend, KindColor, KindDepthTest, TextureStage(1)}
	if d := cmp.Diff(want, s.Kinds()); d != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", d)
	}

	s.Add(green)
	if s.Len() != 4 {
		t.Errorf("Len() = %d after replacing a kind, want 4", s.Len())
	}
	v, ok := s.Get(KindColor)
	if !ok || v.CompareTo(green) != 0 {
		t.Errorf("Get(KindColor) = %v, %t, want %v", v, ok, green)
	}
}

func TestSetUnsetAndDelete(t *testing.T) {
	s := NewSet(red, BlendAlpha())
	s.Unset(KindColor)

	v, ok := s.Get(KindColor)
	if !ok || v != nil {
		t.Errorf("Get after Unset = %v, %t, want nil, true", v, ok)
	}
	if !s.Has(KindColor) {
		t.Error("Has(KindColor) = false after Unset")
	}

	if !s.Delete(KindColor) {
		t.Error("Delete(KindColor) = false, want true")
	}
	if s.Delete(KindColor) {
		t.Error("second Delete(KindColor) = true, want false")
	}
	if s.Has(KindColor) {
		t.Error("Has(KindColor) = true after Delete")
	}
}

func TestNewSetDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewSet with duplicate kinds should panic")
		}
	}()
	NewSet(red, green)
}

func TestNewSetFromEntriesSorts(t *testing.T) {
	s := NewSetFromEntries(
		Entry{Kind: KindDepthWrite, Value: DepthWrite{}},
		Entry{Kind: KindBlend},
		Entry{Kind: KindColor, Value: red},
	)
	want := []Kind{KindBlend, KindColor, KindDepthWrite}
	if d := cmp.Diff(want, s.Kinds()); d != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", d)
	}
}

func TestSetNilReadsEmpty(t *testing.T) {
	var s *Set
	if s.Len() != 0 {
		t.Errorf("nil Len() = %d", s.Len())
	}
	if _, ok := s.Get(KindColor); ok {
		t.Error("nil Get() found a value")
	}
	for range s.All() {
		t.Error("nil All() yielded an entry")
	}
	if c := s.Clone(); c == nil || c.Len() != 0 {
		t.Error("nil Clone() should return an empty set")
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := NewSet(red)
	c := s.Clone()
	c.Add(BlendAlpha())
	c.Add(green)

	if s.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", s.Len())
	}
	if v, _ := s.Get(KindColor); v.CompareTo(red) != 0 {
		t.Errorf("original color changed to %v", v)
	}
}

func TestSetEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Set
		want bool
	}{
		{"both empty", &Set{}, nil, true},
		{"same values", NewSet(red, BlendOff()), NewSet(RGBA(1, 0, 0, 1), BlendOff()), true},
		{"disabled blends", NewSet(BlendOff()), NewSet(Blend{State: BlendAlpha().State}), true},
		{"different value", NewSet(red), NewSet(green), false},
		{"different kinds", NewSet(red), NewSet(BlendOff()), false},
		{"unset vs value", NewSetFromEntries(Entry{Kind: KindColor}), NewSet(red), false},
		{"both unset", NewSetFromEntries(Entry{Kind: KindColor}), NewSetFromEntries(Entry{Kind: KindColor}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestSetAllStopsEarly(t *testing.T) {
	s := NewSet(red, BlendAlpha(), DepthTestOn())
	var seen []Kind
	for k := range s.All() {
		seen = append(seen, k)
		if k == KindColor {
			break
		}
	}
	if d := cmp.Diff([]Kind{KindBlend, KindColor}, seen); d != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", d)
	}
}

func TestSetString(t *testing.T) {
	s := NewSet(red, BlendAdditive())
	s.Unset(KindDepthTest)
	want := "{Blend: additive, Color: (1,0,0,1), DepthTest: unset}"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSetValidate(t *testing.T) {
	s := NewSet(red, DepthTestOn())
	s.Unset(KindBlend)
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	s.Put(KindDepthWrite, BlendAlpha())
	if err := s.Validate(); err == nil {
		t.Error("Validate() accepted a blend stored under DepthWrite")
	}
}
