package guardian

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
)

var errBroken = errors.New("broken backend")

func fakeFactory(name string, created *[]string) Factory {
	return func(cfg Config) (*Guardian, error) {
		*created = append(*created, name)
		return New(newFakeBackend(), cfg.Options()...)
	}
}

func brokenFactory(name string, created *[]string) Factory {
	return func(Config) (*Guardian, error) {
		*created = append(*created, name)
		return nil, errBroken
	}
}

func TestRegistryNew(t *testing.T) {
	var created []string
	reg := NewRegistry()
	reg.Register("fake", fakeFactory("fake", &created))

	g, err := reg.New("fake", Config{ClearColor: gputypes.ColorRed})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.ColorClearValue(); got != (gputypes.Color{R: 1}) {
		t.Errorf("clear color = %v, want configured red with alpha 0", got)
	}

	_, err = reg.New("missing", Config{})
	var nf *BackendNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("New(missing) error = %v, want BackendNotFoundError", err)
	}
}

func TestRegistryNewWrapsFactoryError(t *testing.T) {
	var created []string
	reg := NewRegistry()
	reg.Register("broken", brokenFactory("broken", &created))

	if _, err := reg.New("broken", Config{}); !errors.Is(err, errBroken) {
		t.Errorf("New(broken) error = %v, want wrapped errBroken", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	var created []string
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.Register(name, fakeFactory(name, &created))
	}
	if d := cmp.Diff([]string{"alpha", "mid", "zeta"}, reg.Available()); d != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", d)
	}

	reg.Unregister("mid")
	if reg.Has("mid") {
		t.Error("Has(mid) after Unregister = true")
	}
}

func TestRegistryNewPreferred(t *testing.T) {
	tests := []struct {
		name      string
		preferred []string
		broken    []string
		want      []string
	}{
		{"no preference uses sorted order", nil, nil, []string{"a"}},
		{"preferred first", []string{"c", "b"}, nil, []string{"c"}},
		{"unknown preference skipped", []string{"vulkan", "b"}, nil, []string{"b"}},
		{"falls through broken", []string{"c", "b"}, []string{"c"}, []string{"c", "b"}},
		{"rest after preferred", []string{"c"}, []string{"c"}, []string{"c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created []string
			reg := NewRegistry(tt.preferred...)
			for _, name := range []string{"a", "b", "c"} {
				if slices.Contains(tt.broken, name) {
					reg.Register(name, brokenFactory(name, &created))
				} else {
					reg.Register(name, fakeFactory(name, &created))
				}
			}

			g, err := reg.NewPreferred(Config{})
			if err != nil {
				t.Fatal(err)
			}
			if g == nil {
				t.Fatal("NewPreferred returned nil guardian")
			}
			if d := cmp.Diff(tt.want, created); d != "" {
				t.Errorf("factories tried mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestRegistryNewPreferredErrors(t *testing.T) {
	if _, err := NewRegistry().NewPreferred(Config{}); !errors.Is(err, ErrNoBackend) {
		t.Errorf("empty registry error = %v, want ErrNoBackend", err)
	}

	var created []string
	reg := NewRegistry()
	reg.Register("x", brokenFactory("x", &created))
	_, err := reg.NewPreferred(Config{})
	if !errors.Is(err, ErrNoBackend) || !errors.Is(err, errBroken) {
		t.Errorf("all-broken error = %v, want ErrNoBackend joined with errBroken", err)
	}
}

func TestRegistryPreferences(t *testing.T) {
	var created []string
	reg := NewRegistry("b")
	reg.Register("a", fakeFactory("a", &created))
	reg.Register("b", fakeFactory("b", &created))

	if reg.Best() != "b" {
		t.Errorf("Best() = %q, want b", reg.Best())
	}
	reg.SetPreferred("missing", "a")
	if d := cmp.Diff([]string{"missing", "a"}, reg.Preferred()); d != "" {
		t.Errorf("Preferred() mismatch (-want +got):\n%s", d)
	}
	if reg.Best() != "a" {
		t.Errorf("Best() = %q, want a", reg.Best())
	}
	if NewRegistry().Best() != "" {
		t.Error("Best() of empty registry is not empty")
	}
}
