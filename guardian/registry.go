package guardian

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gsg"
)

// Config is what a Factory needs to create a guardian.
type Config struct {
	// ClearColor is the color clear value restored by Reset.
	ClearColor gputypes.Color

	// TexturePoolSize limits the guardian's TexturePool, 0 for unlimited.
	TexturePoolSize int

	// HALBackend selects the HAL variant for backends that drive a
	// device ("vulkan", "metal", "dx12", "gl", "noop"). Empty selects the
	// first one available.
	HALBackend string

	// Logger is passed to the guardian. Nil selects gsg.Logger.
	Logger *slog.Logger
}

// Options converts the configuration into guardian options.
func (c Config) Options() []Option {
	opts := []Option{
		WithClearColor(c.ClearColor),
		WithTexturePoolSize(c.TexturePoolSize),
	}
	if c.Logger != nil {
		opts = append(opts, WithLogger(c.Logger))
	}
	return opts
}

// Factory creates a guardian on a particular kind of backend.
type Factory func(cfg Config) (*Guardian, error)

// Registry maps backend names to factories.
//
// Backend packages add themselves with Register, usually from a function
// the application calls at startup:
//
//	reg := guardian.NewRegistry("native", "recorder")
//	recorder.Register(reg)
//	native.Register(reg)
//	g, err := reg.NewPreferred(cfg)
type Registry struct {
	factories *gpucontext.Registry[Factory]

	mu        sync.RWMutex
	preferred []string
}

// NewRegistry creates an empty registry. preferred lists backend names
// to try first, in order, when creating a guardian with NewPreferred.
func NewRegistry(preferred ...string) *Registry {
	return &Registry{
		factories: gpucontext.NewRegistry[Factory](),
		preferred: slices.Clone(preferred),
	}
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.factories.Register(name, func() Factory { return f })
}

// Unregister removes the factory registered under name.
func (r *Registry) Unregister(name string) {
	r.factories.Unregister(name)
}

// Has reports whether a factory is registered under name.
func (r *Registry) Has(name string) bool {
	return r.factories.Has(name)
}

// Available returns the registered names in sorted order.
func (r *Registry) Available() []string {
	names := r.factories.Available()
	slices.Sort(names)
	return names
}

// Preferred returns the preference order.
func (r *Registry) Preferred() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.preferred)
}

// SetPreferred replaces the preference order. Names that are not
// registered are kept, since their backend may register later, but are
// logged as warnings.
func (r *Registry) SetPreferred(names ...string) {
	for _, name := range names {
		if !r.Has(name) {
			gsg.Logger().Warn("guardian: unknown backend in preference list", "backend", name)
		}
	}
	r.mu.Lock()
	r.preferred = slices.Clone(names)
	r.mu.Unlock()
}

// New creates a guardian with the backend registered under name.
func (r *Registry) New(name string, cfg Config) (*Guardian, error) {
	if !r.Has(name) {
		return nil, &BackendNotFoundError{Name: name}
	}
	f := r.factories.Get(name)
	if f == nil {
		return nil, &BackendNotFoundError{Name: name}
	}
	g, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("guardian: create %s: %w", name, err)
	}
	return g, nil
}

// NewPreferred creates a guardian with the first backend that succeeds,
// trying the preferred names in order and then every other registered
// name in sorted order. Unknown preferred names are logged and skipped.
//
// If every backend fails, the errors are joined.
func (r *Registry) NewPreferred(cfg Config) (*Guardian, error) {
	order := r.order()
	if len(order) == 0 {
		return nil, ErrNoBackend
	}

	var errs []error
	for _, name := range order {
		g, err := r.New(name, cfg)
		if err == nil {
			return g, nil
		}
		gsg.Logger().Warn("guardian: backend failed", "backend", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(append([]error{ErrNoBackend}, errs...)...)
}

// order returns the names NewPreferred tries, in order.
func (r *Registry) order() []string {
	available := r.Available()
	preferred := r.Preferred()

	order := make([]string, 0, len(available))
	for _, name := range preferred {
		if !slices.Contains(available, name) {
			gsg.Logger().Warn("guardian: unknown backend in preference list", "backend", name)
			continue
		}
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	for _, name := range available {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	return order
}

// Best returns the name of the most preferred registered backend, or ""
// if none is registered.
func (r *Registry) Best() string {
	if order := r.order(); len(order) > 0 {
		return order[0]
	}
	return ""
}
