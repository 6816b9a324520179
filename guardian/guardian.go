package guardian

import (
	"context"
	"log/slog"

	"github.com/gogpu/gsg/attrib"
)

// Guardian keeps the state programmed on a backend and issues only what
// a requested state changes.
//
// A Guardian must be driven from a single goroutine.
type Guardian struct {
	backend Backend
	logger  *slog.Logger
	opts    options

	active   *attrib.Set
	prepared map[*TextureContext]struct{}
	pool     *TexturePool

	allowed BufferType
	clear   ClearValues
	normals bool

	frame uint64
	stats Stats

	// issue is the merge callback, bound once so SetState does not
	// allocate a closure per call.
	issue func(attrib.Delta)
}

// New creates a guardian driving b.
func New(b Backend, opts ...Option) (*Guardian, error) {
	if b == nil {
		return nil, ErrNilBackend
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Guardian{
		backend:  b,
		logger:   o.loggerOrDefault(),
		opts:     o,
		active:   &attrib.Set{},
		prepared: make(map[*TextureContext]struct{}),
	}
	g.issue = g.apply
	g.pool = newTexturePool(g, o.poolSize)
	g.Reset()

	g.logger.Info("guardian: created", "backend", b.Name(), "buffers", g.allowed.String())
	return g, nil
}

// Backend returns the backend the guardian drives.
func (g *Guardian) Backend() Backend {
	return g.backend
}

// Textures returns the guardian's texture pool.
func (g *Guardian) Textures() *TexturePool {
	return g.pool
}

// SetState moves the backend to the requested state.
//
// If complete is true, requested is the whole state: every active
// attribute missing from it, or explicitly unset in it, is reset to its
// initial value. If complete is false, only the attributes named in
// requested are touched; unset entries are ignored.
//
// A nil requested is an empty request, so SetState(nil, true) resets
// every active attribute.
func (g *Guardian) SetState(requested *attrib.Set, complete bool) {
	g.stats.Calls++
	if g.logger.Enabled(context.Background(), slog.LevelDebug) {
		g.logger.Debug("guardian: set state",
			"frame", g.frame,
			"complete", complete,
			"requested", requested.String(),
		)
	}
	g.active.Merge(requested, complete, g.issue)
}

// apply issues one delta on the backend.
func (g *Guardian) apply(d attrib.Delta) {
	g.stats.Actions[d.Action]++
	if !d.Action.Issues() {
		return
	}
	if g.logger.Enabled(context.Background(), slog.LevelDebug) {
		g.logger.Debug("guardian: issue",
			"kind", d.Kind.String(),
			"action", d.Action.String(),
			"value", d.Value,
		)
	}
	d.Value.Issue(g.backend)
}

// Reset forgets the active state and restores the default clear values.
// No backend command is issued: Reset records that the backend itself
// has just been reset, for example after recreating the window.
func (g *Guardian) Reset() {
	g.active.Clear()
	g.allowed = g.backend.BufferMask()
	g.clear = defaultClearValues(g.opts.clearColor)
	g.normals = false
}

// Active returns a copy of the active state.
func (g *Guardian) Active() *attrib.Set {
	return g.active.Clone()
}

// RenderBuffer returns the render buffer for the requested planes,
// restricted to the planes the backend provides.
func (g *Guardian) RenderBuffer(mask BufferType) RenderBuffer {
	return RenderBuffer{g: g, buffers: mask & g.allowed}
}

// BufferMask returns the planes the backend provides.
func (g *Guardian) BufferMask() BufferType {
	return g.allowed
}

// BeginFrame starts a new frame.
func (g *Guardian) BeginFrame() uint64 {
	g.frame++
	g.stats.Frames++
	return g.frame
}

// Frame returns the current frame number, 0 before the first BeginFrame.
func (g *Guardian) Frame() uint64 {
	return g.frame
}

// WantsNormals reports whether vertex normals should be sent.
func (g *Guardian) WantsNormals() bool {
	return g.normals
}

// SetNormalsEnabled records whether vertex normals are wanted, typically
// because lighting was turned on. Reset clears it.
func (g *Guardian) SetNormalsEnabled(enabled bool) {
	g.normals = enabled
}

// WantsTexcoords reports whether texture coordinates should be sent.
// The guardian itself never asks for them.
func (g *Guardian) WantsTexcoords() bool {
	return false
}

// WantsColors reports whether per-vertex colors should be sent.
// The guardian itself never asks for them.
func (g *Guardian) WantsColors() bool {
	return false
}

// Stats returns the counters collected since creation.
func (g *Guardian) Stats() Stats {
	return g.stats
}

// Stats counts guardian activity.
type Stats struct {
	// Frames counts BeginFrame calls.
	Frames uint64
	// Calls counts SetState calls.
	Calls uint64
	// Actions counts merge steps by action.
	Actions [attrib.UnissueNull + 1]uint64
}

// Issued returns the number of steps that programmed the backend.
func (s Stats) Issued() uint64 {
	var n uint64
	for a, c := range s.Actions {
		if attrib.Action(a).Issues() {
			n += c
		}
	}
	return n
}

// Sub returns the difference s - prev, for per-frame numbers.
func (s Stats) Sub(prev Stats) Stats {
	out := Stats{Frames: s.Frames - prev.Frames, Calls: s.Calls - prev.Calls}
	for i := range s.Actions {
		out.Actions[i] = s.Actions[i] - prev.Actions[i]
	}
	return out
}
