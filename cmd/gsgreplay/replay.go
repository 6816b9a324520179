package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/backend/native"
	"github.com/gogpu/gsg/backend/recorder"
	"github.com/gogpu/gsg/guardian"
	"github.com/gogpu/gsg/internal/script"
	"github.com/rs/zerolog"
)

// replayer runs frame scripts through a freshly created guardian.
type replayer struct {
	out    io.Writer
	log    zerolog.Logger
	reg    *guardian.Registry
	cfg    script.Config
	logger *slog.Logger

	// complete forces complete requests for every frame.
	complete bool
}

func newRegistry(preferred []string) *guardian.Registry {
	reg := guardian.NewRegistry()
	recorder.Register(reg)
	native.Register(reg)
	reg.SetPreferred(preferred...)
	return reg
}

// run replays the script at path once.
func (r *replayer) run(path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	g, err := r.reg.NewPreferred(r.cfg.Guardian(r.logger))
	if err != nil {
		return fmt.Errorf("create guardian: %w", err)
	}
	defer closeGuardian(g)
	r.log.Info().Str("backend", g.Backend().Name()).Int("frames", len(s.Frames)).Msg("replaying")

	textures, err := s.PrepareTextures(g)
	if err != nil {
		return err
	}

	for i, f := range s.Frames {
		req, err := f.Build(textures)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		complete := r.complete || f.IsComplete(s.Complete)

		before := g.Stats()
		n := g.BeginFrame()
		discardOutput(g)
		g.SetState(req, complete)

		title := fmt.Sprintf("frame %d", n)
		if f.Name != "" {
			title += " " + f.Name
		}
		fmt.Fprintf(r.out, "%s (complete=%t)\n", title, complete)
		printOutput(r.out, g)
		printStats(r.out, g.Stats().Sub(before))
	}

	total := g.Stats()
	fmt.Fprintf(r.out, "total: %d frames, %d calls, %d issued\n", total.Frames, total.Calls, total.Issued())
	return nil
}

// discardOutput drops backend output that does not belong to the frame,
// such as texture uploads.
func discardOutput(g *guardian.Guardian) {
	switch b := g.Backend().(type) {
	case *recorder.Recorder:
		b.Reset()
	case *native.Backend:
		b.ClearDirty()
	}
}

func printOutput(w io.Writer, g *guardian.Guardian) {
	switch b := g.Backend().(type) {
	case *recorder.Recorder:
		for _, line := range b.Lines() {
			fmt.Fprintf(w, "  %s\n", line)
		}
	case *native.Backend:
		if !b.Dirty() {
			fmt.Fprintln(w, "  pipeline unchanged")
			break
		}
		ps := b.PipelineState()
		blend := "off"
		if ps.Target.Blend != nil {
			c := ps.Target.Blend.Color
			blend = fmt.Sprintf("%v %v %v", c.SrcFactor, c.DstFactor, c.Operation)
		}
		fmt.Fprintf(w, "  pipeline blend=%s depth=%v write=%t cull=%v/%v\n",
			blend, ps.DepthStencil.DepthCompare, ps.DepthStencil.DepthWriteEnabled,
			ps.Primitive.CullMode, ps.Primitive.FrontFace)
		if err := b.Err(); err != nil {
			fmt.Fprintf(w, "  error: %v\n", err)
		}
	}
}

func printStats(w io.Writer, s guardian.Stats) {
	parts := make([]string, 0, len(s.Actions))
	for a, n := range s.Actions {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", attrib.Action(a), n))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}
	fmt.Fprintf(w, "  actions: %s\n", strings.Join(parts, " "))
}

func closeGuardian(g *guardian.Guardian) {
	g.ReleaseAllTextures()
	if b, ok := g.Backend().(*native.Backend); ok {
		b.Close()
	}
}
