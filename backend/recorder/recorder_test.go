package recorder

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/guardian"
	"github.com/google/go-cmp/cmp"
)

func newGuardian(t *testing.T) (*guardian.Guardian, *Recorder) {
	t.Helper()
	rec := New()
	g, err := guardian.New(rec)
	if err != nil {
		t.Fatal(err)
	}
	return g, rec
}

func TestRecorderCommands(t *testing.T) {
	g, rec := newGuardian(t)

	g.SetState(attrib.NewSet(
		attrib.BlendAlpha(),
		attrib.RGBA(1, 0.5, 0, 1),
		attrib.ColorWrite{Mask: gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskGreen},
		attrib.CullFace{Mode: gputypes.CullModeFront, Front: gputypes.FrontFaceCW},
		attrib.DepthTestOn(),
		attrib.DepthWrite{Enabled: false},
	), true)

	want := []string{
		"blend on SrcAlpha OneMinusSrcAlpha Add",
		"color 1 0.5 0 1",
		"colorwrite rg",
		"cull Front CW",
		"depthtest on Less",
		"depthwrite off",
	}
	if d := cmp.Diff(want, rec.Lines()); d != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", d)
	}

	rec.Reset()
	g.SetState(nil, true)
	want = []string{
		"blend off",
		"color 1 1 1 1",
		"colorwrite rgba",
		"cull Back CCW",
		"depthtest off",
		"depthwrite on",
	}
	if d := cmp.Diff(want, rec.Lines()); d != "" {
		t.Errorf("reset commands mismatch (-want +got):\n%s", d)
	}
}

func TestRecorderTextures(t *testing.T) {
	g, rec := newGuardian(t)

	tc, err := g.PrepareTexture(guardian.TextureDesc{Label: "checker", Width: 2, Height: 1, Pixels: make([]byte, 8)})
	if err != nil {
		t.Fatal(err)
	}
	if err := tc.UpdateData(make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	g.SetState(attrib.NewSet(attrib.Texture{Stage: 0, Handle: tc}), false)
	g.SetState(attrib.NewSet(), true)
	if rec.LiveTextures() != 1 {
		t.Errorf("LiveTextures() = %d, want 1", rec.LiveTextures())
	}
	g.ReleaseAllTextures()

	want := []string{
		"prepare checker 2x1 RGBA8Unorm",
		"upload checker 8",
		"upload checker 8",
		"bind 0 checker",
		"unbind 0",
		"release checker",
	}
	if d := cmp.Diff(want, rec.Lines()); d != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", d)
	}
	if rec.LiveTextures() != 0 {
		t.Errorf("LiveTextures() = %d after release", rec.LiveTextures())
	}
}

func TestRecorderString(t *testing.T) {
	rec := New()
	rec.SetDepthWrite(true)
	rec.BindTexture(3, fakeHandle(42))

	if got, want := rec.String(), "depthwrite on\nbind 3 #42\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	cmds := rec.Commands()
	if len(cmds) != 2 || cmds[1].Op != "bind" {
		t.Errorf("Commands() = %v", cmds)
	}
	cmds[0].Op = "changed"
	if rec.Commands()[0].Op != "depthwrite" {
		t.Error("Commands() returned the internal slice")
	}
	if (Command{Op: "blend"}).String() != "blend" {
		t.Error("Command without args has trailing space")
	}
}

func TestRecorderBuffers(t *testing.T) {
	g, err := guardian.New(NewWithBuffers(guardian.BufferColor))
	if err != nil {
		t.Fatal(err)
	}
	if got := g.RenderBuffer(guardian.BufferAll).Buffers(); got != guardian.BufferColor {
		t.Errorf("RenderBuffer(all) = %v, want front|back", got)
	}
}

func TestRegister(t *testing.T) {
	reg := guardian.NewRegistry()
	Register(reg)

	g, err := reg.New(Name, guardian.Config{TexturePoolSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Backend().(*Recorder); !ok {
		t.Errorf("backend is %T, want *Recorder", g.Backend())
	}
}

type fakeHandle uint64

func (h fakeHandle) ID() uint64 { return uint64(h) }
