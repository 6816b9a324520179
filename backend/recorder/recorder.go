// Package recorder provides a guardian backend that records the command
// stream instead of driving a device.
//
// The recorder is used for tests and for dry runs of frame scripts: the
// recorded commands show exactly what a guardian issued and in which
// order.
//
//	rec := recorder.New()
//	g, _ := guardian.New(rec)
//	g.SetState(attrib.NewSet(attrib.BlendAlpha()), true)
//	fmt.Print(rec) // blend on SrcAlpha OneMinusSrcAlpha Add
package recorder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
	"github.com/gogpu/gsg/guardian"
)

// Name is the registry name of the recorder backend.
const Name = "recorder"

// Command is one recorded backend call.
type Command struct {
	Op   string
	Args []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	return c.Op + " " + strings.Join(c.Args, " ")
}

// Recorder is a guardian backend recording every call.
type Recorder struct {
	commands []Command
	mask     guardian.BufferType
	live     int
}

var _ guardian.Backend = (*Recorder)(nil)

// New creates a recorder providing every framebuffer plane.
func New() *Recorder {
	return &Recorder{mask: guardian.BufferAll}
}

// NewWithBuffers creates a recorder providing only the given planes.
func NewWithBuffers(mask guardian.BufferType) *Recorder {
	return &Recorder{mask: mask}
}

// Register adds the recorder backend to reg.
func Register(reg *guardian.Registry) {
	reg.Register(Name, func(cfg guardian.Config) (*guardian.Guardian, error) {
		return guardian.New(New(), cfg.Options()...)
	})
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded commands as strings.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.commands))
	for i, c := range r.commands {
		lines[i] = c.String()
	}
	return lines
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Reset forgets the recorded commands.
func (r *Recorder) Reset() {
	clear(r.commands)
	r.commands = r.commands[:0]
}

// LiveTextures returns the number of prepared and not yet released
// textures.
func (r *Recorder) LiveTextures() int {
	return r.live
}

// String returns the recorded commands, one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.commands {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) record(op string, args ...string) {
	r.commands = append(r.commands, Command{Op: op, Args: args})
}

// Name implements guardian.Backend.
func (r *Recorder) Name() string { return Name }

// BufferMask implements guardian.Backend.
func (r *Recorder) BufferMask() guardian.BufferType { return r.mask }

// SetColor implements attrib.Backend.
func (r *Recorder) SetColor(c gputypes.Color) {
	r.record("color", formatFloat(c.R), formatFloat(c.G), formatFloat(c.B), formatFloat(c.A))
}

// SetBlend implements attrib.Backend.
func (r *Recorder) SetBlend(enabled bool, s gputypes.BlendState) {
	if !enabled {
		r.record("blend", "off")
		return
	}
	r.record("blend", "on", s.Color.SrcFactor.String(), s.Color.DstFactor.String(), s.Color.Operation.String())
}

// SetColorWriteMask implements attrib.Backend.
func (r *Recorder) SetColorWriteMask(mask gputypes.ColorWriteMask) {
	r.record("colorwrite", attrib.ColorWrite{Mask: mask}.String())
}

// SetCullMode implements attrib.Backend.
func (r *Recorder) SetCullMode(mode gputypes.CullMode, front gputypes.FrontFace) {
	r.record("cull", mode.String(), front.String())
}

// SetDepthTest implements attrib.Backend.
func (r *Recorder) SetDepthTest(enabled bool, compare gputypes.CompareFunction) {
	if !enabled {
		r.record("depthtest", "off")
		return
	}
	r.record("depthtest", "on", compare.String())
}

// SetDepthWrite implements attrib.Backend.
func (r *Recorder) SetDepthWrite(enabled bool) {
	r.record("depthwrite", onOff(enabled))
}

// BindTexture implements attrib.Backend.
func (r *Recorder) BindTexture(stage int, tex attrib.TextureHandle) {
	if tex == nil {
		r.record("unbind", strconv.Itoa(stage))
		return
	}
	r.record("bind", strconv.Itoa(stage), textureName(tex))
}

// PrepareTexture implements guardian.Backend.
func (r *Recorder) PrepareTexture(desc guardian.TextureDesc) (*guardian.TextureContext, error) {
	tc := guardian.NewTextureContext(desc, nil, r.upload)
	r.live++
	r.record("prepare", tc.Label(), fmt.Sprintf("%dx%d", tc.Width(), tc.Height()), desc.Format.String())
	if desc.Pixels != nil {
		r.record("upload", tc.Label(), strconv.Itoa(len(desc.Pixels)))
	}
	return tc, nil
}

func (r *Recorder) upload(tc *guardian.TextureContext, pixels []byte) error {
	r.record("upload", tc.Label(), strconv.Itoa(len(pixels)))
	return nil
}

// ReleaseTexture implements guardian.Backend.
func (r *Recorder) ReleaseTexture(tc *guardian.TextureContext) {
	if tc.Released() {
		r.record("release", tc.Label(), "again")
		return
	}
	r.live--
	r.record("release", tc.Label())
}

func textureName(tex attrib.TextureHandle) string {
	if tc, ok := tex.(*guardian.TextureContext); ok {
		return tc.Label()
	}
	return "#" + strconv.FormatUint(tex.ID(), 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
