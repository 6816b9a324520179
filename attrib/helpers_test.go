package attrib

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// callLog is a Backend that records every call as a string.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) SetColor(c gputypes.Color) { l.add("color %g %g %g %g", c.R, c.G, c.B, c.A) }
func (l *callLog) SetBlend(enabled bool, s gputypes.BlendState) {
	l.add("blend %t %v %v", enabled, s.Color.SrcFactor, s.Color.DstFactor)
}
func (l *callLog) SetColorWriteMask(m gputypes.ColorWriteMask) { l.add("colorwrite %d", m) }
func (l *callLog) SetCullMode(m gputypes.CullMode, f gputypes.FrontFace) {
	l.add("cull %v %v", m, f)
}
func (l *callLog) SetDepthTest(enabled bool, c gputypes.CompareFunction) {
	l.add("depthtest %t %v", enabled, c)
}
func (l *callLog) SetDepthWrite(enabled bool) { l.add("depthwrite %t", enabled) }
func (l *callLog) BindTexture(stage int, tex TextureHandle) {
	l.add("texture %d %d", stage, handleID(tex))
}

// fakeTexture is a TextureHandle with a fixed ID.
type fakeTexture struct {
	N uint64
}

func (f *fakeTexture) ID() uint64 { return f.N }

var (
	red   = RGBA(1, 0, 0, 1)
	green = RGBA(0, 1, 0, 1)
)
