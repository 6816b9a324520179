package guardian

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/attrib"
)

// fakeBackend records attribute commands and texture calls.
type fakeBackend struct {
	calls    []string
	mask     BufferType
	prepErr  error
	released []*TextureContext

	// onRelease runs inside ReleaseTexture.
	onRelease func(tc *TextureContext)
}

var errFakePrepare = errors.New("fake: prepare failed")

func newFakeBackend() *fakeBackend {
	return &fakeBackend{mask: BufferColor | BufferDepth}
}

func (f *fakeBackend) Name() string           { return "fake" }
func (f *fakeBackend) BufferMask() BufferType { return f.mask }

func (f *fakeBackend) SetColor(c gputypes.Color) {
	f.calls = append(f.calls, fmt.Sprintf("color %g %g %g %g", c.R, c.G, c.B, c.A))
}

func (f *fakeBackend) SetBlend(enabled bool, s gputypes.BlendState) {
	f.calls = append(f.calls, fmt.Sprintf("blend %t %v %v", enabled, s.Color.SrcFactor, s.Color.DstFactor))
}

func (f *fakeBackend) SetColorWriteMask(m gputypes.ColorWriteMask) {
	f.calls = append(f.calls, fmt.Sprintf("colorwrite %d", m))
}

func (f *fakeBackend) SetCullMode(m gputypes.CullMode, front gputypes.FrontFace) {
	f.calls = append(f.calls, fmt.Sprintf("cull %v %v", m, front))
}

func (f *fakeBackend) SetDepthTest(enabled bool, c gputypes.CompareFunction) {
	f.calls = append(f.calls, fmt.Sprintf("depthtest %t %v", enabled, c))
}

func (f *fakeBackend) SetDepthWrite(enabled bool) {
	f.calls = append(f.calls, fmt.Sprintf("depthwrite %t", enabled))
}

func (f *fakeBackend) BindTexture(stage int, tex attrib.TextureHandle) {
	var id uint64
	if tex != nil {
		id = tex.ID()
	}
	f.calls = append(f.calls, fmt.Sprintf("texture %d %d", stage, id))
}

func (f *fakeBackend) PrepareTexture(desc TextureDesc) (*TextureContext, error) {
	if f.prepErr != nil {
		return nil, f.prepErr
	}
	return NewTextureContext(desc, nil, nil), nil
}

func (f *fakeBackend) ReleaseTexture(tc *TextureContext) {
	f.released = append(f.released, tc)
	if f.onRelease != nil {
		f.onRelease(tc)
	}
}

func (f *fakeBackend) takeCalls() []string {
	calls := f.calls
	f.calls = nil
	return calls
}

func newTestGuardian(opts ...Option) (*Guardian, *fakeBackend) {
	b := newFakeBackend()
	g, err := New(b, opts...)
	if err != nil {
		panic(err)
	}
	return g, b
}

var (
	red   = attrib.RGBA(1, 0, 0, 1)
	green = attrib.RGBA(0, 1, 0, 1)
)

func smallDesc(label string) TextureDesc {
	return TextureDesc{Label: label, Width: 2, Height: 2}
}
