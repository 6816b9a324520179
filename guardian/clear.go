package guardian

import "github.com/gogpu/gputypes"

// ClearValues are the values framebuffer planes are cleared to.
type ClearValues struct {
	Color   gputypes.Color
	Depth   float64
	Stencil uint32
	Accum   gputypes.Color
}

// defaultClearValues returns the values Reset restores: the configured
// clear color with alpha 0, depth 1 and zero stencil and accumulation.
func defaultClearValues(c gputypes.Color) ClearValues {
	return ClearValues{
		Color: gputypes.Color{R: c.R, G: c.G, B: c.B, A: 0},
		Depth: 1,
	}
}

// ClearValues returns the current clear values.
func (g *Guardian) ClearValues() ClearValues {
	return g.clear
}

// SetColorClearValue sets the color clear value.
func (g *Guardian) SetColorClearValue(c gputypes.Color) {
	g.clear.Color = c
}

// ColorClearValue returns the color clear value.
func (g *Guardian) ColorClearValue() gputypes.Color {
	return g.clear.Color
}

// SetDepthClearValue sets the depth clear value.
func (g *Guardian) SetDepthClearValue(depth float64) {
	g.clear.Depth = depth
}

// DepthClearValue returns the depth clear value.
func (g *Guardian) DepthClearValue() float64 {
	return g.clear.Depth
}

// SetStencilClearValue sets the stencil clear value.
func (g *Guardian) SetStencilClearValue(stencil uint32) {
	g.clear.Stencil = stencil
}

// StencilClearValue returns the stencil clear value.
func (g *Guardian) StencilClearValue() uint32 {
	return g.clear.Stencil
}

// SetAccumClearValue sets the accumulation buffer clear value.
func (g *Guardian) SetAccumClearValue(c gputypes.Color) {
	g.clear.Accum = c
}

// AccumClearValue returns the accumulation buffer clear value.
func (g *Guardian) AccumClearValue() gputypes.Color {
	return g.clear.Accum
}
