// Package gsg is a graphics state guardian for the GoGPU ecosystem.
//
// # Overview
//
// A renderer asks for a state (blend mode, depth test, bound textures, ...)
// before every draw. Re-issuing the full state each time costs driver
// overhead, so gsg keeps track of what the backend currently has
// programmed and issues only the attributes that changed.
//
//	g, err := guardian.New(recorder.New())
//	...
//	state := attrib.NewSet(
//		attrib.Color{C: gputypes.ColorRed},
//		attrib.BlendAdditive(),
//	)
//	g.SetState(state, true) // complete: everything else returns to defaults
//
// # Architecture
//
//   - attrib: attribute kinds and values, the ordered [attrib.Set] and the
//     merge diff that computes what has to be issued
//   - guardian: the [guardian.Guardian] owning the active state, clear
//     values and prepared textures, plus the backend registry
//   - backend/recorder: records the issued command stream
//   - backend/native: drives a gogpu/wgpu HAL device
//   - cmd/gsgreplay: replays TOML frame scripts through a guardian
//
// # Complete and partial state
//
// With complete set, an attribute missing from the requested set is reset
// to its initial value. With complete cleared, missing attributes stay as
// they are and only the attributes named in the request are touched.
//
// # Logging
//
// gsg is silent by default. Use [SetLogger] to route diagnostics to a
// [log/slog] logger; per-attribute diffs are logged at debug level.
package gsg

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
