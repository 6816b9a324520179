// Package guardian provides the graphics state guardian.
//
// A [Guardian] owns the state currently programmed on a [Backend]. Each
// frame the renderer hands it the requested state through
// [Guardian.SetState]; the guardian diffs the request against its active
// state with [attrib.Set.Merge] and issues only what changed.
//
//	g, err := guardian.New(backend, guardian.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	g.BeginFrame()
//	g.SetState(attrib.NewSet(attrib.BlendAlpha(), attrib.DepthTestOn()), true)
//
// # Prepared textures
//
// Textures uploaded through [Guardian.PrepareTexture] are tracked until
// they are released, individually with [Guardian.ReleaseTexture] or all
// at once with [Guardian.ReleaseAllTextures]. A [TexturePool] keeps
// textures under string keys and releases the least recently used ones
// when it grows past its limit.
//
// # Backend selection
//
// A [Registry] maps backend names to factories. It is an ordinary value:
// create one at startup, let backend packages register into it and pick
// a guardian with [Registry.New] or [Registry.NewPreferred].
//
// # Thread Safety
//
// A Guardian and its TexturePool belong to one render goroutine and are
// not safe for concurrent use. Registry is safe for concurrent use.
package guardian
