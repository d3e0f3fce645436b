// Package pencil renders dreamscape scenes with ebiten in a hand-drawn style.
//
// The stroke geometry (jittered lines, Bézier petals, cloud puffs, bird and
// lightning shapes) is computed by plain functions that return paths, so it
// can be tested without a GPU. [Painter] strokes those paths with
// ebiten/vector and implements [dreamscape.Canvas]. [Renderer] adds the sky
// crossfade, a Perlin-noise paper grain, the debug overlay and screenshots:
//
//	r := pencil.NewRenderer(seed)
//	// in Game.Draw:
//	r.Draw(screen, frame, params, dt)
package pencil
