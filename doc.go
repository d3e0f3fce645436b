// Package dreamscape is a gesture-driven pencil-sketch animation engine.
//
// A pose/hand/face landmark estimator supplies a [Snapshot] per frame.
// Dreamscape interprets it as a small set of debounced signals, evolves rain,
// flowers, clouds, lightning and perching birds, and produces a [Scene]: a
// draw list handed to any [Canvas] implementation (the ebiten painter in
// dreamscape/pencil, or the terminal canvas in dreamscape/termdraw).
//
// # Quick start
//
// Create a [World], feed it snapshots, and render each frame:
//
//	world := dreamscape.NewWorld(dreamscape.Options{
//		Width: 1280, Height: 720, Seed: 1,
//	})
//	params := dreamscape.DefaultParams()
//	// once per display refresh:
//	frame := world.Step(snapshots.Load(), params, dt)
//	frame.Scene.Render(canvas)
//
// # Frame order
//
// [World.Step] runs strictly in this order: gestures, particles, lightning,
// anchors, birds, anchor history, metrics. Nothing inside a step blocks or
// returns an error. Missing landmarks degrade to neutral values.
//
// # Gestures
//
//   - Raise a hand above the shoulder to grow flowers at the wrists.
//   - Open the palm to bloom them; hold it wide open for 1.5s to call a storm.
//   - Tilt the head past 10° for rain.
//   - Tap thumb and index finger to toggle clouds.
//
// # Concurrency
//
// A World is owned by a single goroutine. Estimators publish into a
// [SnapshotStore], control panels into a [ParamStore], and presentation
// reads a [MetricsBoard]; all three are lock-free latest-value holders.
// dreamscape/feed serves them over HTTP and WebSocket.
//
// # Events
//
// Each frame's notable transitions (a storm starting, a bolt striking, a bird
// landing) are handed to Options.Events after the step completes.
// dreamscape/thunder plays a thunderclap per bolt; the ecs submodule forwards
// events into a donburi world.
package dreamscape
