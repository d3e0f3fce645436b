// Package ecs bridges dreamscape domain events into a [Donburi] world.
//
// [NewSink] returns a dreamscape.EventSink that publishes every frame event
// to [EventType] as a typed Donburi event. Subscribe to it in your ECS
// systems and drain the queue with ProcessEvents once per tick.
//
// [Census] is a ready-made subscriber that mirrors the flock as entities
// carrying a [Bird] component, so ECS systems can query which birds exist
// and where they are perched.
//
// Usage:
//
//	world := donburi.NewWorld()
//	census := ecs.NewCensus(world)
//	w := dreamscape.NewWorld(dreamscape.Options{Events: ecs.NewSink(world)})
//	...
//	w.Step(snap, params, dt)
//	ecs.EventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
