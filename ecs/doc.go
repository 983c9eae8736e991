// Package ecs bridges mapevent engine events into a [Donburi] world.
//
// [NewDonburiSink] publishes every engine event (cross-page transfers,
// missing labels, propagated child motion, name tag visibility) as a typed
// Donburi event. Subscribe to [EngineEventType] in your ECS systems:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
//	ecs.EngineEventType.Subscribe(world, func(w donburi.World, ev mapevent.Event) {
//		// ...
//	})
//
// Events are queued until ProcessEvents runs.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
