// Package ecs bridges reveal controller events into a [Donburi] world.
//
// [NewDonburiSink] returns a [reveal.EventSink] that publishes every event
// (crossings, panel toggles, recalculations, entrance completion) as a typed
// Donburi event. Subscribe to [RevealEventType] in your ECS systems:
//
//	sink := ecs.NewDonburiSink(world)
//	ctrl, err := reveal.New(doc, cfg, reveal.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
