package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RevealEventType is the Donburi event type for reveal controller events.
// Events are queued; call ProcessEvents (or events.ProcessAllEvents) once per
// frame to deliver them.
var RevealEventType = events.NewEventType[reveal.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to RevealEventType in
// world.
func NewDonburiSink(world donburi.World) reveal.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event reveal.Event) {
	RevealEventType.Publish(s.world, event)
}
