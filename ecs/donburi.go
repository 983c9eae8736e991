package ecs

import (
	"github.com/phanxgames/mapevent"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type carrying mapevent engine events.
var EngineEventType = events.NewEventType[mapevent.Event]()

type donburiSink struct {
	world donburi.World
	types map[mapevent.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. With no
// types every event is published; otherwise only the listed types are.
func NewDonburiSink(world donburi.World, types ...mapevent.EventType) mapevent.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.types = make(map[mapevent.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event mapevent.Event) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	EngineEventType.Publish(s.world, event)
}
