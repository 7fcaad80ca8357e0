package ecs

import (
	"github.com/phanxgames/torchlight"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EffectEventType is the Donburi event type for torchlight effect events.
// Subscribe to this in your ECS systems to receive particle spawn/retire and
// glow enter/leave notifications.
var EffectEventType = events.NewEventType[torchlight.EffectEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Effect events are published to EffectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) torchlight.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event torchlight.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}
