// Package ecs provides ECS adapters for torchlight's effect events.
//
// The primary adapter is [NewDonburiSink], which bridges particle and glow
// lifecycle events into a [Donburi] world as typed events. Subscribe to
// [EffectEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
