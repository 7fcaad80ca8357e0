// Package torchlight draws two pointer-driven effects for [Ebitengine] games
// and tools: a soft glow that follows the cursor across interactive elements,
// and a trail of short-lived stars shed behind a fast-moving pointer.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := torchlight.NewScene(torchlight.DefaultConfig(), nil)
//	scene.AddElement(torchlight.NewElement("play", torchlight.Rect{X: 40, Y: 40, Width: 160, Height: 48}))
//	torchlight.Run(scene, torchlight.RunConfig{
//		Title: "Menu", Width: 640, Height: 480,
//	})
//
// To layer the effects over an existing game, call [Scene.Update] from your
// Update and [Scene.Draw] at the end of your Draw.
//
// # Star trail
//
// Every pointer sample updates a [PointerTracker] and a newest-first
// [TrailHistory]. When the pointer is fast enough, each trail point behind
// the cursor rolls to spawn a [Particle], with the chance falling off along
// the trail. Particles drift, slow by friction, are pushed away from a nearby
// pointer, and fade out after a fixed age. The [Simulation] removes them in a
// per-frame sweep against the scene clock.
//
// # Glow
//
// Each registered [Element] owns a hidden overlay. Hovering the element fades
// the overlay in and keeps it under the pointer; leaving fades it out while
// blurring it. Transitions use [gween] tweens.
//
// # Configuration
//
// All tunables live in [Config]. [DefaultConfig] returns the embedded
// defaults; [LoadConfig] and [LoadConfigFile] overlay a YAML document on top
// of them and validate the result.
//
// # Determinism and testing
//
// Pass a seeded [RandSource] (see [NewSeededRand]) for reproducible spawns.
// [Scene.Advance] steps the scene by an explicit duration, and synthetic
// input ([Scene.InjectMove], [Scene.InjectPath], [LoadTestScript]) replaces
// the real cursor for scripted runs.
//
// Effect lifecycle events can be forwarded to an [EventSink]; the ecs
// sub-package publishes them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package torchlight
