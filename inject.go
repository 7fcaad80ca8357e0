package torchlight

// syntheticPointerEvent represents a single injected pointer sample in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// InjectMove queues a pointer sample at (x, y). The event is consumed on the
// next frame's processInput call in place of the real cursor.
//
// After the first injection the scene stops reading the real cursor; frames
// with an empty queue leave the pointer where it is. ResumeCursor undoes this.
func (s *Scene) InjectMove(x, y float64) {
	s.synthetic = true
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues a pointer-out event: the pointer leaves the tracked
// surface.
func (s *Scene) InjectLeave() {
	s.synthetic = true
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectPath queues a straight pointer path from (fromX, fromY) to (toX, toY)
// spread over frames samples, both endpoints included. Minimum frames is 2.
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// ResumeCursor drops any queued synthetic events and returns pointer input
// to the real cursor.
func (s *Scene) ResumeCursor() {
	s.synthetic = false
	s.injectQueue = s.injectQueue[:0]
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real cursor
// input is skipped for this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.leave {
		s.processPointer(s.pointer.last.X, s.pointer.last.Y, false)
		return true
	}
	s.processPointer(evt.x, evt.y, s.onSurface(evt.x, evt.y))
	return true
}
