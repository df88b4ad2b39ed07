package panolens

// Synthetic pointer events let scripted sequences (tests, demos, automation)
// drive the interaction machine through the same path as real input. Events
// queue up and are consumed one per frame tick, ahead of real mouse/touch
// polling.

// InjectPress queues a pointer press at the given screen coordinates.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, pointerEvent{kind: pointerDown, x: x, y: y})
}

// InjectMove queues a pointer move at the given screen coordinates.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, pointerEvent{kind: pointerMove, x: x, y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, pointerEvent{kind: pointerUp, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (v *Viewer) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// `frames` frames; minimum is 2 (press + release).
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// processInjected pops one queued event into the state machine. Returns true
// if an event was consumed (real input polling is skipped that tick).
func (v *Viewer) processInjected() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]
	v.processPointer(evt)
	return true
}
