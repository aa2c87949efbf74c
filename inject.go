package reveal

type syntheticKind uint8

const (
	syntheticScrollBy syntheticKind = iota
	syntheticScrollTo
	syntheticClick
	syntheticResize
)

// syntheticEvent represents a single injected input event. Click coordinates
// are viewport coordinates, exactly like real pointer input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues a wheel-style scroll by dy. The event is consumed on
// the next frame's Update call.
func (d *Document) InjectScroll(dy float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: syntheticScrollBy, y: dy})
}

// InjectScrollTo queues a jump to scroll offset y.
func (d *Document) InjectScrollTo(y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: syntheticScrollTo, y: y})
}

// InjectClick queues a click at viewport coordinates (x, y).
func (d *Document) InjectClick(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: syntheticClick, x: x, y: y})
}

// InjectResize queues a viewport resize.
func (d *Document) InjectResize(width, height float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: syntheticResize, x: width, y: height})
}

// InjectSmoothScroll queues a scroll from the current target by dy spread
// evenly over frames events, one per frame. Minimum frames is 1.
func (d *Document) InjectSmoothScroll(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for range frames {
		d.InjectScroll(step)
	}
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path as real input. Returns true if an event was consumed.
func (d *Document) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch evt.kind {
	case syntheticScrollBy:
		d.viewport.ScrollBy(evt.y)
	case syntheticScrollTo:
		d.viewport.scrollTween = nil
		d.viewport.ScrollY = d.viewport.clamp(evt.y)
	case syntheticClick:
		d.Click(evt.x, evt.y)
	case syntheticResize:
		d.Resize(evt.x, evt.y)
	}
	return true
}

// PendingInput returns the number of queued synthetic events.
func (d *Document) PendingInput() int {
	return len(d.injectQueue)
}
