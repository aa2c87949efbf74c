package reveal

// Document is the top-level object that owns the element tree, the viewport,
// the injected-input queue, and scroll/resize listeners. It is the geometry
// provider every other component reads boxes from.
type Document struct {
	root     *Element
	viewport Viewport

	handlers handlerRegistry
	hitBuf   []*Element

	injectQueue     []syntheticEvent
	testRunner      *ScriptRunner
	screenshotQueue []string

	lastScroll float64
}

// NewDocument creates a document with an empty root container and the given
// viewport size.
func NewDocument(width, height float64) *Document {
	root := NewElement("root")
	d := &Document{root: root}
	d.viewport.Width = width
	d.viewport.Height = height
	d.Layout()
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Viewport returns the document's viewport. Callers may read it freely; use
// Document methods to change scroll offset or size so listeners fire.
func (d *Document) Viewport() *Viewport {
	return &d.viewport
}

// ScrollY returns the current scroll offset.
func (d *Document) ScrollY() float64 {
	return d.viewport.ScrollY
}

// Height returns the laid-out document height.
func (d *Document) Height() float64 {
	return d.viewport.docHeight
}

// Layout recomputes every box from the current tree, then re-clamps the
// scroll offset against the new document height.
func (d *Document) Layout() {
	d.viewport.docHeight = layoutElement(d.root, 0, 0, d.viewport.Width)
	d.viewport.ScrollY = d.viewport.clamp(d.viewport.ScrollY)
}

// NeedsLayout reports whether any element was mutated since the last Layout.
func (d *Document) NeedsLayout() bool {
	return d.root.layoutDirty
}

// ByID returns the element whose ID is id, or nil.
func (d *Document) ByID(id string) *Element {
	var found *Element
	d.root.walk(func(e *Element) {
		if found == nil && e.ID == id {
			found = e
		}
	})
	return found
}

// Query returns every element carrying class c in document order.
func (d *Document) Query(c string) []*Element {
	return d.root.FindAll(c)
}

// Scroll sets the scroll offset (clamped) and notifies scroll listeners when
// it changed.
func (d *Document) Scroll(y float64) {
	d.viewport.scrollTween = nil
	d.viewport.ScrollY = d.viewport.clamp(y)
	d.notifyScroll()
}

// ScrollBy moves the scroll offset by dy and notifies scroll listeners.
func (d *Document) ScrollBy(dy float64) {
	d.viewport.ScrollBy(dy)
	d.notifyScroll()
}

// Resize changes the viewport size, relays out the tree for the new width,
// and notifies resize listeners.
func (d *Document) Resize(width, height float64) {
	if width == d.viewport.Width && height == d.viewport.Height {
		return
	}
	d.viewport.Width = width
	d.viewport.Height = height
	d.Layout()
	for _, h := range d.handlers.resize {
		h.fn(width, height)
	}
	d.notifyScroll()
}

// Update processes scripted and injected input, advances the viewport scroll
// animation, and relays out if the tree was mutated. Scroll listeners fire at
// most once per frame, after all of the above.
func (d *Document) Update(dt float32) {
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.processInjectedInput()
	d.viewport.update(dt)
	if d.root.layoutDirty {
		d.Layout()
	}
	d.notifyScroll()
}

func (d *Document) notifyScroll() {
	y := d.viewport.ScrollY
	if y == d.lastScroll {
		return
	}
	d.lastScroll = y
	for _, h := range d.handlers.scroll {
		h.fn(y)
	}
}

// Screenshot queues a labeled screenshot. Renderers drain the queue with
// TakeScreenshots after drawing a frame.
func (d *Document) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (d *Document) TakeScreenshots() []string {
	if len(d.screenshotQueue) == 0 {
		return nil
	}
	out := d.screenshotQueue
	d.screenshotQueue = nil
	return out
}
