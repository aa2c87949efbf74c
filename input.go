package reveal

// EventType identifies a document-level listener kind.
type EventType uint8

const (
	EventScroll EventType = iota // scroll offset changed
	EventResize                  // viewport size changed
	EventClick                   // click dispatched to an element
)

// --- Handler registry ---

type scrollHandler struct {
	id uint32
	fn func(y float64)
}

type resizeHandler struct {
	id uint32
	fn func(width, height float64)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	scroll []scrollHandler
	resize []resizeHandler
	click  []clickHandler
	nextID uint32
}

// CallbackHandle allows removing a registered document-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeHandler(h.reg.scroll, func(s scrollHandler) bool { return s.id == h.id })
	case EventResize:
		h.reg.resize = removeHandler(h.reg.resize, func(s resizeHandler) bool { return s.id == h.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, func(s clickHandler) bool { return s.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	var zero T
	for i := range s {
		if match(s[i]) {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnScroll registers fn to run whenever the scroll offset changes. Handlers
// run in registration order, once per change, in the order changes happen.
func (d *Document) OnScroll(fn func(y float64)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.scroll = append(d.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventScroll}
}

// OnResize registers fn to run whenever the viewport size changes.
func (d *Document) OnResize(fn func(width, height float64)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.resize = append(d.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventResize}
}

// OnClick registers fn to run after any click that hits an element.
func (d *Document) OnClick(fn func(ClickContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.click = append(d.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventClick}
}

// --- Hit testing ---

// visualOffset sums OffsetY over e and its ancestors.
func (e *Element) visualOffset() float64 {
	off := 0.0
	for p := e; p != nil; p = p.Parent {
		off += p.OffsetY
	}
	return off
}

// collectClickable walks the tree in document order, appending visible
// elements with an OnClick handler. Invisible subtrees are skipped.
func collectClickable(e *Element, buf []*Element) []*Element {
	if !e.Visible || e.Alpha <= 0 {
		return buf
	}
	if e.OnClick != nil {
		buf = append(buf, e)
	}
	for _, child := range e.children {
		buf = collectClickable(child, buf)
	}
	return buf
}

// hitTest finds the last clickable element in document order whose visible
// box (clip and visual offset applied) contains (docX, docY).
func (d *Document) hitTest(docX, docY float64) *Element {
	d.hitBuf = collectClickable(d.root, d.hitBuf[:0])
	for i := len(d.hitBuf) - 1; i >= 0; i-- {
		e := d.hitBuf[i]
		b := e.VisibleBox()
		if b.Height <= 0 {
			continue
		}
		b.Y += e.visualOffset()
		if b.Contains(docX, docY) {
			return e
		}
	}
	return nil
}

// Click dispatches a click at viewport coordinates (x, y). Returns the
// element that handled it, or nil.
func (d *Document) Click(x, y float64) *Element {
	docY := y + d.viewport.ScrollY
	target := d.hitTest(x, docY)
	if target == nil {
		return nil
	}
	ctx := ClickContext{Element: target, DocX: x, DocY: docY}
	target.OnClick(ctx)
	for _, h := range d.handlers.click {
		h.fn(ctx)
	}
	return target
}
