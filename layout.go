package reveal

// Layout is vertical block flow:
//
//	box.Y       = parent content top + sum of preceding in-flow siblings' outer heights
//	natural     = PaddingTop + content + PaddingBottom
//	used height = min(ClipHeight, natural) when ClipHeight >= 0, else natural
//	outer       = used height + MarginBottom
//
// A leaf's content is its intrinsic Height (recomputed by Reflow when set);
// a container's content is the sum of its in-flow children's outer heights.
// Absolute children are laid out relative to their parent's box and take no
// space. OffsetY, Rotation and Scale are visual only and never move boxes.

// layoutElement lays out e with its top-left at (x, y) in an available width
// and returns its outer height.
func layoutElement(e *Element, x, y, avail float64) float64 {
	width := avail
	if e.Width > 0 {
		width = e.Width
	}
	if e.Reflow != nil {
		e.Height = e.Reflow(width)
	}

	content := 0.0
	inFlow := 0
	cursor := y + e.PaddingTop
	for _, child := range e.children {
		if child.Absolute {
			continue
		}
		inFlow++
		h := layoutElement(child, x, cursor, width)
		cursor += h
		content += h
	}
	if inFlow == 0 {
		content = e.Height
	}

	e.naturalH = e.PaddingTop + content + e.PaddingBottom
	used := e.naturalH
	if e.ClipHeight >= 0 && e.ClipHeight < used {
		used = e.ClipHeight
	}
	e.box = Rect{X: x, Y: y, Width: width, Height: used}

	for _, child := range e.children {
		if child.Absolute {
			layoutElement(child, x+child.X, y+child.Y, width)
		}
	}

	e.layoutDirty = false
	return used + e.MarginBottom
}

// Bounds returns the element's document-space box from the last layout.
func (e *Element) Bounds() Rect {
	return e.box
}

// ScrollHeight returns the element's natural (unclipped) height from the
// last layout.
func (e *Element) ScrollHeight() float64 {
	return e.naturalH
}

// MarkLayoutDirty flags this element and its ancestors for relayout.
func (e *Element) MarkLayoutDirty() {
	for p := e; p != nil; p = p.Parent {
		p.layoutDirty = true
	}
}

// SetClipHeight sets the max-height clip and marks layout dirty.
func (e *Element) SetClipHeight(h float64) {
	if e.ClipHeight == h {
		return
	}
	e.ClipHeight = h
	e.MarkLayoutDirty()
}

// SetHeight sets the intrinsic height and marks layout dirty.
func (e *Element) SetHeight(h float64) {
	if e.Height == h {
		return
	}
	e.Height = h
	e.MarkLayoutDirty()
}

// clipRect returns the intersection of the boxes of every clipping ancestor
// of e, or ok=false when no ancestor clips. Used by renderers and hit testing
// so collapsed panel content is neither drawn nor clickable.
func (e *Element) clipRect() (Rect, bool) {
	var r Rect
	ok := false
	for p := e.Parent; p != nil; p = p.Parent {
		if p.ClipHeight < 0 {
			continue
		}
		if !ok {
			r, ok = p.box, true
			continue
		}
		top := max(r.Y, p.box.Y)
		bottom := min(r.Bottom(), p.box.Bottom())
		r.Y = top
		r.Height = max(0, bottom-top)
	}
	return r, ok
}

// VisibleBox returns the element's box clipped by its ancestors.
func (e *Element) VisibleBox() Rect {
	b := e.box
	clip, ok := e.clipRect()
	if !ok {
		return b
	}
	top := max(b.Y, clip.Y)
	bottom := min(b.Bottom(), clip.Bottom())
	b.Y = top
	b.Height = max(0, bottom-top)
	return b
}
