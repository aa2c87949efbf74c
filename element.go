package reveal

import "slices"

// ClickContext carries click event data.
type ClickContext struct {
	Element *Element
	// DocX and DocY are document-space coordinates (scroll already applied).
	DocX, DocY float64
}

// Element is the unit of page geometry. Elements form a tree rooted at
// Document.Root and are laid out in vertical block flow (see layout.go).
type Element struct {
	// Identity
	ID      string
	Name    string
	Classes []string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Box model. Height is the intrinsic content height of a leaf; containers
	// derive theirs from their in-flow children.
	X, Width      float64
	Y             float64 // only used when Absolute
	Height        float64
	PaddingTop    float64
	PaddingBottom float64
	MarginBottom  float64

	// ClipHeight caps the used height (max-height). Negative means unclipped.
	ClipHeight float64

	// Absolute elements are out of flow and positioned at (X, Y) relative to
	// their parent's box.
	Absolute bool

	// Reflow, when set, recomputes the intrinsic Height for a content width.
	Reflow func(width float64) float64

	// Visual state. These never affect layout.
	Alpha    float64
	Visible  bool
	OffsetY  float64
	Rotation float64
	Scale    float64
	Color    Color

	// Expanded mirrors the disclosure state of a panel header.
	Expanded bool
	// Active marks the timeline item currently under the marker.
	Active bool

	// Metadata
	UserData any

	OnClick func(ClickContext)

	// Computed by layout.
	box         Rect
	naturalH    float64
	layoutDirty bool

	disposed bool
}

func elementDefaults(e *Element) {
	e.Alpha = 1
	e.Scale = 1
	e.Visible = true
	e.Color = ColorWhite
	e.ClipHeight = -1
	e.layoutDirty = true
}

// NewElement creates an element with the given name and classes.
func NewElement(name string, classes ...string) *Element {
	e := &Element{Name: name, Classes: classes}
	elementDefaults(e)
	return e
}

// NewBlock creates a leaf element with a fixed intrinsic height.
func NewBlock(name string, height float64, classes ...string) *Element {
	e := NewElement(name, classes...)
	e.Height = height
	return e
}

// HasClass reports whether the element carries class c.
func (e *Element) HasClass(c string) bool {
	return slices.Contains(e.Classes, c)
}

// AddClass adds class c if absent.
func (e *Element) AddClass(c string) {
	if !e.HasClass(c) {
		e.Classes = append(e.Classes, c)
	}
}

// RemoveClass removes class c if present.
func (e *Element) RemoveClass(c string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(s string) bool { return s == c })
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
	e.MarkLayoutDirty()
}

// AddChildren appends every child in order.
func (e *Element) AddChildren(children ...*Element) {
	for _, c := range children {
		e.AddChild(c)
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("reveal: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	e.MarkLayoutDirty()
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// Find returns the first descendant (depth-first, document order) carrying
// class c, or nil.
func (e *Element) Find(c string) *Element {
	for _, child := range e.children {
		if child.HasClass(c) {
			return child
		}
		if found := child.Find(c); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant carrying class c in document order.
func (e *Element) FindAll(c string) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if n != e && n.HasClass(c) {
			out = append(out, n)
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, child := range e.children {
		child.walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this element from its parent and recursively disposes all
// descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.Reflow = nil
	e.UserData = nil
	e.OnClick = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Visual state ---

// Visual returns the element's current animated state.
func (e *Element) Visual() VisualState {
	return VisualState{Alpha: e.Alpha, OffsetY: e.OffsetY, Rotation: e.Rotation, Scale: e.Scale}
}

// SetVisual writes an animated state. Visibility follows alpha (hidden at 0),
// so fully faded elements stop receiving clicks.
func (e *Element) SetVisual(v VisualState) {
	e.Alpha = v.Alpha
	e.OffsetY = v.OffsetY
	e.Rotation = v.Rotation
	e.Scale = v.Scale
	e.Visible = v.Alpha > 0
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
