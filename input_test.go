package reveal

import "testing"

func clickablePage() (*Document, *Element, *Element) {
	doc := NewDocument(800, 600)
	a := NewBlock("a", 100)
	b := NewBlock("b", 100)
	a.OnClick = func(ClickContext) {}
	b.OnClick = func(ClickContext) {}
	doc.Root().AddChildren(a, b, NewBlock("rest", 1000))
	doc.Layout()
	return doc, a, b
}

func TestClick_HitTest(t *testing.T) {
	doc, a, b := clickablePage()
	tests := []struct {
		name   string
		scroll float64
		x, y   float64
		want   *Element
	}{
		{"first", 0, 10, 50, a},
		{"second", 0, 10, 150, b},
		{"miss", 0, 10, 250, nil},
		{"scrolled", 100, 10, 50, b},
		{"outside width", 0, 900, 50, nil},
	}
	for _, tt := range tests {
		doc.Scroll(tt.scroll)
		if got := doc.Click(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: hit %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClick_SkipsHiddenAndClipped(t *testing.T) {
	doc, a, _ := clickablePage()
	a.SetVisual(VisualState{Alpha: 0, Scale: 1})
	if got := doc.Click(10, 50); got != nil {
		t.Errorf("transparent element was hit: %v", got)
	}

	content := NewElement("content")
	inner := NewBlock("inner", 100)
	inner.OnClick = func(ClickContext) {}
	content.AddChild(inner)
	doc.Root().AddChild(content)
	content.SetClipHeight(20)
	doc.Layout()
	top := content.Bounds().Y
	if got := doc.Click(10, top+10); got != inner {
		t.Errorf("visible part: hit %v, want inner", got)
	}
	if got := doc.Click(10, top+50); got != nil {
		t.Errorf("clipped part was hit: %v", got)
	}
}

func TestClick_FollowsVisualOffset(t *testing.T) {
	doc, a, _ := clickablePage()
	a.OffsetY = 300
	if got := doc.Click(10, 350); got != a {
		t.Errorf("hit %v, want the offset element", got)
	}
}

func TestCallbackHandle_Remove(t *testing.T) {
	doc, a, _ := clickablePage()
	var scrolls, clicks int
	hs := doc.OnScroll(func(float64) { scrolls++ })
	hc := doc.OnClick(func(ctx ClickContext) {
		if ctx.Element == a {
			clicks++
		}
	})
	doc.Scroll(10)
	doc.Click(10, 50)
	hs.Remove()
	hc.Remove()
	hc.Remove()
	doc.Scroll(20)
	doc.Click(10, 50)
	if scrolls != 1 || clicks != 1 {
		t.Errorf("scrolls = %d, clicks = %d, want 1, 1", scrolls, clicks)
	}
	CallbackHandle{}.Remove()
}

func TestDocument_ScrollNotifiesOncePerChange(t *testing.T) {
	doc, _, _ := clickablePage()
	var seen []float64
	doc.OnScroll(func(y float64) { seen = append(seen, y) })
	doc.Scroll(50)
	doc.Scroll(50)
	doc.ScrollBy(25)
	doc.Update(0)
	if len(seen) != 2 || seen[0] != 50 || seen[1] != 75 {
		t.Errorf("scroll notifications = %v, want [50 75]", seen)
	}
}

func TestDocument_ResizeNotifies(t *testing.T) {
	doc, _, _ := clickablePage()
	var got [][2]float64
	doc.OnResize(func(w, h float64) { got = append(got, [2]float64{w, h}) })
	doc.Resize(800, 600)
	doc.Resize(400, 300)
	if len(got) != 1 || got[0] != [2]float64{400, 300} {
		t.Errorf("resize notifications = %v", got)
	}
}
