package reveal

import (
	"math"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const eps = 1e-6

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// approxState compares states with a tolerance for float32 tween output.
func approxState(a, b VisualState, tol float64) bool {
	return math.Abs(a.Alpha-b.Alpha) <= tol &&
		math.Abs(a.OffsetY-b.OffsetY) <= tol &&
		math.Abs(a.Rotation-b.Rotation) <= tol &&
		math.Abs(a.Scale-b.Scale) <= tol
}

// sectionPage builds an 800x600 document:
//
//	spacer   0..1000
//	section  1000..1200 (class "section", one 200px "item" member)
//	trailer  1200..3200
//
// For "top bottom" / "top top" boundaries the section's range is [400, 1000].
func sectionPage() (*Document, *Element) {
	doc := NewDocument(800, 600)
	section := NewElement("section", "section")
	section.ID = "s1"
	section.AddChild(NewBlock("item", 200, "item"))
	doc.Root().AddChildren(
		NewBlock("spacer", 1000),
		section,
		NewBlock("trailer", 2000),
	)
	doc.Layout()
	return doc, section
}

// accordionPage adds n accordion items, each a 40px header and a content
// container holding a 100px body, below a 200px intro block.
func accordionPage(doc *Document, n int) []*Element {
	list := NewElement("faq")
	items := make([]*Element, n)
	for i := range n {
		item := NewElement("item", "accordion-item")
		content := NewElement("content", "accordion-content")
		content.AddChild(NewBlock("body", 100))
		item.AddChildren(NewBlock("header", 40, "accordion-header"), content)
		list.AddChild(item)
		items[i] = item
	}
	doc.Root().AddChildren(NewBlock("intro", 200), list)
	doc.Layout()
	return items
}

// timelinePage adds a timeline track after a 1000px spacer: a 10px marker
// and three 100px items. Item centers sit 50, 150 and 250 below the track top.
func timelinePage(doc *Document) (track, marker *Element, items []*Element) {
	track = NewElement("track", "timeline")
	marker = NewBlock("point", 10, "timeline-point")
	track.AddChild(marker)
	for range 3 {
		it := NewBlock("entry", 100, "timeline-item")
		track.AddChild(it)
		items = append(items, it)
	}
	doc.Root().AddChildren(NewBlock("spacer", 1000), track, NewBlock("trailer", 2000))
	doc.Layout()
	return track, marker, items
}

// testConfig is a config with no features; tests add what they exercise.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Groups = nil
	cfg.Accordion = AccordionConfig{}
	cfg.Timeline = TimelineConfig{}
	cfg.Breakpoints = nil
	cfg.Recalc = RecalcConfig{ResizeDebounce: 250 * time.Millisecond}
	return cfg
}

// scrubGroup scrubs class "section" over [top bottom, top top] with a linear
// single-phase fade and no smoothing.
func scrubGroup() GroupConfig {
	return GroupConfig{
		Name:     "sections",
		Class:    "section",
		Members:  "item",
		Start:    "top bottom",
		End:      "top top",
		Mode:     "scrub",
		Initial:  VisualState{Alpha: 0, OffsetY: 50, Scale: 1},
		Revealed: VisualState{Alpha: 1, Scale: 1},
		Exited:   VisualState{Alpha: 0, OffsetY: -50, Scale: 1},
		Phases:   Phases{In: 1},
	}
}

// discreteGroup reacts to crossings of the same range with instant
// transitions.
func discreteGroup(actions string) GroupConfig {
	g := scrubGroup()
	g.Mode = "discrete"
	g.Actions = actions
	return g
}

type eventLog struct {
	events []Event
}

func (l *eventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) crossings() []Crossing {
	var out []Crossing
	for _, e := range l.events {
		if e.Kind == EventCrossing {
			out = append(out, e.Crossing)
		}
	}
	return out
}

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
