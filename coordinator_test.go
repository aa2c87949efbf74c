package reveal

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newTestCoordinator() (*Document, *Element, *Registry, *Coordinator) {
	doc, section := sectionPage()
	reg := NewRegistry(doc)
	g := testGroup(section.Children()[0])
	g.Trigger = section
	reg.Register(g, MustParseBoundary("top bottom"), MustParseBoundary("top top"))
	return doc, section, reg, NewCoordinator(doc, reg, nil)
}

func TestCoordinator_RecalcNowResolvesRanges(t *testing.T) {
	_, _, reg, c := newTestCoordinator()
	c.RecalcNow()
	want := []TriggerRange{{Start: 400, End: 1000}}
	if diff := cmp.Diff(want, reg.Ranges()); diff != "" {
		t.Errorf("ranges (-want +got):\n%s", diff)
	}
	if c.Generation() != 1 {
		t.Errorf("generation = %d, want 1", c.Generation())
	}
}

func TestCoordinator_RecalcNowIdempotent(t *testing.T) {
	_, _, reg, c := newTestCoordinator()
	var evaluated int
	c.evaluate = func() { evaluated++ }

	c.RecalcNow()
	first := reg.Ranges()
	c.RecalcNow()
	if diff := cmp.Diff(first, reg.Ranges()); diff != "" {
		t.Errorf("second recalc changed ranges (-first +second):\n%s", diff)
	}
	if evaluated != 2 {
		t.Errorf("evaluate ran %d times, want 2", evaluated)
	}
}

func TestCoordinator_RecalcFollowsGeometry(t *testing.T) {
	doc, _, reg, c := newTestCoordinator()
	c.RecalcNow()
	doc.Root().Children()[0].SetHeight(1300)
	c.RecalcNow()
	if got, want := reg.Ranges()[0], (TriggerRange{Start: 700, End: 1300}); got != want {
		t.Errorf("range = %+v, want %+v", got, want)
	}
}

// Five requests inside the debounce window produce a single recalculation,
// fired a full delay after the last request.
func TestCoordinator_DebounceLastWins(t *testing.T) {
	_, _, _, c := newTestCoordinator()
	var reasons []string
	c.onRecalc = func(r string) { reasons = append(reasons, r) }

	for i := range 5 {
		c.ScheduleRecalc(250*time.Millisecond, "resize")
		if i < 4 {
			c.Advance(100 * time.Millisecond)
		}
	}
	if c.Generation() != 0 {
		t.Fatalf("recalc fired during the burst: generation %d", c.Generation())
	}
	if rem, ok := c.Pending(); !ok || rem != 250*time.Millisecond {
		t.Errorf("pending = %v, %v; want 250ms, true", rem, ok)
	}

	c.Advance(200 * time.Millisecond)
	if c.Generation() != 0 {
		t.Fatal("recalc fired before the last request's delay elapsed")
	}
	c.Advance(50 * time.Millisecond)
	if c.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", c.Generation())
	}
	if c.Requests() != 5 {
		t.Errorf("requests = %d, want 5", c.Requests())
	}
	if diff := cmp.Diff([]string{"resize"}, reasons); diff != "" {
		t.Errorf("reasons (-want +got):\n%s", diff)
	}
	if _, ok := c.Pending(); ok {
		t.Error("nothing should be pending after firing")
	}
}

func TestCoordinator_LaterReasonReplaces(t *testing.T) {
	_, _, _, c := newTestCoordinator()
	var reasons []string
	c.onRecalc = func(r string) { reasons = append(reasons, r) }

	c.ScheduleRecalc(500*time.Millisecond, "accordion")
	c.ScheduleRecalc(100*time.Millisecond, "entrance")
	c.Advance(100 * time.Millisecond)
	c.Advance(time.Second)
	if diff := cmp.Diff([]string{"entrance"}, reasons); diff != "" {
		t.Errorf("reasons (-want +got):\n%s", diff)
	}
}

func TestCoordinator_Cancel(t *testing.T) {
	_, _, _, c := newTestCoordinator()
	c.ScheduleRecalc(0, "x")
	c.Cancel()
	c.Advance(time.Second)
	if c.Generation() != 0 {
		t.Error("cancelled request fired")
	}
}

func TestCoordinator_NegativeDelayFiresNextAdvance(t *testing.T) {
	_, _, _, c := newTestCoordinator()
	c.ScheduleRecalc(-time.Second, "x")
	c.Advance(0)
	if c.Generation() != 1 {
		t.Errorf("generation = %d, want 1", c.Generation())
	}
}

func TestCoordinator_RecomputesTracker(t *testing.T) {
	doc := NewDocument(800, 600)
	track, marker, items := timelinePage(doc)
	tr, err := NewTracker(track, marker, items, MustParseBoundary("top center"), MustParseBoundary("bottom center"))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(doc, NewRegistry(doc), nil)
	c.SetTracker(tr)
	c.RecalcNow()
	if start, end := tr.Bounds(); start != 45 || end != 245 {
		t.Errorf("bounds = %v..%v, want 45..245", start, end)
	}
}

func TestCoordinator_RemeasuresOpenPanel(t *testing.T) {
	doc, a, tweens, _ := newTestAccordion(t, 2)
	c := NewCoordinator(doc, NewRegistry(doc), nil)
	c.SetAccordion(a)
	p := a.Panels()[0]
	a.Activate(p)
	tweens.Finish()
	c.RecalcNow()

	p.Content.Children()[0].SetHeight(180)
	c.RecalcNow()
	if p.Content.ClipHeight != 180 {
		t.Errorf("clip = %v, want 180", p.Content.ClipHeight)
	}
	// Second header follows the grown panel: 200 + 40 + 180.
	if got := a.Panels()[1].Header.Bounds().Y; got != 420 {
		t.Errorf("second header at %v, want 420", got)
	}
}

func TestCoordinator_DebugMode(t *testing.T) {
	doc, a, tweens, _ := newTestAccordion(t, 2)
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCoordinator(doc, NewRegistry(doc), zap.New(core))
	c.SetAccordion(a)
	c.SetDebugMode(true)
	a.Activate(a.Panels()[0])
	tweens.Finish()
	c.RecalcNow()

	entries := logs.FilterMessage("recalc").All()
	if len(entries) != 1 {
		t.Fatalf("recalc debug entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["reason"] != "immediate" || fields["generation"] != uint64(1) {
		t.Errorf("fields = %v", fields)
	}
	if logs.FilterMessage("accordion invariant violated").Len() != 0 {
		t.Error("one open panel should not warn")
	}

	// Force a second open panel behind the accordion's back.
	a.Panels()[1].open = true
	c.RecalcNow()
	if logs.FilterMessage("accordion invariant violated").Len() != 1 {
		t.Error("two open panels should warn in debug mode")
	}
}
