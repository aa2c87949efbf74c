package reveal

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func testGroup(members ...*Element) *Group {
	return &Group{
		Name:    "g",
		Trigger: NewElement("trigger"),
		Members: members,
		Profile: &Profile{
			Initial:  VisualState{Alpha: 0, OffsetY: 50, Scale: 1},
			Revealed: VisualState{Alpha: 1, Scale: 1},
			Exited:   VisualState{Alpha: 0, OffsetY: -50, Scale: 1},
			Phases:   Phases{In: 1},
			Duration: 1,
			Ease:     ease.Linear,
		},
		Actions: ActionsDirectional,
	}
}

func TestScheduler_ApplySnaps(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	a, b := NewElement("a"), NewElement("b")
	g := testGroup(a, b)

	s.Apply(g, 0.5, DirectionForward)
	want := VisualState{Alpha: 0.5, OffsetY: 25, Scale: 1}
	for _, m := range g.Members {
		if !approxState(m.Visual(), want, eps) {
			t.Errorf("%s = %+v, want %+v", m.Name, m.Visual(), want)
		}
	}
	if tweens.Running() != 0 {
		t.Error("unsmoothed scrub should not start tweens")
	}

	// Backward replays the same state for the same progress.
	s.Apply(g, 0.5, DirectionBackward)
	if !approxState(a.Visual(), want, eps) {
		t.Errorf("backward state = %+v", a.Visual())
	}
}

func TestScheduler_ApplySmoothed(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	m := NewElement("m")
	g := testGroup(m)
	g.ScrubLag = 0.5
	m.SetVisual(g.Profile.Initial)

	s.Apply(g, 1, DirectionForward)
	if m.Alpha != 0 {
		t.Error("smoothed scrub should not jump")
	}
	tweens.Update(0.5)
	if !approxState(m.Visual(), g.Profile.Revealed, eps) {
		t.Errorf("state after lag = %+v", m.Visual())
	}
}

func TestScheduler_ApplyUnsmoothedWithoutDirection(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	m := NewElement("m")
	g := testGroup(m)
	g.ScrubLag = 0.5

	s.Apply(g, 0, DirectionNone)
	if !approxState(m.Visual(), g.Profile.Initial, eps) || m.Visible {
		t.Errorf("state = %+v, want initial and hidden", m.Visual())
	}
	if tweens.Running() != 0 {
		t.Error("an undirected apply should not start tweens")
	}
}

func TestScheduler_ApplyEmptyGroup(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	g := testGroup()
	s.Apply(g, 0.5, DirectionForward)
	if s.Cross(g, CrossEnter) {
		t.Error("Cross on an empty group should report false")
	}
}

func TestScheduler_Cross(t *testing.T) {
	tests := []struct {
		c    Crossing
		want VisualState
	}{
		{CrossEnter, VisualState{Alpha: 1, Scale: 1}},
		{CrossLeave, VisualState{Alpha: 0, OffsetY: -50, Scale: 1}},
		{CrossEnterBack, VisualState{Alpha: 1, Scale: 1}},
		{CrossLeaveBack, VisualState{Alpha: 0, OffsetY: 50, Scale: 1}},
	}
	for _, tt := range tests {
		tweens := NewTweenSet()
		s := NewScheduler(tweens, nil)
		m := NewElement("m")
		g := testGroup(m)
		if !s.Cross(g, tt.c) {
			t.Errorf("%v: Cross returned false", tt.c)
			continue
		}
		tweens.Update(1)
		if got := m.Visual(); got != tt.want {
			t.Errorf("%v: state = %+v, want %+v", tt.c, got, tt.want)
		}
	}
}

func TestScheduler_CrossUnmapped(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	g := testGroup(NewElement("m"))
	g.Actions = ActionsOnce
	if s.Cross(g, CrossLeave) {
		t.Error("unmapped crossing should report false")
	}
	if tweens.Running() != 0 {
		t.Error("unmapped crossing should not start tweens")
	}
}

func TestScheduler_CrossStagger(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	a, b := NewElement("a"), NewElement("b")
	a.SetVisual(VisualState{Alpha: 0, Scale: 1})
	b.SetVisual(VisualState{Alpha: 0, Scale: 1})
	g := testGroup(a, b)
	g.Profile.Stagger = 0.5

	s.Cross(g, CrossEnter)
	tweens.Update(0.5)
	if !approx(a.Alpha, 0.5) {
		t.Errorf("first member alpha = %v, want 0.5", a.Alpha)
	}
	if b.Alpha != 0 {
		t.Errorf("second member alpha = %v, want 0 (still delayed)", b.Alpha)
	}
	tweens.Update(1)
	if a.Alpha != 1 || b.Alpha != 1 {
		t.Errorf("alphas = %v, %v, want 1, 1", a.Alpha, b.Alpha)
	}
}

func TestScheduler_SnapCancelsTweens(t *testing.T) {
	tweens := NewTweenSet()
	s := NewScheduler(tweens, nil)
	m := NewElement("m")
	g := testGroup(m)
	s.Cross(g, CrossEnter)
	s.Snap(g, g.Profile.Initial)
	if tweens.Running() != 0 {
		t.Error("Snap should cancel running tweens")
	}
	tweens.Update(1)
	if got := m.Visual(); got != g.Profile.Initial {
		t.Errorf("state = %+v, want initial", got)
	}
	if m.Visible {
		t.Error("alpha 0 should hide the element")
	}
}
