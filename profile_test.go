package reveal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tanema/gween/ease"
)

func symmetricProfile() *Profile {
	return &Profile{
		Initial:  VisualState{Alpha: 0, OffsetY: 75, Scale: 1},
		Revealed: VisualState{Alpha: 1, Scale: 1},
		Exited:   VisualState{Alpha: 0, OffsetY: -75, Scale: 1},
		Phases:   Phases{In: 1, Hold: 2, Out: 1},
		EaseIn:   ease.OutCubic,
		EaseOut:  ease.InCubic,
	}
}

func TestProfileSample_SinglePhase(t *testing.T) {
	pr := &Profile{
		Initial:  VisualState{Alpha: 0, OffsetY: 40, Scale: 1},
		Revealed: VisualState{Alpha: 1, Scale: 1},
		Phases:   Phases{In: 1},
	}
	tests := []struct {
		p    float64
		want VisualState
	}{
		{-1, pr.Initial},
		{0, pr.Initial},
		{0.5, VisualState{Alpha: 0.5, OffsetY: 20, Scale: 1}},
		{1, pr.Revealed},
		{2, pr.Revealed},
	}
	for _, tt := range tests {
		if got := pr.Sample(tt.p); !approxState(got, tt.want, eps) {
			t.Errorf("Sample(%v) = %+v, want %+v", tt.p, got, tt.want)
		}
	}
}

func TestProfileSample_Symmetric(t *testing.T) {
	pr := symmetricProfile()
	if got := pr.Sample(0); got != pr.Initial {
		t.Errorf("Sample(0) = %+v, want initial", got)
	}
	// Hold phase spans [0.25, 0.75].
	for _, p := range []float64{0.25, 0.4, 0.5, 0.75} {
		if got := pr.Sample(p); got != pr.Revealed {
			t.Errorf("Sample(%v) = %+v, want revealed", p, got)
		}
	}
	if got := pr.Sample(1); !approxState(got, pr.Exited, eps) {
		t.Errorf("Sample(1) = %+v, want exited", got)
	}
}

func TestProfileSample_ContinuousAtSeams(t *testing.T) {
	pr := symmetricProfile()
	const d = 1e-4
	for _, seam := range []float64{0.25, 0.75} {
		a, b := pr.Sample(seam-d), pr.Sample(seam+d)
		if !approxState(a, b, 0.05) {
			t.Errorf("discontinuity at %v: %+v vs %+v", seam, a, b)
		}
	}
}

func TestProfileSample_ReplaysInReverse(t *testing.T) {
	pr := symmetricProfile()
	var forward []VisualState
	for i := 0; i <= 20; i++ {
		forward = append(forward, pr.Sample(float64(i)/20))
	}
	for i := 20; i >= 0; i-- {
		if got := pr.Sample(float64(i) / 20); got != forward[i] {
			t.Fatalf("backward sample %d differs: %+v vs %+v", i, got, forward[i])
		}
	}
}

func TestProfileState(t *testing.T) {
	pr := symmetricProfile()
	if pr.State(TargetInitial) != pr.Initial || pr.State(TargetRevealed) != pr.Revealed || pr.State(TargetExited) != pr.Exited {
		t.Error("State does not return the named states")
	}
}

func TestCrossings(t *testing.T) {
	tests := []struct {
		from, to Zone
		want     []Crossing
	}{
		{ZoneBefore, ZoneBefore, nil},
		{ZoneBefore, ZoneActive, []Crossing{CrossEnter}},
		{ZoneActive, ZoneAfter, []Crossing{CrossLeave}},
		{ZoneBefore, ZoneAfter, []Crossing{CrossEnter, CrossLeave}},
		{ZoneAfter, ZoneActive, []Crossing{CrossEnterBack}},
		{ZoneActive, ZoneBefore, []Crossing{CrossLeaveBack}},
		{ZoneAfter, ZoneBefore, []Crossing{CrossEnterBack, CrossLeaveBack}},
		{ZoneActive, ZoneActive, nil},
	}
	for _, tt := range tests {
		got := Crossings(tt.from, tt.to)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Crossings(%v, %v) mismatch (-want +got):\n%s", tt.from, tt.to, diff)
		}
	}
}

func TestCrossingString(t *testing.T) {
	names := map[Crossing]string{
		CrossEnter:     "enter",
		CrossLeave:     "leave",
		CrossEnterBack: "enterBack",
		CrossLeaveBack: "leaveBack",
	}
	for c, want := range names {
		if got := c.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", c, got, want)
		}
	}
}

func TestActionPreset(t *testing.T) {
	tests := []struct {
		name string
		want map[Crossing]Target
	}{
		{"directional", map[Crossing]Target{
			CrossEnter: TargetRevealed, CrossLeave: TargetExited,
			CrossEnterBack: TargetRevealed, CrossLeaveBack: TargetInitial,
		}},
		{"reversible", map[Crossing]Target{
			CrossEnter: TargetRevealed, CrossLeave: TargetNone,
			CrossEnterBack: TargetNone, CrossLeaveBack: TargetInitial,
		}},
		{"once", map[Crossing]Target{
			CrossEnter: TargetRevealed, CrossLeave: TargetNone,
			CrossEnterBack: TargetNone, CrossLeaveBack: TargetNone,
		}},
	}
	for _, tt := range tests {
		table, err := ActionPreset(tt.name)
		if err != nil {
			t.Fatalf("ActionPreset(%q): %v", tt.name, err)
		}
		for c, want := range tt.want {
			if got := table.Target(c); got != want {
				t.Errorf("%s: Target(%v) = %v, want %v", tt.name, c, got, want)
			}
		}
	}
	if _, err := ActionPreset("sometimes"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestParseTarget(t *testing.T) {
	for in, want := range map[string]Target{
		"": TargetNone, "none": TargetNone, "initial": TargetInitial,
		"revealed": TargetRevealed, "exited": TargetExited,
	} {
		got, err := ParseTarget(in)
		if err != nil || got != want {
			t.Errorf("ParseTarget(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTarget("gone"); err == nil {
		t.Error("expected error for unknown target")
	}
}
