package reveal

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// VisualState is the animated appearance of an element.
type VisualState struct {
	Alpha    float64 `yaml:"alpha"`
	OffsetY  float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
}

// Lerp interpolates every property between v and to.
func (v VisualState) Lerp(to VisualState, t float64) VisualState {
	return VisualState{
		Alpha:    lerp(v.Alpha, to.Alpha, t),
		OffsetY:  lerp(v.OffsetY, to.OffsetY, t),
		Rotation: lerp(v.Rotation, to.Rotation, t),
		Scale:    lerp(v.Scale, to.Scale, t),
	}
}

// Phases are the relative widths of the fade-in, hold and fade-out portions
// of a profile. Out == 0 gives a single-phase (Initial to Revealed) profile.
type Phases struct {
	In   float64 `yaml:"in"`
	Hold float64 `yaml:"hold"`
	Out  float64 `yaml:"out"`
}

// Symmetric reports whether the profile fades back out over the same pass.
func (p Phases) Symmetric() bool {
	return p.Out > 0
}

// seams returns the normalized end of the in phase and the start of the out
// phase.
func (p Phases) seams() (a, b float64) {
	total := p.In + p.Hold + p.Out
	if total <= 0 {
		return 1, 1
	}
	return p.In / total, (p.In + p.Hold) / total
}

// Profile is the declarative animation of one group: three named states, how
// scroll progress moves between them, and how discrete crossings tween.
type Profile struct {
	Initial  VisualState
	Revealed VisualState
	Exited   VisualState
	Phases   Phases
	EaseIn   ease.TweenFunc
	EaseOut  ease.TweenFunc

	// Duration and Ease apply to discrete tweens; Stagger delays each
	// successive member.
	Duration float32
	Ease     ease.TweenFunc
	Stagger  float32
}

// Sample returns the visual state at progress p. Single-phase profiles move
// from Initial to Revealed; symmetric ones move Initial to Revealed, hold,
// then Revealed to Exited. Each phase starts from the previous phase's end
// state, so the result is continuous at the seams for any monotone ease.
func (pr *Profile) Sample(p float64) VisualState {
	p = clamp01(p)
	if !pr.Phases.Symmetric() {
		a, _ := pr.Phases.seams()
		if a <= 0 {
			return pr.Revealed
		}
		return pr.Initial.Lerp(pr.Revealed, sampleEase(pr.EaseIn, clamp01(p/a)))
	}
	a, b := pr.Phases.seams()
	switch {
	case p < a:
		return pr.Initial.Lerp(pr.Revealed, sampleEase(pr.EaseIn, p/a))
	case p <= b:
		return pr.Revealed
	default:
		return pr.Revealed.Lerp(pr.Exited, sampleEase(pr.EaseOut, (p-b)/(1-b)))
	}
}

// State returns the named state for a target.
func (pr *Profile) State(t Target) VisualState {
	switch t {
	case TargetInitial:
		return pr.Initial
	case TargetExited:
		return pr.Exited
	default:
		return pr.Revealed
	}
}

// --- Crossings ---

// Edge identifies which boundary of a trigger was crossed.
type Edge uint8

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Crossing is a boundary crossing: which edge, in which scroll direction.
type Crossing struct {
	Direction Direction
	Edge      Edge
}

// The four crossings of a trigger.
var (
	CrossEnter     = Crossing{DirectionForward, EdgeStart}
	CrossLeave     = Crossing{DirectionForward, EdgeEnd}
	CrossEnterBack = Crossing{DirectionBackward, EdgeEnd}
	CrossLeaveBack = Crossing{DirectionBackward, EdgeStart}
)

// String returns the conventional name of the crossing.
func (c Crossing) String() string {
	switch c {
	case CrossEnter:
		return "enter"
	case CrossLeave:
		return "leave"
	case CrossEnterBack:
		return "enterBack"
	case CrossLeaveBack:
		return "leaveBack"
	}
	return fmt.Sprintf("crossing(%s,%d)", c.Direction, c.Edge)
}

// Crossings lists the crossings implied by moving from zone a to zone b, in
// the order they happen. Moving over a whole range yields two crossings.
func Crossings(a, b Zone) []Crossing {
	var out []Crossing
	switch {
	case b > a:
		if a == ZoneBefore {
			out = append(out, CrossEnter)
		}
		if b == ZoneAfter {
			out = append(out, CrossLeave)
		}
	case b < a:
		if a == ZoneAfter {
			out = append(out, CrossEnterBack)
		}
		if b == ZoneBefore {
			out = append(out, CrossLeaveBack)
		}
	}
	return out
}

// Target names the profile state a crossing animates toward.
type Target uint8

const (
	TargetNone Target = iota // leave the current state alone
	TargetInitial
	TargetRevealed
	TargetExited
)

// ParseTarget converts a config name to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "none":
		return TargetNone, nil
	case "initial":
		return TargetInitial, nil
	case "revealed":
		return TargetRevealed, nil
	case "exited":
		return TargetExited, nil
	}
	return TargetNone, fmt.Errorf("unknown target %q", s)
}

// ActionTable maps each crossing to the state it animates toward.
type ActionTable map[Crossing]Target

// Action presets. Directional is the general case; reversible and once are
// configurations of it.
var (
	ActionsDirectional = ActionTable{
		CrossEnter:     TargetRevealed,
		CrossLeave:     TargetExited,
		CrossEnterBack: TargetRevealed,
		CrossLeaveBack: TargetInitial,
	}
	ActionsReversible = ActionTable{
		CrossEnter:     TargetRevealed,
		CrossLeaveBack: TargetInitial,
	}
	ActionsOnce = ActionTable{
		CrossEnter: TargetRevealed,
	}
)

// ActionPreset returns the preset named name.
func ActionPreset(name string) (ActionTable, error) {
	switch name {
	case "", "directional":
		return ActionsDirectional, nil
	case "reversible":
		return ActionsReversible, nil
	case "once":
		return ActionsOnce, nil
	}
	return nil, fmt.Errorf("unknown action preset %q", name)
}

// Target returns the target for c, TargetNone when unmapped.
func (t ActionTable) Target(c Crossing) Target {
	return t[c]
}
