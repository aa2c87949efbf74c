package reveal

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Group is a content group: the element whose box places the trigger, the
// ordered members that animate, and the declarative animation applied to
// them. Membership is fixed at construction.
type Group struct {
	Name    string
	Trigger *Element
	Members []*Element
	Profile *Profile
	Actions ActionTable
	Mode    Mode
	// ScrubLag, in seconds, smooths scrubbed progress: members ease toward
	// the sampled state instead of snapping to it.
	ScrubLag float32
}

// Scheduler turns progress and crossings into visual state. Scrubbed groups
// are sampled directly; crossings are handed to the Tweener.
type Scheduler struct {
	tweens Tweener
	log    *zap.Logger
}

// NewScheduler creates a scheduler driving tweens.
func NewScheduler(tweens Tweener, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{tweens: tweens, log: log}
}

// Apply sets every member of g to the profile's state at progress p. dir is
// the scroll direction that produced p; sampling is direction independent,
// so moving backward replays the same states in reverse. ScrubLag smooths
// only scroll-driven updates: with DirectionNone (first render, after a
// recalculation) the sampled state is written immediately. A group with no
// members is a no-op.
func (s *Scheduler) Apply(g *Group, p float64, dir Direction) {
	if len(g.Members) == 0 {
		return
	}
	state := g.Profile.Sample(p)
	smooth := g.ScrubLag > 0 && dir != DirectionNone
	for _, m := range g.Members {
		if smooth {
			s.tweens.Visual(m, state, g.ScrubLag, 0, ease.OutQuad)
			continue
		}
		s.tweens.Kill(m)
		m.SetVisual(state)
	}
	if ce := s.log.Check(zap.DebugLevel, "scrub"); ce != nil {
		ce.Write(zap.String("group", g.Name), zap.Float64("progress", p), zap.Stringer("direction", dir))
	}
}

// Cross animates g toward the state its action table assigns to c. Returns
// false when the crossing maps to no target or the group is empty.
func (s *Scheduler) Cross(g *Group, c Crossing) bool {
	if len(g.Members) == 0 {
		return false
	}
	target := g.Actions.Target(c)
	if target == TargetNone {
		return false
	}
	state := g.Profile.State(target)
	for i, m := range g.Members {
		s.tweens.Visual(m, state, g.Profile.Duration, g.Profile.Stagger*float32(i), g.Profile.Ease)
	}
	s.log.Debug("crossing",
		zap.String("group", g.Name),
		zap.Stringer("crossing", c))
	return true
}

// Snap sets every member of g to state immediately, cancelling tweens.
func (s *Scheduler) Snap(g *Group, state VisualState) {
	for _, m := range g.Members {
		s.tweens.Kill(m)
		m.SetVisual(state)
	}
}
