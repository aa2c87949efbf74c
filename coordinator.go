package reveal

import (
	"time"

	"go.uber.org/zap"
)

// Coordinator owns the authoritative trigger ranges and marker track and
// re-derives them from live geometry. Requests are deferred on a cooperative
// clock advanced by Advance; a single pending slot means the latest request
// replaces any earlier one.
type Coordinator struct {
	doc       *Document
	registry  *Registry
	tracker   *Tracker
	accordion *Accordion

	// evaluate re-applies every trigger at the current scroll offset right
	// after ranges are rebuilt.
	evaluate func()
	// onRecalc runs after each recalculation with the reason it was
	// requested for.
	onRecalc func(reason string)

	now      time.Duration
	pending  bool
	deadline time.Duration
	reason   string

	generation uint64
	requests   int

	log   *zap.Logger
	debug bool
}

// NewCoordinator creates a coordinator over doc and registry. tracker and
// accordion may be attached later with SetTracker and SetAccordion.
func NewCoordinator(doc *Document, registry *Registry, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{doc: doc, registry: registry, log: log}
}

// SetTracker attaches the timeline tracker whose bounds are recomputed.
func (c *Coordinator) SetTracker(t *Tracker) {
	c.tracker = t
}

// SetAccordion attaches the accordion whose open panel is re-measured.
func (c *Coordinator) SetAccordion(a *Accordion) {
	c.accordion = a
}

// ScheduleRecalc requests a recalculation after the given delay. A pending
// request is superseded: the recompute fires once, after the latest
// request's delay has elapsed from the latest request.
func (c *Coordinator) ScheduleRecalc(after time.Duration, reason string) {
	if after < 0 {
		after = 0
	}
	c.requests++
	c.pending = true
	c.deadline = c.now + after
	c.reason = reason
	c.log.Debug("recalc scheduled", zap.String("reason", reason), zap.Duration("after", after))
}

// Cancel drops any pending request.
func (c *Coordinator) Cancel() {
	c.pending = false
	c.reason = ""
}

// Pending reports whether a request is waiting and how long until it fires.
func (c *Coordinator) Pending() (remaining time.Duration, ok bool) {
	if !c.pending {
		return 0, false
	}
	return max(0, c.deadline-c.now), true
}

// Advance moves the clock forward by dt and fires the pending request once
// its deadline has passed.
func (c *Coordinator) Advance(dt time.Duration) {
	c.now += dt
	if c.pending && c.now >= c.deadline {
		reason := c.reason
		c.pending = false
		c.reason = ""
		c.recalc(reason)
	}
}

// RecalcNow re-derives every trigger range and the marker track from current
// geometry and re-evaluates all triggers at the current scroll offset.
// Idempotent when geometry has not changed.
func (c *Coordinator) RecalcNow() {
	c.recalc("immediate")
}

func (c *Coordinator) recalc(reason string) {
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	c.doc.Layout()
	if c.accordion != nil && c.accordion.remeasure() {
		c.doc.Layout()
	}
	c.registry.ResolveAll()
	if c.tracker != nil {
		c.tracker.Recompute(c.doc.viewport.Height)
	}
	c.generation++
	if c.evaluate != nil {
		c.evaluate()
	}
	if c.onRecalc != nil {
		c.onRecalc(reason)
	}

	if c.debug {
		c.debugLog(reason, time.Since(t0))
		c.debugCheckPanels()
	}
}

// Generation counts completed recalculations. Progress computed under an
// older generation is superseded.
func (c *Coordinator) Generation() uint64 {
	return c.generation
}

// Requests counts ScheduleRecalc calls.
func (c *Coordinator) Requests() int {
	return c.requests
}
