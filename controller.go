package reveal

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTweener replaces the default gween-backed TweenSet.
func WithTweener(t Tweener) Option {
	return func(c *Controller) {
		if t != nil {
			c.tweens = t
		}
	}
}

// WithEventSink sets where controller events are delivered.
func WithEventSink(s EventSink) Option {
	return func(c *Controller) {
		c.sink = s
	}
}

// Controller owns every piece of page animation state: the trigger table,
// the accordion's panel table, the timeline tracker and the recalculation
// coordinator. It runs on the caller's single update loop; nothing in it is
// safe for concurrent use, and nothing needs to be.
type Controller struct {
	doc  *Document
	cfg  *Config
	log  *zap.Logger
	sink EventSink

	tweens    Tweener
	registry  *Registry
	sched     *Scheduler
	coord     *Coordinator
	accordion *Accordion
	tracker   *Tracker
	groups    []*Group
	triggers  map[*Group]*Trigger
	entrances map[*Group]*EntranceConfig

	skipped error

	ready       <-chan error
	waiting     bool
	waited      time.Duration
	initialized bool

	lastScroll float64
	breakpoint int

	handles []CallbackHandle
}

// New validates cfg and creates a controller over doc. Nothing is measured
// until Start.
func New(doc *Document, cfg *Config, opts ...Option) (*Controller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		doc:        doc,
		cfg:        cfg,
		log:        zap.NewNop(),
		triggers:   make(map[*Group]*Trigger),
		entrances:  make(map[*Group]*EntranceConfig),
		breakpoint: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tweens == nil {
		c.tweens = NewTweenSet()
	}
	c.registry = NewRegistry(doc)
	c.sched = NewScheduler(c.tweens, c.log.Named("scheduler"))
	c.coord = NewCoordinator(doc, c.registry, c.log.Named("recalc"))
	c.coord.SetDebugMode(cfg.Debug)
	c.coord.evaluate = c.evaluateAll
	c.coord.onRecalc = func(reason string) {
		c.emit(Event{Kind: EventRecalculated, Reason: reason, Generation: c.coord.generation, Scroll: c.doc.ScrollY()})
	}

	c.handles = append(c.handles,
		doc.OnScroll(c.onScroll),
		doc.OnResize(c.onResize),
	)
	return c, nil
}

// Start begins initialization. Geometry-dependent setup waits for ready to
// deliver a value (or close); a non-nil error, or no answer within
// Config.ReadyTimeout, is logged and initialization proceeds anyway. A nil
// channel initializes immediately. Start never blocks.
func (c *Controller) Start(ready <-chan error) {
	if c.initialized || c.waiting {
		return
	}
	if ready == nil {
		c.initialize()
		return
	}
	c.ready = ready
	c.waiting = true
}

// Update advances the controller by dt seconds: polls the readiness signal,
// runs tweens, processes document input, and fires due recalculations.
func (c *Controller) Update(dt float32) {
	d := time.Duration(float64(dt) * float64(time.Second))
	if c.waiting {
		c.pollReady(d)
	}
	c.tweens.Update(dt)
	c.doc.Update(dt)
	c.coord.Advance(d)
}

func (c *Controller) pollReady(d time.Duration) {
	select {
	case err, ok := <-c.ready:
		if ok && err != nil {
			c.log.Warn("readiness signal rejected, proceeding with current geometry",
				zap.Error(fmt.Errorf("%w: %w", ErrReadiness, err)))
		}
		c.waiting = false
		c.initialize()
		return
	default:
	}
	c.waited += d
	if c.cfg.ReadyTimeout > 0 && c.waited >= c.cfg.ReadyTimeout {
		c.log.Warn("readiness signal timed out, proceeding with current geometry",
			zap.Error(ErrReadiness), zap.Duration("waited", c.waited))
		c.waiting = false
		c.initialize()
	}
}

// Initialized reports whether initialization has run.
func (c *Controller) Initialized() bool {
	return c.initialized
}

func (c *Controller) initialize() {
	c.initialized = true
	c.applyBreakpoint(c.doc.viewport.Width)
	c.doc.Layout()
	c.lastScroll = c.doc.ScrollY()

	var entrances []*Group
	for i := range c.cfg.Groups {
		gc := &c.cfg.Groups[i]
		compiled, err := gc.compile()
		if err != nil {
			// Validated in New; only reachable if cfg was mutated since.
			c.skip(fmt.Errorf("group %s: %w", gc.Name, err))
			continue
		}
		roots := c.doc.Query(gc.Class)
		if len(roots) == 0 {
			c.skip(fmt.Errorf("group %s: class %q: %w", gc.Name, gc.Class, ErrMissingElement))
			continue
		}
		for j, root := range roots {
			g := c.buildGroup(gc, compiled, root, j)
			t := c.registry.Register(g, compiled.start, compiled.end)
			c.triggers[g] = t
			if gc.Entrance != nil {
				t.enabled = false
				c.entrances[g] = gc.Entrance
				entrances = append(entrances, g)
			}
		}
	}

	if c.cfg.Accordion.ItemClass != "" {
		a, err := NewAccordion(c.doc, c.cfg.Accordion, c.tweens, c.coord, c.log.Named("accordion"))
		c.skip(err)
		if len(a.Panels()) == 0 && err == nil {
			c.skip(fmt.Errorf("accordion items %q: %w", c.cfg.Accordion.ItemClass, ErrMissingElement))
		}
		if len(a.Panels()) > 0 {
			a.OnToggle = func(p *Panel) {
				c.emit(Event{Kind: EventPanelToggled, Panel: p.ID, Open: p.open, Scroll: c.doc.ScrollY()})
			}
			c.accordion = a
			c.coord.SetAccordion(a)
		}
	}

	if tc := c.cfg.Timeline; tc.TrackClass != "" {
		c.initTracker(tc)
	}

	c.coord.RecalcNow()

	for _, g := range entrances {
		c.playEntrance(g)
	}

	if c.skipped != nil {
		c.log.Debug("features skipped", zap.Error(c.skipped))
	}
	c.log.Info("initialized",
		zap.Int("groups", len(c.groups)),
		zap.Int("panels", c.panelCount()),
		zap.Bool("timeline", c.tracker != nil))
	c.emit(Event{Kind: EventReady, Scroll: c.doc.ScrollY()})
}

func (c *Controller) buildGroup(gc *GroupConfig, compiled compiledGroup, root *Element, index int) *Group {
	members := []*Element{root}
	if gc.Members != "" {
		members = root.FindAll(gc.Members)
		if len(members) == 0 {
			c.skip(fmt.Errorf("group %s[%d]: members %q: %w", gc.Name, index, gc.Members, ErrMissingElement))
		}
	}
	profile := compiled.profile
	name := gc.Name
	if root.ID != "" {
		name = gc.Name + "#" + root.ID
	} else if index > 0 {
		name = fmt.Sprintf("%s[%d]", gc.Name, index)
	}
	g := &Group{
		Name:     name,
		Trigger:  root,
		Members:  members,
		Profile:  &profile,
		Actions:  compiled.actions,
		Mode:     compiled.mode,
		ScrubLag: gc.Scrub,
	}
	c.groups = append(c.groups, g)
	return g
}

func (c *Controller) initTracker(tc TimelineConfig) {
	tracks := c.doc.Query(tc.TrackClass)
	if len(tracks) == 0 {
		c.skip(fmt.Errorf("timeline track %q: %w", tc.TrackClass, ErrMissingElement))
		return
	}
	track := tracks[0]
	t, err := NewTracker(track, track.Find(tc.MarkerClass), track.FindAll(tc.ItemClass),
		MustParseBoundary(tc.Start), MustParseBoundary(tc.End))
	if err != nil {
		c.skip(err)
		return
	}
	c.tracker = t
	c.coord.SetTracker(t)
}

func (c *Controller) skip(err error) {
	if err != nil {
		c.skipped = multierr.Append(c.skipped, err)
	}
}

// Skipped returns every feature skipped because an element was missing,
// combined with multierr. Nil when nothing was skipped.
func (c *Controller) Skipped() error {
	return c.skipped
}

// --- Evaluation ---

// evaluateAll re-applies every enabled trigger and the tracker at the current
// scroll offset. Runs right after every recalculation.
func (c *Controller) evaluateAll() {
	y := c.doc.ScrollY()
	for _, t := range c.registry.triggers {
		c.evaluate(t, y, DirectionNone)
	}
	if c.tracker != nil {
		c.tracker.Update(y)
	}
}

func (c *Controller) evaluate(t *Trigger, y float64, dir Direction) {
	if !t.enabled {
		return
	}
	g := t.Group
	p := ProgressOf(t.rng, y)
	zone := ZoneOf(t.rng, y)
	switch g.Mode {
	case ModeScrub:
		if t.primed && p == t.progress && zone == t.zone {
			return
		}
		if !t.primed {
			dir = DirectionNone
		}
		t.primed = true
		t.progress = p
		t.zone = zone
		c.sched.Apply(g, p, dir)
	case ModeDiscrete:
		if !t.primed {
			t.primed = true
			t.zone = ZoneBefore
			c.sched.Snap(g, g.Profile.Initial)
		}
		t.progress = p
		for _, x := range Crossings(t.zone, zone) {
			if c.sched.Cross(g, x) {
				c.emit(Event{Kind: EventCrossing, Group: g.Name, Crossing: x, Target: g.Actions.Target(x), Scroll: y})
			}
		}
		t.zone = zone
	}
}

func (c *Controller) onScroll(y float64) {
	if !c.initialized {
		c.lastScroll = y
		return
	}
	dir := directionOf(c.lastScroll, y)
	c.lastScroll = y
	for _, t := range c.registry.triggers {
		c.evaluate(t, y, dir)
	}
	if c.tracker != nil {
		c.tracker.Update(y)
	}
}

func (c *Controller) onResize(width, _ float64) {
	if !c.initialized {
		return
	}
	if c.applyBreakpoint(width) {
		c.doc.Layout()
	}
	c.coord.ScheduleRecalc(c.cfg.Recalc.ResizeDebounce, "resize")
}

// applyBreakpoint sets the root top padding for width. Returns true when a
// different breakpoint took effect.
func (c *Controller) applyBreakpoint(width float64) bool {
	pad, idx := c.cfg.paddingFor(width)
	if idx == c.breakpoint {
		return false
	}
	changed := c.breakpoint != -1
	c.breakpoint = idx
	if idx < 0 {
		return changed
	}
	c.doc.root.PaddingTop = pad
	c.doc.root.MarkLayoutDirty()
	if changed {
		c.log.Debug("breakpoint crossed", zap.Float64("width", width), zap.Float64("padding", pad))
	}
	return true
}

// --- Entrance ---

func (c *Controller) playEntrance(g *Group) {
	e := c.entrances[g]
	if e == nil || len(g.Members) == 0 {
		c.entranceDone(g)
		return
	}
	fn := mustEase(e.Ease)
	c.sched.Snap(g, e.From)
	last := len(g.Members) - 1
	for i, m := range g.Members {
		delay := float32(e.Delay.Seconds()) + float32(e.Stagger.Seconds())*float32(i)
		tw := c.tweens.Visual(m, g.Profile.Revealed, float32(e.Duration.Seconds()), delay, fn)
		if i == last {
			if tw.Done {
				c.entranceDone(g)
			} else {
				tw.OnComplete = func() { c.entranceDone(g) }
			}
		}
	}
}

// entranceDone hands the group to its scroll trigger. The trigger resumes
// from the zone the scroll is actually in, so no crossing is fired for the
// hand-off itself; the members keep the revealed state until the next real
// crossing.
func (c *Controller) entranceDone(g *Group) {
	t := c.triggers[g]
	if t == nil || t.enabled {
		return
	}
	y := c.doc.ScrollY()
	t.enabled = true
	t.primed = true
	t.zone = ZoneOf(t.rng, y)
	t.progress = ProgressOf(t.rng, y)
	c.log.Debug("entrance complete", zap.String("group", g.Name))
	c.emit(Event{Kind: EventEntranceDone, Group: g.Name, Scroll: y})
	c.coord.ScheduleRecalc(c.cfg.Recalc.EntranceSettle, "entrance")
}

// --- Accessors ---

// Document returns the controlled document.
func (c *Controller) Document() *Document { return c.doc }

// Groups returns every content group in registration order.
func (c *Controller) Groups() []*Group { return c.groups }

// Trigger returns the trigger of g, or nil.
func (c *Controller) Trigger(g *Group) *Trigger { return c.triggers[g] }

// Registry returns the trigger registry.
func (c *Controller) Registry() *Registry { return c.registry }

// Accordion returns the accordion, or nil when the page has none.
func (c *Controller) Accordion() *Accordion { return c.accordion }

// Tracker returns the timeline tracker, or nil when the page has none.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Coordinator returns the recalculation coordinator.
func (c *Controller) Coordinator() *Coordinator { return c.coord }

// Tweens returns the tweening collaborator.
func (c *Controller) Tweens() Tweener { return c.tweens }

// Scroll sets the scroll offset; triggers update immediately.
func (c *Controller) Scroll(y float64) { c.doc.Scroll(y) }

// Resize changes the viewport size and schedules a debounced recalculation.
func (c *Controller) Resize(width, height float64) { c.doc.Resize(width, height) }

// Click dispatches a click at viewport coordinates.
func (c *Controller) Click(x, y float64) *Element { return c.doc.Click(x, y) }

// Close detaches the controller from the document's listeners.
func (c *Controller) Close() {
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.coord.Cancel()
}

func (c *Controller) panelCount() int {
	if c.accordion == nil {
		return 0
	}
	return len(c.accordion.panels)
}

func (c *Controller) emit(e Event) {
	if c.sink != nil {
		c.sink.Emit(e)
	}
}
