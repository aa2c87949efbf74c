package reveal

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor is a point along an extent: either a fraction of it or a fixed
// pixel distance from its start.
type Anchor struct {
	Fraction float64
	Pixels   float64
	IsPixels bool
}

// resolve returns the anchor's distance from the start of an extent.
func (a Anchor) resolve(extent float64) float64 {
	if a.IsPixels {
		return a.Pixels
	}
	return a.Fraction * extent
}

// BoundarySpec places a trigger boundary: the scroll offset at which the
// Element anchor of the trigger element meets the Viewport anchor.
// "top 85%" means "the element's top reaches 85% of the viewport height".
type BoundarySpec struct {
	Element  Anchor
	Viewport Anchor
}

// ParseBoundary parses "<element-anchor> <viewport-anchor>". Anchors are
// top, center, bottom, a percentage ("85%") or pixels ("120px" or "120").
// A single token is used for both sides.
func ParseBoundary(s string) (BoundarySpec, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 {
		fields = append(fields, fields[0])
	}
	if len(fields) != 2 {
		return BoundarySpec{}, fmt.Errorf("%w: %q", ErrBadBoundary, s)
	}
	el, err := parseAnchor(fields[0])
	if err != nil {
		return BoundarySpec{}, fmt.Errorf("%w: %q: %v", ErrBadBoundary, s, err)
	}
	vp, err := parseAnchor(fields[1])
	if err != nil {
		return BoundarySpec{}, fmt.Errorf("%w: %q: %v", ErrBadBoundary, s, err)
	}
	return BoundarySpec{Element: el, Viewport: vp}, nil
}

// MustParseBoundary is like ParseBoundary but panics on error. Intended for
// package-level defaults and tests.
func MustParseBoundary(s string) BoundarySpec {
	b, err := ParseBoundary(s)
	if err != nil {
		panic(err)
	}
	return b
}

func parseAnchor(tok string) (Anchor, error) {
	switch strings.ToLower(tok) {
	case "top":
		return Anchor{Fraction: 0}, nil
	case "center":
		return Anchor{Fraction: 0.5}, nil
	case "bottom":
		return Anchor{Fraction: 1}, nil
	}
	if num, ok := strings.CutSuffix(tok, "%"); ok {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Anchor{}, err
		}
		return Anchor{Fraction: v / 100}, nil
	}
	num, _ := strings.CutSuffix(tok, "px")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Anchor{}, err
	}
	return Anchor{Pixels: v, IsPixels: true}, nil
}

// TriggerRange is a pair of positions in document-scroll space with
// Start <= End. Start == End is a degenerate single-point range.
type TriggerRange struct {
	Start, End float64
}

// Length returns End - Start.
func (r TriggerRange) Length() float64 {
	return r.End - r.Start
}

// ResolveRange computes the scroll offsets at which box crosses the start and
// end boundaries for a viewport of the given height. An end that resolves
// before the start collapses the range to the start point.
func ResolveRange(box Rect, viewportH float64, start, end BoundarySpec) TriggerRange {
	s := box.Y + start.Element.resolve(box.Height) - start.Viewport.resolve(viewportH)
	e := box.Y + end.Element.resolve(box.Height) - end.Viewport.resolve(viewportH)
	if e < s {
		e = s
	}
	return TriggerRange{Start: s, End: e}
}

// ProgressOf maps a scroll offset to normalized progress in [0, 1] within r.
// It is clamped at both ends and monotonic non-decreasing in scroll. A
// zero-length range reads 0 before its point and 1 at or past it.
func ProgressOf(r TriggerRange, scroll float64) float64 {
	length := r.End - r.Start
	if length <= 0 {
		if scroll >= r.Start {
			return 1
		}
		return 0
	}
	return clamp01((scroll - r.Start) / length)
}

// Zone locates a scroll offset relative to a TriggerRange.
type Zone uint8

const (
	ZoneBefore Zone = iota // scroll < Start
	ZoneActive             // Start <= scroll < End
	ZoneAfter              // scroll >= End
)

// String returns a short name used in logs.
func (z Zone) String() string {
	switch z {
	case ZoneBefore:
		return "before"
	case ZoneActive:
		return "active"
	default:
		return "after"
	}
}

// ZoneOf returns the zone of scroll within r. A zero-length range has no
// active zone.
func ZoneOf(r TriggerRange, scroll float64) Zone {
	switch {
	case scroll < r.Start:
		return ZoneBefore
	case scroll >= r.End:
		return ZoneAfter
	default:
		return ZoneActive
	}
}

// Mode selects how a trigger drives its group.
type Mode uint8

const (
	ModeScrub    Mode = iota // progress re-read on every scroll
	ModeDiscrete             // only boundary crossings matter
)

// String returns the config name of the mode.
func (m Mode) String() string {
	if m == ModeDiscrete {
		return "discrete"
	}
	return "scrub"
}

// Trigger binds a group to its boundary pair. Range is owned by the Registry
// and rewritten only by recalculation.
type Trigger struct {
	Group *Group
	Start BoundarySpec
	End   BoundarySpec

	rng      TriggerRange
	zone     Zone
	progress float64
	enabled  bool
	primed   bool
}

// Range returns the trigger's current boundary pair.
func (t *Trigger) Range() TriggerRange {
	return t.rng
}

// Progress returns the last progress value applied.
func (t *Trigger) Progress() float64 {
	return t.progress
}

// Zone returns the last zone observed.
func (t *Trigger) Zone() Zone {
	return t.zone
}

// Enabled reports whether the trigger reacts to scroll.
func (t *Trigger) Enabled() bool {
	return t.enabled
}

// Registry holds every trigger and resolves their ranges from live geometry.
type Registry struct {
	doc      *Document
	triggers []*Trigger
}

// NewRegistry creates an empty registry reading geometry from doc.
func NewRegistry(doc *Document) *Registry {
	return &Registry{doc: doc}
}

// Register adds a trigger for g and resolves its range immediately.
func (r *Registry) Register(g *Group, start, end BoundarySpec) *Trigger {
	t := &Trigger{Group: g, Start: start, End: end, enabled: true}
	r.resolve(t)
	r.triggers = append(r.triggers, t)
	return t
}

// Triggers returns every registered trigger in registration order.
func (r *Registry) Triggers() []*Trigger {
	return r.triggers
}

// Ranges returns a snapshot of every trigger's range in registration order.
func (r *Registry) Ranges() []TriggerRange {
	out := make([]TriggerRange, len(r.triggers))
	for i, t := range r.triggers {
		out[i] = t.rng
	}
	return out
}

// ResolveAll re-derives every range from current geometry.
func (r *Registry) ResolveAll() {
	for _, t := range r.triggers {
		r.resolve(t)
	}
}

func (r *Registry) resolve(t *Trigger) {
	t.rng = ResolveRange(t.Group.Trigger.Bounds(), r.doc.viewport.Height, t.Start, t.End)
}
