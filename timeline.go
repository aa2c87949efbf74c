package reveal

import (
	"fmt"
	"math"
)

// Tracker moves a marker along a track so that it centers on the first item
// at progress 0 and on the last item at progress 1. Positions are relative to
// the track's top edge.
type Tracker struct {
	Track  *Element
	Items  []*Element
	Marker *Element

	Start BoundarySpec
	End   BoundarySpec

	trackStart, trackEnd float64
	rng                  TriggerRange
	position             float64
	active               int
}

// NewTracker validates the collaborators and returns a tracker. The marker is
// taken out of flow so its position never shifts the items.
func NewTracker(track, marker *Element, items []*Element, start, end BoundarySpec) (*Tracker, error) {
	switch {
	case track == nil:
		return nil, fmt.Errorf("timeline track: %w", ErrMissingElement)
	case marker == nil:
		return nil, fmt.Errorf("timeline marker: %w", ErrMissingElement)
	case len(items) == 0:
		return nil, fmt.Errorf("timeline items: %w", ErrMissingElement)
	}
	// The marker sits at the track top; its position is a visual offset,
	// like every other animated property.
	marker.Absolute = true
	marker.Y = 0
	track.MarkLayoutDirty()
	return &Tracker{Track: track, Items: items, Marker: marker, Start: start, End: end, active: -1}, nil
}

// Bounds returns the marker track.
func (t *Tracker) Bounds() (start, end float64) {
	return t.trackStart, t.trackEnd
}

// Range returns the tracker's own trigger range.
func (t *Tracker) Range() TriggerRange {
	return t.rng
}

// Position returns the marker's current offset from the track top.
func (t *Tracker) Position() float64 {
	return t.position
}

// ActiveIndex returns the index of the item nearest the marker, or -1 before
// the first update.
func (t *Tracker) ActiveIndex() int {
	return t.active
}

// Recompute derives the track bounds and trigger range from current geometry.
// Call after layout.
func (t *Tracker) Recompute(viewportH float64) {
	top := t.Track.Bounds().Y
	half := t.Marker.Bounds().Height / 2
	first := t.Items[0].Bounds()
	last := t.Items[len(t.Items)-1].Bounds()
	t.trackStart = first.CenterY() - top - half
	t.trackEnd = last.CenterY() - top - half
	if t.trackEnd < t.trackStart {
		t.trackEnd = t.trackStart
	}
	t.rng = ResolveRange(t.Track.Bounds(), viewportH, t.Start, t.End)
}

// PositionAt maps track progress to a marker offset by linear interpolation.
// The result always lies within [trackStart, trackEnd].
func (t *Tracker) PositionAt(p float64) float64 {
	return lerp(t.trackStart, t.trackEnd, clamp01(p))
}

// Update positions the marker for the given scroll offset and flags the item
// nearest to it as active.
func (t *Tracker) Update(scroll float64) {
	t.position = t.PositionAt(ProgressOf(t.rng, scroll))
	t.Marker.OffsetY = t.position

	top := t.Track.Bounds().Y
	center := t.position + t.Marker.Bounds().Height/2
	best, bestDist := -1, math.Inf(1)
	for i, it := range t.Items {
		d := math.Abs(it.Bounds().CenterY() - top - center)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	for i, it := range t.Items {
		it.Active = i == best
	}
	t.active = best
}
