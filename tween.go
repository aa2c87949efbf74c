package reveal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Element simultaneously.
// Create one via TweenVisual or TweenClip and call Update(dt) each frame (or
// hand it to a TweenSet). The group writes values every update and marks the
// element's visibility/layout as needed. If the target element is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]*float64
	ends     [4]float64
	target   *Element
	layout   bool
	duration float32

	// Delay postpones the first write by this many seconds.
	Delay float32
	// OnComplete runs once, right after the update that finishes the group.
	OnComplete func()

	Done bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and fires OnComplete when the last tween finishes. If the target
// has been disposed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	if g.Delay > 0 {
		if dt <= g.Delay {
			g.Delay -= dt
			return
		}
		dt -= g.Delay
		g.Delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		for i := 0; i < g.count; i++ {
			*g.fields[i] = g.ends[i]
		}
	}
	g.Done = allDone
	g.touch()

	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

// Finish jumps every field to its end value and completes the group.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	// Set(0) on a zero-length gween tween yields the begin value.
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Delay = 0
	g.Done = true
	g.touch()
	if g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

func (g *TweenGroup) touch() {
	if g.target == nil {
		return
	}
	if g.layout {
		g.target.MarkLayoutDirty()
		return
	}
	g.target.Visible = g.target.Alpha > 0
}

// TweenVisual creates a TweenGroup that animates alpha, vertical offset,
// rotation and scale of e toward to over duration seconds.
func TweenVisual(e *Element, to VisualState, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: 4, target: e, duration: duration}
	g.tweens[0] = gween.New(float32(e.Alpha), float32(to.Alpha), duration, fn)
	g.tweens[1] = gween.New(float32(e.OffsetY), float32(to.OffsetY), duration, fn)
	g.tweens[2] = gween.New(float32(e.Rotation), float32(to.Rotation), duration, fn)
	g.tweens[3] = gween.New(float32(e.Scale), float32(to.Scale), duration, fn)
	g.fields[0] = &e.Alpha
	g.fields[1] = &e.OffsetY
	g.fields[2] = &e.Rotation
	g.fields[3] = &e.Scale
	g.ends = [4]float64{to.Alpha, to.OffsetY, to.Rotation, to.Scale}
	return g
}

// TweenClip creates a TweenGroup that animates e.ClipHeight (max-height) to
// the target value. The element is marked for relayout on every write.
func TweenClip(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	from := e.ClipHeight
	if from < 0 {
		// Unclipped: start from the current used height.
		from = e.box.Height
	}
	g := &TweenGroup{count: 1, target: e, layout: true, duration: duration}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[0] = &e.ClipHeight
	g.ends[0] = to
	return g
}

// --- TweenSet ---

// tweenChannel separates independent animations on the same element.
type tweenChannel uint8

const (
	channelVisual tweenChannel = iota
	channelClip
)

type tweenKey struct {
	e  *Element
	ch tweenChannel
}

// Tweener is the tweening collaborator: it animates elements toward target
// states over a duration with an easing curve. The controller only decides
// what state to reach and when.
type Tweener interface {
	// Visual animates e toward to, replacing any running visual tween on e.
	Visual(e *Element, to VisualState, duration, delay float32, fn ease.TweenFunc) *TweenGroup
	// Clip animates e's max-height, replacing any running clip tween on e.
	Clip(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup
	// Kill stops every tween on e without completing it.
	Kill(e *Element)
	// Update advances all running tweens.
	Update(dt float32)
}

// TweenSet runs tweens in insertion order with at most one tween per element
// and channel: starting a new one overwrites the old one.
type TweenSet struct {
	active []*TweenGroup
	keys   []tweenKey
}

// NewTweenSet creates an empty TweenSet.
func NewTweenSet() *TweenSet {
	return &TweenSet{}
}

// Visual implements Tweener. A non-positive duration snaps immediately.
func (s *TweenSet) Visual(e *Element, to VisualState, duration, delay float32, fn ease.TweenFunc) *TweenGroup {
	g := TweenVisual(e, to, duration, fn)
	g.Delay = delay
	s.add(tweenKey{e, channelVisual}, g)
	return g
}

// Clip implements Tweener.
func (s *TweenSet) Clip(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := TweenClip(e, to, duration, fn)
	s.add(tweenKey{e, channelClip}, g)
	return g
}

func (s *TweenSet) add(k tweenKey, g *TweenGroup) {
	s.remove(k)
	if g.duration <= 0 && g.Delay <= 0 {
		g.Finish()
		return
	}
	s.active = append(s.active, g)
	s.keys = append(s.keys, k)
}

func (s *TweenSet) remove(k tweenKey) {
	for i := range s.keys {
		if s.keys[i] == k {
			s.active[i].Done = true
			s.active = append(s.active[:i], s.active[i+1:]...)
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}

// Kill implements Tweener.
func (s *TweenSet) Kill(e *Element) {
	s.remove(tweenKey{e, channelVisual})
	s.remove(tweenKey{e, channelClip})
}

// Running returns the number of unfinished tweens.
func (s *TweenSet) Running() int {
	return len(s.active)
}

// Update implements Tweener. Completion callbacks may start new tweens; those
// begin advancing on the next Update.
func (s *TweenSet) Update(dt float32) {
	n := len(s.active)
	groups := make([]*TweenGroup, n)
	copy(groups, s.active[:n])
	for _, g := range groups {
		g.Update(dt)
	}
	kept := s.active[:0]
	keys := s.keys[:0]
	for i, g := range s.active {
		if !g.Done {
			kept = append(kept, g)
			keys = append(keys, s.keys[i])
		}
	}
	clear(s.active[len(kept):])
	s.active = kept
	s.keys = keys
}

// Finish completes every running tween immediately.
func (s *TweenSet) Finish() {
	for len(s.active) > 0 {
		groups := s.active
		s.active, s.keys = nil, nil
		for _, g := range groups {
			g.Finish()
		}
	}
}
