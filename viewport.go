package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the window onto the document: its size and vertical scroll
// offset. ScrollY is clamped to [0, MaxScroll].
type Viewport struct {
	Width, Height float64
	ScrollY       float64

	docHeight   float64
	scrollTween *gween.Tween
}

// Rect returns the document-space rectangle currently visible.
func (v *Viewport) Rect() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// MaxScroll returns the largest valid scroll offset for the current document
// height.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.docHeight-v.Height)
}

// ScrollTo animates the scroll offset to y over duration seconds.
// A non-positive duration jumps immediately.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clamp(y)
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = y
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// ScrollBy moves the scroll offset by dy immediately, cancelling any running
// ScrollTo animation.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY = v.clamp(v.ScrollY + dy)
}

// update advances the scroll animation and re-clamps. Called from
// Document.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
	}
	v.ScrollY = v.clamp(v.ScrollY)
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}
