// Package reveal synchronizes content animations with a scrolling document.
//
// A [Document] is a tree of [Element] boxes laid out in vertical block flow
// and viewed through a scrollable [Viewport]. A [Controller] watches the
// document's scroll offset and drives three features from it: content groups
// that reveal and hide as they cross the viewport, an exclusive-disclosure
// [Accordion], and a timeline [Tracker] whose marker follows the scroll.
//
// # Quick start
//
//	doc := reveal.NewDocument(1024, 768)
//	// ... build the page: elements carrying the classes named in Config ...
//	ctrl, err := reveal.New(doc, reveal.DefaultConfig(), reveal.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	ctrl.Start(ready) // ready delivers nil once fonts are loaded
//
//	// every frame
//	ctrl.Update(dt)
//
// Rendering is left to the caller; package reveal/view draws a document with
// [Ebitengine] and pumps window input into the controller.
//
// # Triggers
//
// Each content group owns a [Trigger]: a pair of [BoundarySpec] values such
// as "top 85%" (the element's top meets 85% of the viewport height) resolved
// against live geometry into a [TriggerRange] of scroll offsets. The
// [Registry] holds every trigger; [ProgressOf] maps a scroll offset into
// [0, 1] within a range.
//
// A scrubbed group ([ModeScrub]) is sampled from its [Profile] on every
// scroll: it enters, holds at the revealed state, and exits, and scrolling
// backward replays the same states in reverse. A discrete group
// ([ModeDiscrete]) reacts only to boundary crossings; its [ActionTable] maps
// each [Crossing] to a target state that the [Scheduler] tweens toward.
//
// # Recalculation
//
// Trigger ranges are computed from geometry, and geometry changes: the
// viewport resizes, fonts load, accordion panels open and close. Every such
// change goes through the [Coordinator], which debounces requests into a
// single pending slot and rebuilds every range and the tracker bounds from
// fresh layout. Ranges are never patched incrementally.
//
// # Tweens
//
// Discrete transitions, accordion heights and smoothed scrubbing run on
// [gween] tweens managed by a [TweenSet]. Replace it with [WithTweener].
//
// # Scripts
//
// [LoadScript] reads a JSON list of scroll, click and resize steps that the
// document replays one per frame, queueing labeled screenshots along the way.
// Useful for reproducible captures and automated visual checks.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package reveal
