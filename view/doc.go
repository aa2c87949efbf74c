// Package view renders a reveal [reveal.Document] with [Ebitengine] and pumps
// window input into a [reveal.Controller].
//
// Elements are drawn only when they carry a [*Style] in UserData: a filled
// rectangle, optionally with wrapped text. Alpha and vertical offset compose
// down the tree; rotation and scale apply around each element's center, and
// clipping ancestors (collapsed accordion panels) cut what is drawn.
//
//	doc := reveal.NewDocument(1024, 768)
//	// ... build the page ...
//	ctrl, _ := reveal.New(doc, reveal.DefaultConfig())
//	page := view.NewPage(ctrl, fonts)
//	ctrl.Start(fonts.Load(goregular.TTF))
//	ebiten.RunGame(page)
//
// [Ebitengine]: https://ebitengine.org
package view
