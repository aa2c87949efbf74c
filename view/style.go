package view

import "github.com/phanxgames/reveal"

// Style is what the renderer draws for an element. Attach it with Styled or
// by setting Element.UserData.
type Style struct {
	Fill reveal.Color

	Text      string
	TextSize  float64
	TextColor reveal.Color
	// Inset is the horizontal and top padding of the text inside the box.
	Inset float64
}

// Styled attaches s to e and returns e.
func Styled(e *reveal.Element, s *Style) *reveal.Element {
	e.UserData = s
	return e
}

// StyleOf returns the style attached to e, or nil.
func StyleOf(e *reveal.Element) *Style {
	s, _ := e.UserData.(*Style)
	return s
}
