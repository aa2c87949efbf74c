package view

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/reveal"
)

// Fonts holds the page's typeface. It loads in the background so the first
// frames can render before text metrics are known; the load result doubles as
// the controller's readiness signal.
type Fonts struct {
	source atomic.Pointer[text.GoTextFaceSource]
	faces  map[float64]*text.GoTextFace
}

// NewFonts creates an empty font holder.
func NewFonts() *Fonts {
	return &Fonts{faces: make(map[float64]*text.GoTextFace)}
}

// Load parses ttf on a separate goroutine. The returned channel receives nil
// once the face is usable, or the parse error, then closes.
func (f *Fonts) Load(ttf []byte) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			ch <- fmt.Errorf("parse font: %w", err)
			return
		}
		f.source.Store(src)
		ch <- nil
	}()
	return ch
}

// Ready reports whether the face has loaded.
func (f *Fonts) Ready() bool {
	return f.source.Load() != nil
}

// Face returns the face at size, or nil before the font has loaded. Must be
// called from the update/draw goroutine.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	src := f.source.Load()
	if src == nil {
		return nil
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: src, Size: size}
	f.faces[size] = face
	return face
}

// lineHeight returns the vertical distance between baselines at size. Before
// the font has loaded it falls back to 1.25em.
func (f *Fonts) lineHeight(size float64) float64 {
	face := f.Face(size)
	if face == nil {
		return size * 1.25
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// advance returns the width of s at size. Before the font has loaded every
// glyph is assumed half an em wide.
func (f *Fonts) advance(s string, size float64) float64 {
	face := f.Face(size)
	if face == nil {
		return float64(len([]rune(s))) * size * 0.5
	}
	return text.Advance(s, face)
}

// Wrap breaks s into lines no wider than width at size. Explicit newlines
// are kept; a single word wider than width gets a line of its own.
func (f *Fonts) Wrap(s string, size, width float64) []string {
	var lines []string
	space := f.advance(" ", size)
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curW := 0.0
		for _, w := range words {
			ww := f.advance(w, size)
			if cur.Len() > 0 && curW+space+ww > width {
				lines = append(lines, cur.String())
				cur.Reset()
				curW = 0
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
				curW += space
			}
			cur.WriteString(w)
			curW += ww
		}
		lines = append(lines, cur.String())
	}
	return lines
}

// Reflow returns a reveal Reflow function that sizes an element to its
// style's wrapped text. The element's height then follows the viewport width,
// which is what makes trigger ranges go stale on resize.
func (f *Fonts) Reflow(s *Style) func(width float64) float64 {
	return func(width float64) float64 {
		if s.Text == "" {
			return 0
		}
		inner := math.Max(1, width-2*s.Inset)
		n := len(f.Wrap(s.Text, s.TextSize, inner))
		return math.Ceil(float64(n)*f.lineHeight(s.TextSize) + 2*s.Inset)
	}
}

// TextBlock creates a styled leaf whose height follows its wrapped text.
func (f *Fonts) TextBlock(name string, s *Style, classes ...string) *reveal.Element {
	e := reveal.NewElement(name, classes...)
	e.Reflow = f.Reflow(s)
	return Styled(e, s)
}
