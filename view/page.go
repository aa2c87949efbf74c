package view

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/reveal"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// WhitePixel is a 1x1 white image scaled to draw solid rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}

// Page implements ebiten.Game for a controller's document.
type Page struct {
	ctrl  *reveal.Controller
	doc   *reveal.Document
	fonts *Fonts
	log   *zap.Logger

	// Background fills the screen before elements are drawn.
	Background reveal.Color
	// WheelStep is the scroll distance of one wheel notch.
	WheelStep float64
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with Document.Screenshot.
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached script has run
	// all its steps.
	ExitWhenScriptDone bool
	// Script is the runner attached to the document, if any.
	Script *reveal.ScriptRunner
	// Done, when closed, ends the game loop.
	Done <-chan struct{}

	width, height int
}

// NewPage creates a page rendering ctrl's document with fonts.
func NewPage(ctrl *reveal.Controller, fonts *Fonts, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{
		ctrl:          ctrl,
		doc:           ctrl.Document(),
		fonts:         fonts,
		log:           log,
		Background:    reveal.Color{R: 0.06, G: 0.07, B: 0.09, A: 1},
		WheelStep:     60,
		ScreenshotDir: "screenshots",
	}
}

// Update implements ebiten.Game.
func (p *Page) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	select {
	case <-p.Done:
		return ebiten.Termination
	default:
	}
	p.pumpInput()
	p.ctrl.Update(1 / float32(ebiten.TPS()))
	if p.ExitWhenScriptDone && p.Script != nil && p.Script.Done() && p.doc.PendingInput() == 0 {
		return ebiten.Termination
	}
	return nil
}

func (p *Page) pumpInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		p.doc.ScrollBy(-wy * p.WheelStep)
	}
	vp := p.doc.Viewport()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		vp.ScrollTo(vp.ScrollY+vp.Height*0.9, 0.35, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		vp.ScrollTo(vp.ScrollY-vp.Height*0.9, 0.35, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		vp.ScrollTo(0, 0.5, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		vp.ScrollTo(vp.MaxScroll(), 0.5, ease.OutCubic)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		p.doc.ScrollBy(8)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		p.doc.ScrollBy(-8)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if e := p.ctrl.Click(float64(x), float64(y)); e != nil {
			p.log.Debug("click", zap.String("element", e.Name))
		}
	}
}

// Layout implements ebiten.Game. A changed window size resizes the document.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.width || outsideHeight != p.height {
		p.width, p.height = outsideWidth, outsideHeight
		p.ctrl.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(p.Background))
	p.drawElement(screen, p.doc.Root(), 1, 0)
	if p.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	if labels := p.doc.TakeScreenshots(); len(labels) > 0 {
		if err := writeScreenshots(screen, p.ScreenshotDir, labels); err != nil {
			p.log.Error("screenshot", zap.Error(err))
		}
	}
}

// drawElement draws e and its subtree. alpha and offset accumulate from the
// ancestors.
func (p *Page) drawElement(screen *ebiten.Image, e *reveal.Element, alpha, offset float64) {
	if !e.Visible {
		return
	}
	alpha *= e.Alpha
	if alpha <= 0 {
		return
	}
	offset += e.OffsetY

	box := e.VisibleBox()
	if box.Height <= 0 && e.Bounds().Height > 0 {
		// Fully clipped.
		return
	}
	scroll := p.doc.ScrollY()
	y := box.Y - scroll + offset
	if y > float64(p.height) || y+box.Height < 0 {
		// Off screen, but absolute children may still show.
		for _, child := range e.Children() {
			if child.Absolute {
				p.drawElement(screen, child, alpha, offset)
			}
		}
		return
	}

	if s := StyleOf(e); s != nil {
		target := screen
		full := e.Bounds()
		if box.Height < full.Height {
			r := image.Rect(int(box.X), int(math.Floor(y)), int(box.X+box.Width), int(math.Ceil(y+box.Height)))
			target = screen.SubImage(r).(*ebiten.Image)
		}
		fy := full.Y - scroll + offset
		p.drawBox(target, e, s, full.X, fy, full.Width, full.Height, alpha)
		if s.Text != "" {
			p.drawText(target, e, s, full.X, fy, full.Width, alpha)
		}
	}

	for _, child := range e.Children() {
		p.drawElement(screen, child, alpha, offset)
	}
}

func (p *Page) drawBox(dst *ebiten.Image, e *reveal.Element, s *Style, x, y, w, h, alpha float64) {
	if s.Fill.A <= 0 || w <= 0 || h <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	centerAround(&op.GeoM, e, x, y, w, h)
	c := tint(s.Fill, e.Color, alpha)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(WhitePixel, &op)
}

func (p *Page) drawText(dst *ebiten.Image, e *reveal.Element, s *Style, x, y, w, alpha float64) {
	face := p.fonts.Face(s.TextSize)
	if face == nil {
		return
	}
	lh := p.fonts.lineHeight(s.TextSize)
	c := tint(s.TextColor, e.Color, alpha)
	for i, line := range p.fonts.Wrap(s.Text, s.TextSize, math.Max(1, w-2*s.Inset)) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+s.Inset, y+s.Inset+float64(i)*lh)
		op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		text.Draw(dst, line, face, op)
	}
}

// centerAround applies the element's scale and rotation around the box
// center, then moves the box to (x, y).
func centerAround(m *ebiten.GeoM, e *reveal.Element, x, y, w, h float64) {
	if e.Scale == 1 && e.Rotation == 0 {
		m.Translate(x, y)
		return
	}
	m.Translate(-w/2, -h/2)
	m.Scale(e.Scale, e.Scale)
	m.Rotate(e.Rotation)
	m.Translate(x+w/2, y+h/2)
}

func tint(c, t reveal.Color, alpha float64) reveal.Color {
	return reveal.Color{R: c.R * t.R, G: c.G * t.G, B: c.B * t.B, A: c.A * t.A * alpha}
}

func toRGBA(c reveal.Color) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}
