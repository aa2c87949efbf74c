package reveal

import (
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RecalcScheduler accepts deferred recalculation requests.
type RecalcScheduler interface {
	ScheduleRecalc(after time.Duration, reason string)
}

// Panel is one disclosure panel. Only the Accordion changes its state.
type Panel struct {
	ID      string
	Item    *Element
	Header  *Element
	Content *Element

	// MeasuredHeight is the content's natural height, re-measured on every
	// open.
	MeasuredHeight float64

	open bool
}

// IsOpen reports whether the panel is open.
func (p *Panel) IsOpen() bool {
	return p.open
}

// Accordion is the exclusive-disclosure state machine: at most one panel is
// open after every activation.
type Accordion struct {
	doc         *Document
	panels      []*Panel
	tweens      Tweener
	recalc      RecalcScheduler
	duration    time.Duration
	ease        ease.TweenFunc
	activeClass string
	log         *zap.Logger

	// OnToggle, when set, runs after every activation with the panel that
	// was activated.
	OnToggle func(p *Panel)
}

// NewAccordion scans doc for items carrying cfg.ItemClass, pairs each with
// its header and content, and wires header clicks. Items missing a header or
// content are skipped; the returned error lists them and is informational.
func NewAccordion(doc *Document, cfg AccordionConfig, tweens Tweener, recalc RecalcScheduler, log *zap.Logger) (*Accordion, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Accordion{
		doc:         doc,
		tweens:      tweens,
		recalc:      recalc,
		duration:    cfg.Duration,
		ease:        mustEase(cfg.Ease),
		activeClass: cfg.ActiveClass,
		log:         log,
	}

	var skipped error
	for i, item := range doc.Query(cfg.ItemClass) {
		header := item.Find(cfg.HeaderClass)
		content := item.Find(cfg.ContentClass)
		if header == nil || content == nil {
			skipped = multierr.Append(skipped,
				fmt.Errorf("accordion item %d (%s): %w", i, item.Name, ErrMissingElement))
			continue
		}
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("panel-%d", i)
		}
		p := &Panel{ID: id, Item: item, Header: header, Content: content}
		a.panels = append(a.panels, p)
		header.OnClick = func(ClickContext) { a.Activate(p) }
	}

	// Honor a pre-opened panel from markup, but only the first one.
	doc.Layout()
	var opened bool
	for _, p := range a.panels {
		if !opened && p.Item.HasClass(a.activeClass) {
			opened = true
			p.open = true
			p.Header.Expanded = true
			p.MeasuredHeight = p.Content.ScrollHeight()
			p.Content.SetClipHeight(p.MeasuredHeight)
			continue
		}
		p.Item.RemoveClass(a.activeClass)
		p.Header.Expanded = false
		p.Content.SetClipHeight(0)
	}
	doc.Layout()
	return a, skipped
}

// Panels returns every panel in document order.
func (a *Accordion) Panels() []*Panel {
	return a.panels
}

// Panel returns the panel with the given ID, or nil.
func (a *Accordion) Panel(id string) *Panel {
	for _, p := range a.panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Open returns the open panel, or nil.
func (a *Accordion) Open() *Panel {
	for _, p := range a.panels {
		if p.open {
			return p
		}
	}
	return nil
}

// OpenCount returns how many panels are open. Always 0 or 1.
func (a *Accordion) OpenCount() int {
	n := 0
	for _, p := range a.panels {
		if p.open {
			n++
		}
	}
	return n
}

// ActivateID activates the panel with the given ID. Returns false if there
// is no such panel.
func (a *Accordion) ActivateID(id string) bool {
	p := a.Panel(id)
	if p == nil {
		return false
	}
	a.Activate(p)
	return true
}

// Activate handles a header activation. An open panel closes; a closed panel
// opens after every other panel closes. Either way exactly one recalculation
// is scheduled for when the height transition settles.
func (a *Accordion) Activate(p *Panel) {
	if p.open {
		a.close(p)
	} else {
		for _, other := range a.panels {
			if other != p && other.open {
				a.close(other)
			}
		}
		a.open(p)
	}
	a.log.Debug("panel activated", zap.String("panel", p.ID), zap.Bool("open", p.open))
	if a.recalc != nil {
		a.recalc.ScheduleRecalc(a.duration, "accordion")
	}
	if a.OnToggle != nil {
		a.OnToggle(p)
	}
}

func (a *Accordion) open(p *Panel) {
	// Measure fresh: content may have reflowed since the last open.
	a.doc.Layout()
	p.MeasuredHeight = p.Content.ScrollHeight()
	p.open = true
	p.Item.AddClass(a.activeClass)
	p.Header.Expanded = true
	a.tweens.Clip(p.Content, p.MeasuredHeight, float32(a.duration.Seconds()), a.ease)
}

func (a *Accordion) close(p *Panel) {
	p.open = false
	p.Item.RemoveClass(a.activeClass)
	p.Header.Expanded = false
	a.tweens.Clip(p.Content, 0, float32(a.duration.Seconds()), a.ease)
}

// remeasure grows or shrinks a settled open panel to its content's current
// natural height. Returns true when the clip changed. A panel still
// mid-transition is left alone.
func (a *Accordion) remeasure() bool {
	p := a.Open()
	if p == nil || math.Abs(p.Content.ClipHeight-p.MeasuredHeight) > 0.5 {
		return false
	}
	h := p.Content.ScrollHeight()
	if math.Abs(h-p.MeasuredHeight) <= 0.5 {
		return false
	}
	p.MeasuredHeight = h
	p.Content.SetClipHeight(h)
	return true
}
