package reveal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config describes every scroll feature of a page. DefaultConfig reproduces
// the portfolio page the package was written for.
type Config struct {
	Groups      []GroupConfig   `yaml:"groups"`
	Accordion   AccordionConfig `yaml:"accordion"`
	Timeline    TimelineConfig  `yaml:"timeline"`
	Recalc      RecalcConfig    `yaml:"recalc"`
	Breakpoints []Breakpoint    `yaml:"breakpoints"`

	// ReadyTimeout bounds the wait for the readiness signal.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`

	Logging LoggingConfig `yaml:"logging"`
	Debug   bool          `yaml:"debug"`
}

// GroupConfig declares one kind of content group. Every element carrying
// Class becomes its own group; its members are the descendants carrying
// Members (or the element itself when Members is empty).
type GroupConfig struct {
	Name    string `yaml:"name"`
	Class   string `yaml:"class"`
	Members string `yaml:"members,omitempty"`

	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Mode  string `yaml:"mode"`
	// Scrub is the smoothing lag in seconds for scrub mode; 0 snaps.
	Scrub   float32 `yaml:"scrub,omitempty"`
	Actions string  `yaml:"actions,omitempty"`

	Initial  VisualState `yaml:"initial"`
	Revealed VisualState `yaml:"revealed"`
	Exited   VisualState `yaml:"exited"`
	Phases   Phases      `yaml:"phases"`
	EaseIn   string      `yaml:"ease_in,omitempty"`
	EaseOut  string      `yaml:"ease_out,omitempty"`

	Duration time.Duration `yaml:"duration,omitempty"`
	Ease     string        `yaml:"ease,omitempty"`
	Stagger  time.Duration `yaml:"stagger,omitempty"`

	// Entrance, when set, plays once after initialization. The group's
	// scroll trigger is held until it completes.
	Entrance *EntranceConfig `yaml:"entrance,omitempty"`
}

// EntranceConfig is the one-time welcome animation of a group.
type EntranceConfig struct {
	From     VisualState   `yaml:"from"`
	Duration time.Duration `yaml:"duration"`
	Delay    time.Duration `yaml:"delay,omitempty"`
	Ease     string        `yaml:"ease,omitempty"`
	Stagger  time.Duration `yaml:"stagger,omitempty"`
}

// AccordionConfig names the accordion's classes and its height transition.
type AccordionConfig struct {
	ItemClass    string        `yaml:"item"`
	HeaderClass  string        `yaml:"header"`
	ContentClass string        `yaml:"content"`
	ActiveClass  string        `yaml:"active"`
	Duration     time.Duration `yaml:"duration"`
	Ease         string        `yaml:"ease,omitempty"`
}

// TimelineConfig names the timeline's elements and its own trigger.
type TimelineConfig struct {
	TrackClass  string `yaml:"track"`
	ItemClass   string `yaml:"item"`
	MarkerClass string `yaml:"marker"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
}

// RecalcConfig tunes recalculation delays.
type RecalcConfig struct {
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	// EntranceSettle delays the recalc after the entrance completes.
	EntranceSettle time.Duration `yaml:"entrance_settle"`
}

// Breakpoint applies a top padding to the document root at and above
// MinWidth (a fixed header that changes height).
type Breakpoint struct {
	MinWidth float64 `yaml:"min_width"`
	Padding  float64 `yaml:"padding"`
}

// UnmarshalYAML fills omitted fields with the identity state (opaque,
// unscaled) before decoding.
func (v *VisualState) UnmarshalYAML(node *yaml.Node) error {
	type plain VisualState
	p := plain{Alpha: 1, Scale: 1}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*v = VisualState(p)
	return nil
}

// UnmarshalYAML starts every state of the group at the identity state so
// omitted states stay visible.
func (gc *GroupConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain GroupConfig
	identity := VisualState{Alpha: 1, Scale: 1}
	p := plain{Initial: identity, Revealed: identity, Exited: identity}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*gc = GroupConfig(p)
	return nil
}

// DefaultConfig returns the configuration of the bundled portfolio page:
// scrubbed "scanner" sections, a hero with a one-time entrance, an accordion
// with a 500ms height transition, and a scroll-linked timeline point.
func DefaultConfig() *Config {
	return &Config{
		Groups: []GroupConfig{
			{
				Name:     "hero",
				Class:    "hero",
				Members:  "hero-content",
				// Already active at scroll 0, whatever the header padding.
				Start:    "top bottom",
				End:      "bottom 20%",
				Mode:     "discrete",
				Actions:  "directional",
				Initial:  VisualState{Alpha: 0, OffsetY: 40, Scale: 1},
				Revealed: VisualState{Alpha: 1, Scale: 1},
				Exited:   VisualState{Alpha: 0, OffsetY: -40, Scale: 0.96},
				Phases:   Phases{In: 1},
				Duration: 600 * time.Millisecond,
				Ease:     "power2.out",
				Stagger:  80 * time.Millisecond,
				Entrance: &EntranceConfig{
					From:     VisualState{Alpha: 0, OffsetY: 40, Scale: 0.96},
					Duration: 1200 * time.Millisecond,
					Ease:     "power3.out",
					Stagger:  150 * time.Millisecond,
				},
			},
			{
				Name:     "section",
				Class:    "animated-section",
				Members:  "content-container",
				Start:    "top 85%",
				End:      "bottom 15%",
				Mode:     "scrub",
				Scrub:    1,
				Initial:  VisualState{Alpha: 0, OffsetY: 75, Scale: 1},
				Revealed: VisualState{Alpha: 1, Scale: 1},
				Exited:   VisualState{Alpha: 0, OffsetY: -75, Scale: 1},
				Phases:   Phases{In: 1, Hold: 2, Out: 1},
				EaseIn:   "power2.out",
				EaseOut:  "power2.in",
			},
		},
		Accordion: AccordionConfig{
			ItemClass:    "accordion-item",
			HeaderClass:  "accordion-header",
			ContentClass: "accordion-content",
			ActiveClass:  "active",
			Duration:     500 * time.Millisecond,
			Ease:         "power1.inOut",
		},
		Timeline: TimelineConfig{
			TrackClass:  "timeline",
			ItemClass:   "timeline-item",
			MarkerClass: "timeline-point",
			Start:       "top center",
			End:         "bottom center",
		},
		Recalc: RecalcConfig{
			ResizeDebounce: 250 * time.Millisecond,
		},
		Breakpoints: []Breakpoint{
			{MinWidth: 0, Padding: 56},
			{MinWidth: 768, Padding: 72},
		},
		ReadyTimeout: 3 * time.Second,
		Logging: LoggingConfig{
			Level: "normal",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("dump config: %w", err)
	}
	return data, nil
}

// Validate checks every boundary, mode, preset and ease name. All problems
// are reported together.
func (c *Config) Validate() error {
	var errs error
	for i := range c.Groups {
		if _, err := c.Groups[i].compile(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("group %d (%s): %w", i, c.Groups[i].Name, err))
		}
	}
	if _, err := ParseEase(c.Accordion.Ease); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("accordion: %w", err))
	}
	if c.Accordion.Duration < 0 {
		errs = multierr.Append(errs, fmt.Errorf("accordion: negative duration"))
	}
	if c.Timeline.TrackClass != "" {
		if _, err := ParseBoundary(c.Timeline.Start); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("timeline start: %w", err))
		}
		if _, err := ParseBoundary(c.Timeline.End); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("timeline end: %w", err))
		}
	}
	if err := c.Logging.validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, errs)
	}
	return nil
}

// compiledGroup is a validated GroupConfig.
type compiledGroup struct {
	start, end BoundarySpec
	mode       Mode
	actions    ActionTable
	profile    Profile
}

func (gc *GroupConfig) compile() (compiledGroup, error) {
	var (
		out  compiledGroup
		errs error
		err  error
	)
	if gc.Class == "" {
		errs = multierr.Append(errs, errors.New("empty class"))
	}
	if out.start, err = ParseBoundary(gc.Start); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("start: %w", err))
	}
	if out.end, err = ParseBoundary(gc.End); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("end: %w", err))
	}
	switch gc.Mode {
	case "", "scrub":
		out.mode = ModeScrub
	case "discrete":
		out.mode = ModeDiscrete
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown mode %q", gc.Mode))
	}
	if out.actions, err = ActionPreset(gc.Actions); err != nil {
		errs = multierr.Append(errs, err)
	}
	if gc.Phases.In < 0 || gc.Phases.Hold < 0 || gc.Phases.Out < 0 {
		errs = multierr.Append(errs, errors.New("negative phase width"))
	}
	eases := make(map[string]bool)
	for _, name := range []string{gc.EaseIn, gc.EaseOut, gc.Ease} {
		if _, err := ParseEase(name); err != nil && !eases[name] {
			eases[name] = true
			errs = multierr.Append(errs, err)
		}
	}
	if gc.Entrance != nil {
		if _, err := ParseEase(gc.Entrance.Ease); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entrance: %w", err))
		}
	}
	if errs != nil {
		return out, errs
	}

	phases := gc.Phases
	if phases.In+phases.Hold+phases.Out == 0 {
		phases.In = 1
	}
	out.profile = Profile{
		Initial:  gc.Initial,
		Revealed: gc.Revealed,
		Exited:   gc.Exited,
		Phases:   phases,
		EaseIn:   mustEase(gc.EaseIn),
		EaseOut:  mustEase(gc.EaseOut),
		Duration: float32(gc.Duration.Seconds()),
		Ease:     mustEase(gc.Ease),
		Stagger:  float32(gc.Stagger.Seconds()),
	}
	return out, nil
}

// paddingFor returns the breakpoint padding for a viewport width and the
// index of the breakpoint that applies (-1 if none).
func (c *Config) paddingFor(width float64) (float64, int) {
	best, idx := 0.0, -1
	bestMin := -1.0
	for i, bp := range c.Breakpoints {
		if width >= bp.MinWidth && bp.MinWidth > bestMin {
			best, idx, bestMin = bp.Padding, i, bp.MinWidth
		}
	}
	return best, idx
}
