package reveal

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a page script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// pageScript is the top-level JSON structure for a page script.
type pageScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected scrolls, clicks, resizes and screenshots
// across frames for automated runs. Attach to a Document via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON page script and returns a ScriptRunner ready to
// be attached to a Document.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script pageScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse page script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse page script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "scroll", "scrollTo", "resize", "wait":
		default:
			return nil, fmt.Errorf("parse page script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the document. The runner's step
// method is called from Document.Update before injected input is processed.
func (d *Document) SetScriptRunner(runner *ScriptRunner) {
	d.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Document.Update.
func (r *ScriptRunner) step(d *Document) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		d.Screenshot(st.Label)
	case "click":
		d.InjectClick(st.X, st.Y)
	case "scroll":
		frames := max(st.Frames, 1)
		d.InjectSmoothScroll(st.DY, frames)
	case "scrollTo":
		d.InjectScrollTo(st.Y)
	case "resize":
		d.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
