package reveal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInjectSmoothScroll(t *testing.T) {
	doc, _ := sectionPage()
	var seen []float64
	doc.OnScroll(func(y float64) { seen = append(seen, y) })
	doc.InjectSmoothScroll(300, 3)
	if doc.PendingInput() != 3 {
		t.Fatalf("pending = %d, want 3", doc.PendingInput())
	}
	for range 4 {
		doc.Update(1.0 / 60)
	}
	if diff := cmp.Diff([]float64{100, 200, 300}, seen); diff != "" {
		t.Errorf("scrolls (-want +got):\n%s", diff)
	}
}

func TestInjectSmoothScroll_MinimumOneFrame(t *testing.T) {
	doc, _ := sectionPage()
	doc.InjectSmoothScroll(50, 0)
	if doc.PendingInput() != 1 {
		t.Errorf("pending = %d, want 1", doc.PendingInput())
	}
}

func TestInject_ClickAndResize(t *testing.T) {
	doc, a, _ := clickablePage()
	var clicked bool
	a.OnClick = func(ClickContext) { clicked = true }
	var resized bool
	doc.OnResize(func(float64, float64) { resized = true })

	doc.InjectClick(10, 50)
	doc.InjectResize(400, 300)
	doc.Update(0)
	if !clicked || resized {
		t.Errorf("after frame 1: clicked = %v, resized = %v", clicked, resized)
	}
	doc.Update(0)
	if !resized || doc.Viewport().Width != 400 {
		t.Error("resize should be processed on the second frame")
	}
}

func TestLoadScript(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"valid", `{"steps":[{"action":"scroll","dy":100,"frames":2},{"action":"screenshot","label":"x"}]}`, false},
		{"bad json", `{"steps":`, true},
		{"empty", `{"steps":[]}`, true},
		{"unknown action", `{"steps":[{"action":"dance"}]}`, true},
	}
	for _, tt := range tests {
		_, err := LoadScript([]byte(tt.json))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestScriptRunner_Steps(t *testing.T) {
	doc, a, _ := clickablePage()
	var clicks int
	a.OnClick = func(ClickContext) { clicks++ }
	runner, err := LoadScript([]byte(`{"steps":[
		{"action":"click","x":10,"y":50},
		{"action":"scroll","dy":60,"frames":2},
		{"action":"wait","frames":3},
		{"action":"scrollTo","y":10},
		{"action":"screenshot","label":"top"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	doc.SetScriptRunner(runner)

	var shots []string
	for i := 0; i < 30 && !runner.Done(); i++ {
		doc.Update(1.0 / 60)
		shots = append(shots, doc.TakeScreenshots()...)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if doc.ScrollY() != 10 {
		t.Errorf("scroll = %v, want 10", doc.ScrollY())
	}
	if diff := cmp.Diff([]string{"top"}, shots); diff != "" {
		t.Errorf("screenshots (-want +got):\n%s", diff)
	}
}
