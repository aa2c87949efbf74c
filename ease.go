package reveal

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

var easeByName = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"inquint":      ease.InQuint,
	"outquint":     ease.OutQuint,
	"inoutquint":   ease.InOutQuint,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// powerFamilies maps the power-N curve names used by page designers to the
// polynomial families gween provides.
var powerFamilies = map[string]string{
	"power1": "quad",
	"power2": "cubic",
	"power3": "quart",
	"power4": "quint",
	"sine":   "sine",
	"expo":   "expo",
	"circ":   "circ",
	"back":   "back",
}

// ParseEase resolves an easing identifier. Accepted forms are gween names
// ("outCubic", "inOutSine", case-insensitive), "linear"/"none", and
// "<family>.<in|out|inOut>" such as "power2.out". An empty name is linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return ease.Linear, nil
	}
	if fn, ok := easeByName[n]; ok {
		return fn, nil
	}
	family, variant, ok := strings.Cut(n, ".")
	if !ok {
		// "power2" alone means power2.out.
		family, variant = n, "out"
	}
	poly, ok := powerFamilies[family]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	if fn, ok := easeByName[variant+poly]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

// mustEase resolves name, falling back to linear for unknown identifiers.
// Config validation reports bad names before this is reached.
func mustEase(name string) ease.TweenFunc {
	fn, err := ParseEase(name)
	if err != nil {
		return ease.Linear
	}
	return fn
}

// sampleEase evaluates fn at normalized time t in [0, 1].
func sampleEase(fn ease.TweenFunc, t float64) float64 {
	if fn == nil {
		return t
	}
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}
