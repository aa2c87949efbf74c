package reveal

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default element tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left of the document, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bottom returns the Y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// CenterY returns the Y coordinate of the rectangle's vertical center.
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// Direction is the sign of a scroll delta.
type Direction int8

const (
	DirectionNone     Direction = iota // no movement
	DirectionForward                   // scroll offset increased (content moves up)
	DirectionBackward                  // scroll offset decreased
)

// String returns a short name used in logs.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// directionOf returns the direction implied by moving from prev to cur.
func directionOf(prev, cur float64) Direction {
	switch {
	case cur > prev:
		return DirectionForward
	case cur < prev:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp interpolates linearly between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
