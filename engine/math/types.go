package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Rect is an axis aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
