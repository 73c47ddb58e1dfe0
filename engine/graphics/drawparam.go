package graphics

import "github.com/spaghettifunk/anima2d/engine/math"

// DrawParam places a drawable: it is scaled first, then moved to DestPoint,
// and its colors are multiplied by Tint.
type DrawParam struct {
	DestPoint   math.Vec2
	ScaleFactor math.Vec2
	Tint        Color
}

func NewDrawParam() DrawParam {
	return DrawParam{
		ScaleFactor: math.NewVec2(1, 1),
		Tint:        White,
	}
}

func (p DrawParam) Dest(x, y float32) DrawParam {
	p.DestPoint = math.NewVec2(x, y)
	return p
}

func (p DrawParam) Scale(x, y float32) DrawParam {
	p.ScaleFactor = math.NewVec2(x, y)
	return p
}

func (p DrawParam) Color(c Color) DrawParam {
	p.Tint = c
	return p
}

func (p DrawParam) isIdentityScale() bool {
	return p.ScaleFactor.X == 1 && p.ScaleFactor.Y == 1
}

// transform maps a point in drawable space to canvas space.
func (p DrawParam) transform(v math.Vec2) math.Vec2 {
	return math.NewVec2(v.X*p.ScaleFactor.X+p.DestPoint.X, v.Y*p.ScaleFactor.Y+p.DestPoint.Y)
}
