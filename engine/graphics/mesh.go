package graphics

import (
	"fmt"
	"image"
	m "math"

	"golang.org/x/image/vector"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
)

type DrawMode struct {
	stroke bool
	width  float32
}

func FillMode() DrawMode {
	return DrawMode{}
}

func StrokeMode(width float32) DrawMode {
	return DrawMode{stroke: true, width: width}
}

func (d DrawMode) IsStroke() bool {
	return d.stroke
}

// polygon is one closed, convex or simple outline filled with a single color.
type polygon struct {
	points []math.Vec2
	color  Color
}

// MeshBuilder accumulates shapes; Build turns them into an immutable Mesh.
// Shapes are tessellated to polygons as they are added, so a bad shape is
// reported by the call that added it.
type MeshBuilder struct {
	polys []polygon
}

func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

// Line adds a polyline of the given stroke width. Each segment becomes a quad;
// zero length segments add nothing.
func (mb *MeshBuilder) Line(points []math.Vec2, width float32, c Color) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: a line needs at least 2 points, got %d", core.ErrMeshBuild, len(points))
	}
	if !math.IsFinite(width) || width <= 0 {
		return fmt.Errorf("%w: invalid line width %v", core.ErrMeshBuild, width)
	}
	if err := checkFinite(points); err != nil {
		return err
	}
	quads := make([]polygon, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		q, ok := segmentQuad(points[i], points[i+1], width)
		if !ok {
			// zero length segment
			continue
		}
		quads = append(quads, polygon{points: q, color: c})
	}
	mb.polys = append(mb.polys, quads...)
	return nil
}

// Circle approximates the circle with enough segments for the outline to stay
// within tolerance pixels of the true curve.
func (mb *MeshBuilder) Circle(mode DrawMode, center math.Vec2, radius, tolerance float32, c Color) error {
	if !center.IsFinite() || !math.IsFinite(radius) || radius <= 0 {
		return fmt.Errorf("%w: invalid circle at %v radius %v", core.ErrMeshBuild, center, radius)
	}
	if !math.IsFinite(tolerance) || tolerance <= 0 {
		return fmt.Errorf("%w: invalid tolerance %v", core.ErrMeshBuild, tolerance)
	}
	n := circleSegments(radius, tolerance)
	pts := make([]math.Vec2, n)
	for i := 0; i < n; i++ {
		angle := float32(i) * math.K_PI_2 / float32(n)
		pts[i] = center.Add(math.NewVec2FromAngle(angle).Scale(radius))
	}
	return mb.Polygon(mode, pts, c)
}

func (mb *MeshBuilder) Rectangle(mode DrawMode, r math.Rect, c Color) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: invalid rectangle %+v", core.ErrMeshBuild, r)
	}
	pts := []math.Vec2{
		math.NewVec2(r.X, r.Y),
		math.NewVec2(r.X+r.W, r.Y),
		math.NewVec2(r.X+r.W, r.Y+r.H),
		math.NewVec2(r.X, r.Y+r.H),
	}
	return mb.Polygon(mode, pts, c)
}

// Polygon adds a closed shape. In stroke mode its outline is drawn as lines.
func (mb *MeshBuilder) Polygon(mode DrawMode, points []math.Vec2, c Color) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: a polygon needs at least 3 points, got %d", core.ErrMeshBuild, len(points))
	}
	if err := checkFinite(points); err != nil {
		return err
	}
	if mode.stroke {
		closed := make([]math.Vec2, 0, len(points)+1)
		closed = append(closed, points...)
		closed = append(closed, points[0])
		return mb.Line(closed, mode.width, c)
	}
	pts := make([]math.Vec2, len(points))
	copy(pts, points)
	mb.polys = append(mb.polys, polygon{points: pts, color: c})
	return nil
}

// Build freezes the accumulated shapes. The builder can keep being used.
func (mb *MeshBuilder) Build() (*Mesh, error) {
	if len(mb.polys) == 0 {
		return nil, fmt.Errorf("%w: empty mesh", core.ErrMeshBuild)
	}
	polys := make([]polygon, len(mb.polys))
	copy(polys, mb.polys)

	minX, minY := float32(m.Inf(1)), float32(m.Inf(1))
	maxX, maxY := float32(m.Inf(-1)), float32(m.Inf(-1))
	for _, p := range polys {
		for _, v := range p.points {
			minX, minY = min(minX, v.X), min(minY, v.Y)
			maxX, maxY = max(maxX, v.X), max(maxY, v.Y)
		}
	}
	return &Mesh{
		polys: polys,
		bounds: image.Rect(
			int(m.Floor(float64(minX))), int(m.Floor(float64(minY))),
			int(m.Ceil(float64(maxX))), int(m.Ceil(float64(maxY))),
		),
	}, nil
}

// Mesh is a list of filled polygons, rasterized with the x/image vector
// rasterizer each time it is drawn.
type Mesh struct {
	polys  []polygon
	bounds image.Rectangle
}

func NewCircleMesh(mode DrawMode, center math.Vec2, radius, tolerance float32, c Color) (*Mesh, error) {
	mb := NewMeshBuilder()
	if err := mb.Circle(mode, center, radius, tolerance, c); err != nil {
		return nil, err
	}
	return mb.Build()
}

func NewRectangleMesh(mode DrawMode, r math.Rect, c Color) (*Mesh, error) {
	mb := NewMeshBuilder()
	if err := mb.Rectangle(mode, r, c); err != nil {
		return nil, err
	}
	return mb.Build()
}

func (ms *Mesh) Dimensions() image.Rectangle {
	return ms.bounds
}

// Polygons is the number of filled outlines making up the mesh.
func (ms *Mesh) Polygons() int {
	return len(ms.polys)
}

func (ms *Mesh) drawTo(dst *image.RGBA, p DrawParam) error {
	var z vector.Rasterizer
	clip := dst.Bounds()
	for _, poly := range ms.polys {
		pts := make([]math.Vec2, len(poly.points))
		minX, minY := float32(m.Inf(1)), float32(m.Inf(1))
		maxX, maxY := float32(m.Inf(-1)), float32(m.Inf(-1))
		for i, v := range poly.points {
			t := p.transform(v)
			pts[i] = t
			minX, minY = min(minX, t.X), min(minY, t.Y)
			maxX, maxY = max(maxX, t.X), max(maxY, t.Y)
		}
		// rasterize each polygon in its own bounding box so overlapping
		// segments of opposite winding do not cancel out
		box := image.Rect(
			int(m.Floor(float64(minX))), int(m.Floor(float64(minY))),
			int(m.Ceil(float64(maxX))), int(m.Ceil(float64(maxY))),
		)
		visible := box.Intersect(clip)
		if visible.Empty() {
			continue
		}
		// the rasterizer clips rows and clamps columns to its own bounds
		z.Reset(visible.Dx(), visible.Dy())
		ox, oy := float32(visible.Min.X), float32(visible.Min.Y)
		z.MoveTo(pts[0].X-ox, pts[0].Y-oy)
		for _, v := range pts[1:] {
			z.LineTo(v.X-ox, v.Y-oy)
		}
		z.ClosePath()
		src := image.NewUniform(poly.color.Mul(p.Tint))
		z.Draw(dst, visible, src, image.Point{})
	}
	return nil
}

func segmentQuad(a, b math.Vec2, width float32) ([]math.Vec2, bool) {
	dir := b.Sub(a)
	if dir.LengthSquared() == 0 {
		return nil, false
	}
	n := dir.Normalized().Perp().Scale(width / 2)
	return []math.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, true
}

func circleSegments(radius, tolerance float32) int {
	if tolerance >= radius {
		return 3
	}
	// the sagitta of a chord spanning theta is r*(1-cos(theta/2))
	theta := 2 * m.Acos(1-float64(tolerance)/float64(radius))
	n := int(m.Ceil(2 * m.Pi / theta))
	if n < 3 {
		n = 3
	}
	return n
}

func checkFinite(points []math.Vec2) error {
	for i, v := range points {
		if !v.IsFinite() {
			return fmt.Errorf("%w: point %d is not finite (%v)", core.ErrMeshBuild, i, v)
		}
	}
	return nil
}
