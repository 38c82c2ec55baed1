package svgpath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut/geom"
	"golang.org/x/image/math/fixed"
)

// flattener implements rasterx.Adder, collecting the operations of an
// SVG path as polylines. Bezier segments are subdivided at their
// midpoint until flat within the configured tolerance. A closed
// subpath re-appends its start point so the downstream closure check
// holds on exact coordinates.
type flattener struct {
	flatness float64
	paths    []geom.Path
	current  geom.Path
	start    mgl64.Vec2
}

func fromFixed(p fixed.Point26_6) mgl64.Vec2 {
	return mgl64.Vec2{float64(p.X) / 64, float64(p.Y) / 64}
}

func (f *flattener) Start(a fixed.Point26_6) {
	f.flush()
	f.start = fromFixed(a)
	f.current = geom.Path{f.start}
}

func (f *flattener) Line(b fixed.Point26_6) {
	f.current = append(f.current, fromFixed(b))
}

func (f *flattener) QuadBezier(b, c fixed.Point26_6) {
	// Promote to a cubic with the same shape and reuse the cubic
	// subdivision.
	p0 := f.last()
	p1 := fromFixed(b)
	p2 := fromFixed(c)
	c1 := p0.Add(p1.Sub(p0).Mul(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).Mul(2.0 / 3.0))
	f.cubic(p0, c1, c2, p2)
	f.current = append(f.current, p2)
}

func (f *flattener) CubeBezier(b, c, d fixed.Point26_6) {
	p3 := fromFixed(d)
	f.cubic(f.last(), fromFixed(b), fromFixed(c), p3)
	f.current = append(f.current, p3)
}

func (f *flattener) Stop(closeLoop bool) {
	if closeLoop && len(f.current) > 0 && f.current[len(f.current)-1] != f.start {
		f.current = append(f.current, f.start)
	}
	f.flush()
}

func (f *flattener) last() mgl64.Vec2 {
	return f.current[len(f.current)-1]
}

func (f *flattener) flush() {
	if len(f.current) > 1 {
		f.paths = append(f.paths, f.current)
	}
	f.current = nil
}

// cubic appends the interior points of the flattened curve; the caller
// appends the final endpoint.
func (f *flattener) cubic(p0, p1, p2, p3 mgl64.Vec2) {
	if isFlat(p0, p1, p2, p3, f.flatness) {
		return
	}
	mid := func(a, b mgl64.Vec2) mgl64.Vec2 { return a.Add(b).Mul(0.5) }
	p4 := mid(p0, p1)
	p5 := mid(p1, p2)
	p6 := mid(p2, p3)
	p7 := mid(p4, p5)
	p8 := mid(p5, p6)
	p9 := mid(p7, p8)
	f.cubic(p0, p4, p7, p9)
	f.current = append(f.current, p9)
	f.cubic(p9, p8, p6, p3)
}

// isFlat reports whether the cubic stays within tol of its chord.
func isFlat(p0, p1, p2, p3 mgl64.Vec2, tol float64) bool {
	ax := 3*p1.X() - 2*p0.X() - p3.X()
	ay := 3*p1.Y() - 2*p0.Y() - p3.Y()
	bx := 3*p2.X() - p0.X() - 2*p3.X()
	by := 3*p2.Y() - p0.Y() - 2*p3.Y()

	maxX := math.Max(ax*ax, bx*bx)
	maxY := math.Max(ay*ay, by*by)

	return (maxX+maxY)/16 <= tol*tol
}
