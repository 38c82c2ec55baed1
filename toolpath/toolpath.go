// Package toolpath turns unified 2D contours into machine tool paths:
// per-point position plus tool orientation for the engraving machine,
// and an origin-rotated closed path for the cutting machine. Inputs
// and outputs are in millimeters and radians; angles are positive
// counter-clockwise from the x axis.
package toolpath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut/geom"
)

// Point is a motion target plus the tool orientation to hold while
// moving from this point to the following one.
type Point struct {
	X, Y, Z float64
	Angle   float64
}

// pointAndDirection pairs a path point with the unit direction of
// movement toward the next point. Points closer than minDistance are
// considered coincident and get a zero direction.
type pointAndDirection struct {
	point     mgl64.Vec2
	direction mgl64.Vec2
}

func newPointAndDirection(point, next mgl64.Vec2, minDistance float64) pointAndDirection {
	vector := next.Sub(point)
	if l := vector.Len(); l >= minDistance {
		return pointAndDirection{point: point, direction: vector.Mul(1 / l)}
	}
	return pointAndDirection{point: point}
}

// Engrave converts each input path into an engraving tool path at the
// constant height toolZ. Each path is simplified with minDistance,
// subdivided with discretizationStep (pass +Inf to disable) and
// annotated with per-segment tool angles from a fresh AngleTracker.
// Every point carries the angle of its outgoing segment; the final,
// stationary point repeats the previous angle. A path reduced to zero
// or one point yields zero or one output point.
func Engrave(paths []geom.Path, toolZ, minDistance, discretizationStep float64) [][]Point {
	toolPaths := make([][]Point, len(paths))
	for i, path := range paths {
		toolPaths[i] = engravePath(path, toolZ, minDistance, discretizationStep)
	}
	return toolPaths
}

func engravePath(path geom.Path, toolZ, minDistance, discretizationStep float64) []Point {
	simplified := geom.Simplify(path, minDistance)
	discretized := geom.Discretize(simplified, discretizationStep)
	directed := directions(discretized, minDistance)

	if len(directed) == 0 {
		return []Point{}
	}
	if len(directed) == 1 {
		p := directed[0]
		return []Point{{X: p.point.X(), Y: p.point.Y(), Z: toolZ}}
	}

	toolPath := make([]Point, 0, len(directed))
	var tracker AngleTracker
	for _, p := range directed[:len(directed)-1] {
		angle := tracker.Next(p.direction)
		toolPath = append(toolPath, Point{X: p.point.X(), Y: p.point.Y(), Z: toolZ, Angle: angle})
	}

	last := directed[len(directed)-1]
	toolPath = append(toolPath, Point{
		X:     last.point.X(),
		Y:     last.point.Y(),
		Z:     toolZ,
		Angle: toolPath[len(toolPath)-1].Angle,
	})

	return toolPath
}

// directions annotates every path point with the unit direction toward
// its successor. The last point gets a zero direction.
func directions(path geom.Path, minDistance float64) []pointAndDirection {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		return []pointAndDirection{newPointAndDirection(path[0], path[0], minDistance)}
	}

	directed := make([]pointAndDirection, 0, len(path))
	prev := path[0]
	for _, point := range path[1:] {
		directed = append(directed, newPointAndDirection(prev, point, minDistance))
		prev = point
	}
	directed = append(directed, newPointAndDirection(prev, prev, minDistance))

	return directed
}

// Cut prepares a closed path for the cutting machine by rotating it to
// start at the point nearest the machine origin, so the cut begins and
// ends at a travel-safe location. The input must be closed within
// closeDistance. An empty input yields nil, meaning nothing to cut.
func Cut(path geom.Path, closeDistance float64) (geom.Path, error) {
	if err := geom.VerifyClosed(path, closeDistance); err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, nil
	}
	_, start := geom.NearestPoint(mgl64.Vec2{}, path)
	return geom.Rotate(path, start), nil
}
