// Package geom provides the 2D primitives shared by the foam-cutter
// pipeline: distance helpers, nearest-point search, closed-path
// rotation and verification, and path simplification/discretization.
// All coordinates are in millimeters.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut"
)

// Path is an ordered sequence of 2D points. A path is closed when its
// first and last points are within the configured close distance.
type Path []mgl64.Vec2

// SquaredDistance returns the squared euclidean distance between two
// points. Cheaper than Distance when only comparisons are needed.
func SquaredDistance(p1, p2 mgl64.Vec2) float64 {
	return p2.Sub(p1).LenSqr()
}

// Distance returns the euclidean distance between two points.
func Distance(p1, p2 mgl64.Vec2) float64 {
	return p2.Sub(p1).Len()
}

// NearestPoint returns the squared distance and index of the path
// point nearest to p. Ties keep the earliest index. The path must not
// be empty.
func NearestPoint(p mgl64.Vec2, path Path) (float64, int) {
	nearestIndex := 0
	nearestDistance := SquaredDistance(p, path[0])
	for idx := 1; idx < len(path); idx++ {
		if d := SquaredDistance(p, path[idx]); d < nearestDistance {
			nearestIndex = idx
			nearestDistance = d
		}
	}
	return nearestDistance, nearestIndex
}

// VerifyClosed checks that the path is closed, i.e. that its first and
// last points are no farther apart than closeDistance. Paths with zero
// or one point are trivially closed. A nearly-closed path is never
// auto-closed: cutting the wrong shape silently is worse than failing.
func VerifyClosed(path Path, closeDistance float64) error {
	if len(path) > 1 && Distance(path[0], path[len(path)-1]) > closeDistance {
		return foamcut.InvalidPath("path is not closed")
	}
	return nil
}

// Rotate returns the closed path restarted at index newStart. The
// input must be closed (first point equal to the last). Rotating to
// the first or last index is a no-op and returns the input unchanged;
// otherwise the result drops the duplicate old start and re-closes at
// the new one.
func Rotate(path Path, newStart int) Path {
	if len(path) == 0 {
		return Path{}
	}
	if newStart == 0 || newStart >= len(path)-1 {
		return path
	}
	rotated := make(Path, 0, len(path))
	rotated = append(rotated, path[newStart:]...)
	rotated = append(rotated, path[1:newStart+1]...)
	return rotated
}

// Simplify collapses runs of near-duplicate points: walking in order,
// a point survives only if the next point is farther than minDistance
// from it. The final emitted point is the last surviving one, so a
// path of near-coincident points collapses to a single point.
func Simplify(path Path, minDistance float64) Path {
	if len(path) == 0 {
		return Path{}
	}
	simplified := make(Path, 0, len(path))
	prev := path[0]
	for _, point := range path[1:] {
		if Distance(point, prev) > minDistance {
			simplified = append(simplified, prev)
			prev = point
		}
	}
	return append(simplified, prev)
}

// Discretize subdivides every segment longer than step into
// ceil(length/step) equal sub-segments. Dividing into equal parts
// rather than fixed-length pieces avoids a short trailing remainder.
// An infinite step or a path with fewer than two points is returned
// unchanged.
func Discretize(path Path, step float64) Path {
	if math.IsInf(step, 1) || len(path) < 2 {
		return path
	}

	prev := path[0]
	discretized := Path{prev}
	for _, point := range path[1:] {
		if dist := Distance(prev, point); dist > step {
			versor := point.Sub(prev).Mul(1 / dist)
			numSteps := int(math.Ceil(dist / step))
			stepLength := dist / float64(numSteps)
			for i := 1; i < numSteps; i++ {
				discretized = append(discretized, prev.Add(versor.Mul(stepLength*float64(i))))
			}
		}
		discretized = append(discretized, point)
		prev = point
	}
	return discretized
}

// Bounds returns the axis-aligned bounding box of the path. The path
// must not be empty.
func Bounds(path Path) (min, max mgl64.Vec2) {
	min, max = path[0], path[0]
	for _, p := range path[1:] {
		min = mgl64.Vec2{math.Min(min.X(), p.X()), math.Min(min.Y(), p.Y())}
		max = mgl64.Vec2{math.Max(max.X(), p.X()), math.Max(max.Y(), p.Y())}
	}
	return min, max
}
