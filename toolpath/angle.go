package toolpath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleTracker produces a turn-aware tool orientation angle for a
// sequence of motion directions. Raw angles live in [0, pi); the
// tracker keeps a winding count so that the returned angle grows or
// shrinks continuously instead of wrapping, which would make the
// physical tool spin the long way round.
type AngleTracker struct {
	// Given currentTurn, the next returned angle lies in
	// [currentTurn*pi, (currentTurn+1)*pi].
	currentTurn int
	prevAngle   float64
	prevDir     mgl64.Vec2
	started     bool
}

// normalizeAngle maps an angle into [0, pi).
func normalizeAngle(angle float64) float64 {
	normalized := math.Mod(angle, math.Pi)
	if normalized < 0 {
		normalized += math.Pi
	}
	return normalized
}

// directionAngle returns the tool angle for a movement direction. The
// cutting edge sits perpendicular to the travel direction, hence the
// pi/2 offset.
func directionAngle(direction mgl64.Vec2) float64 {
	return normalizeAngle(math.Atan2(direction.Y(), direction.X()) + math.Pi/2)
}

// Next returns the tool angle for the next movement direction,
// adjusted by the current winding count so that consecutive angles
// stay continuous.
func (t *AngleTracker) Next(direction mgl64.Vec2) float64 {
	var angle float64
	if !t.started {
		angle = directionAngle(direction)
		t.started = true
	} else {
		angle = t.nextAngle(direction)
	}

	t.prevAngle = angle
	t.prevDir = direction

	return angle + math.Pi*float64(t.currentTurn)
}

// nextAngle computes the raw angle for direction and updates the
// winding count based on the rotation sense, given by the z component
// of the cross product of the previous and current directions.
func (t *AngleTracker) nextAngle(direction mgl64.Vec2) float64 {
	angle := directionAngle(direction)
	cross := t.prevDir.X()*direction.Y() - t.prevDir.Y()*direction.X()
	switch {
	case cross > 0:
		// Counter-clockwise: the angle must grow. A drop means the
		// raw angle wrapped past pi.
		if angle < t.prevAngle {
			t.currentTurn++
		}
	case cross < 0:
		// Clockwise: the angle must shrink.
		if angle > t.prevAngle {
			t.currentTurn--
		}
	default:
		// Directions are colinear; keep the previous angle to avoid a
		// spurious jump to the opposite residue.
		angle = t.prevAngle
	}
	return angle
}
