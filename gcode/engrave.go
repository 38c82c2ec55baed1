// Package gcode renders tool paths as textual machine instructions and
// handles naming and writing of the output files. All numeric fields
// are fixed-point with three fractional digits, which is what the
// machine firmware parses.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut/toolpath"
)

// Engraver generates the engraving program. The rotary tool axis is
// encoded on the machine's linear extrusion channel, calibrated by
// MMPerDegree. Whenever both the positional and the angular delta of a
// move fall below SmallDistance/SmallAngle the translation and the
// rotation are emitted as one combined instruction; otherwise they are
// split, so a move that is large on one axis never drags a tiny move
// on the other.
type Engraver struct {
	MMPerDegree   float64 // degrees of tool rotation per mm of extrusion travel
	SafeZ         float64 // z to hold when not engraving, mm
	SmallDistance float64 // mm
	SmallAngle    float64 // radians
	Feed          float64 // linear feed rate, mm/min
}

// Generate renders the engraving program for the given tool paths.
// Empty paths are skipped; if nothing remains the empty string is
// returned, meaning there is nothing to write.
func (g *Engraver) Generate(toolPaths [][]toolpath.Point) string {
	var paths [][]toolpath.Point
	for _, p := range toolPaths {
		if len(p) > 0 {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("M3\n")
	fmt.Fprintf(&sb, "G01 F%5.3f\n", g.Feed)
	fmt.Fprintf(&sb, "G00 Z%5.3f\n", g.SafeZ)
	for _, path := range paths {
		g.generatePath(&sb, path)
	}
	sb.WriteString("G00 X0.000 Y0.000 E0.000\n")
	sb.WriteString("G00 Z0.000\n")
	sb.WriteString("M4\n")

	return sb.String()
}

func (g *Engraver) generatePath(sb *strings.Builder, path []toolpath.Point) {
	first := path[0]
	fmt.Fprintf(sb, "G00 X%5.3f Y%5.3f E%5.3f\n", first.X, first.Y, g.extrusion(first.Angle))
	fmt.Fprintf(sb, "G01 Z%5.3f\n", first.Z)

	prev := first
	for _, point := range path[1:] {
		if g.nearby(prev, point) {
			fmt.Fprintf(sb, "G01 X%5.3f Y%5.3f Z%5.3f E%5.3f\n", point.X, point.Y, point.Z, g.extrusion(point.Angle))
		} else {
			fmt.Fprintf(sb, "G01 X%5.3f Y%5.3f Z%5.3f\n", point.X, point.Y, point.Z)
			fmt.Fprintf(sb, "G01 E%5.3f\n", g.extrusion(point.Angle))
		}
		prev = point
	}

	fmt.Fprintf(sb, "G01 Z%5.3f\n", g.SafeZ)
}

// extrusion converts a tool angle in radians to millimeters of travel
// on the extrusion channel.
func (g *Engraver) extrusion(angle float64) float64 {
	return mgl64.RadToDeg(angle) / g.MMPerDegree
}

// nearby reports whether both the linear and the angular distance
// between two tool points are below the combined-move thresholds.
func (g *Engraver) nearby(p1, p2 toolpath.Point) bool {
	linear := mgl64.Vec3{p2.X - p1.X, p2.Y - p1.Y, p2.Z - p1.Z}.Len()
	angular := math.Abs(p2.Angle - p1.Angle)
	return linear < g.SmallDistance && angular < g.SmallAngle
}
