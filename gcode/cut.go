package gcode

import (
	"fmt"
	"strings"

	"github.com/polyshaper/foamcut/geom"
)

// Cutter generates the hot-wire cutting program. Temperature is a
// percentage (0-100) mapped onto the 0-255 duty value of the heater
// channel (integer truncation, matching the machine's firmware
// expectations).
type Cutter struct {
	Speed       float64 // feed speed, mm/min
	Temperature int     // wire temperature, percent
}

// Generate renders the cutting program for the given tool path. An
// empty path yields the empty string, meaning there is nothing to
// write.
func (g *Cutter) Generate(path geom.Path) string {
	if len(path) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("M3\n")
	sb.WriteString("G92 X0 Y0 Z0 \n")
	fmt.Fprintf(&sb, "M106 S%d\n", (g.Temperature*255)/100)
	sb.WriteString("G4 P10000 ; Dwell for 10 second \n")
	fmt.Fprintf(&sb, "G01 F%5.3f\n", g.Speed)
	for _, point := range path {
		fmt.Fprintf(&sb, "G01 X%5.3f Y%5.3f\n", point.X(), point.Y())
	}
	sb.WriteString("G01 X0.000 Y0.000\n")
	sb.WriteString("M107\n")
	sb.WriteString("M4\n")

	return sb.String()
}
