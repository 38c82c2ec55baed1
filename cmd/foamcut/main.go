// foamcut converts the closed contours of one or more SVG drawings
// into G-code for a two-axis foam cutting machine.
//
// By default the hot-wire cutting program is generated: all contours
// are joined into a single closed path, rotated to start near the
// machine origin and cut in one pass. With -engrave, a per-contour
// engraving program with rotary tool orientation is generated instead.
//
// Each run writes <basename>-NNN.gcode with the next free sequence
// number, so previous output is never overwritten.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"strings"

	"github.com/polyshaper/foamcut"
	"github.com/polyshaper/foamcut/gcode"
	"github.com/polyshaper/foamcut/geom"
	"github.com/polyshaper/foamcut/svgpath"
	"github.com/polyshaper/foamcut/toolpath"
	"github.com/polyshaper/foamcut/union"
)

var (
	basename = flag.String("f", "foamcut", "Basename of the generated G-code files")
	outDir   = flag.String("out", ".", "Directory where G-code files are written")
	dimX     = flag.Float64("x", 200.0, "Plane X dimension in mm")
	dimY     = flag.Float64("y", 200.0, "Plane Y dimension in mm")
	flatness = flag.Float64("flatness", 1.0, "Max deviation in mm when flattening curves")
	scale    = flag.Float64("scale", 1.0, "Millimeters per SVG user unit")
	closeD   = flag.Float64("close-distance", 0.5, "Max gap in mm for a contour to count as closed")

	speed       = flag.Float64("speed", 100.0, "Cutting speed in mm/min")
	temperature = flag.Int("temperature", 25, "Wire temperature in percent")

	engrave     = flag.Bool("engrave", false, "Generate the engraving program instead of the cutting one")
	toolZ       = flag.Float64("tool-z", 0.0, "Engraving tool height in mm")
	safeZ       = flag.Float64("safe-z", 10.0, "Z height in mm to hold between engraving paths")
	minDistance = flag.Float64("min-distance", 0.01, "Points closer than this in mm are coincident")
	step        = flag.Float64("step", 1.0, "Max segment length in mm when engraving (0 disables)")
	mmPerDegree = flag.Float64("mm-per-degree", 1.0, "Rotary axis calibration, degrees per mm of extrusion travel")
	smallDist   = flag.Float64("small-distance", 0.5, "Below this move length in mm, rotation and translation combine")
	smallAngle  = flag.Float64("small-angle", 0.1, "Below this rotation in radians, rotation and translation combine")
	feed        = flag.Float64("feed", 300.0, "Engraving feed rate in mm/min")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		log.Printf("No input files. Pass one or more SVG drawings to convert.")
		flag.Usage()
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		if !strings.HasSuffix(arg, ".svg") {
			log.Printf("Skipping non-SVG file %q", arg)
			continue
		}

		log.Printf("Processing %q...", arg)
		program, err := convert(arg)
		if err != nil {
			log.Print(err)
			os.Exit(foamcut.ExitCode(err))
		}
		if program == "" {
			log.Printf("%q contains no contours, nothing to write", arg)
			continue
		}

		filename, err := gcode.Filename(*basename, *outDir)
		if err == nil {
			err = gcode.WriteFile(program, filename)
		}
		if err != nil {
			log.Print(err)
			os.Exit(foamcut.ExitCode(err))
		}
		log.Printf("G-code saved to %v", filename)
	}

	log.Println("Done.")
}

func convert(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", foamcut.IOFailure(filename, err)
	}
	defer f.Close()

	contours, err := svgpath.Extract(f, svgpath.Options{Flatness: *flatness, Scale: *scale})
	if err != nil {
		return "", err
	}
	checkWorkingArea(contours)

	if *engrave {
		discretization := *step
		if discretization <= 0 {
			discretization = math.Inf(1)
		}
		toolPaths := toolpath.Engrave(contours, *toolZ, *minDistance, discretization)
		g := &gcode.Engraver{
			MMPerDegree:   *mmPerDegree,
			SafeZ:         *safeZ,
			SmallDistance: *smallDist,
			SmallAngle:    *smallAngle,
			Feed:          *feed,
		}
		return g.Generate(toolPaths), nil
	}

	unified, err := union.Join(contours, *closeD)
	if err != nil {
		return "", err
	}
	toolPath, err := toolpath.Cut(unified, *closeD)
	if err != nil {
		return "", err
	}
	g := &gcode.Cutter{Speed: *speed, Temperature: *temperature}
	return g.Generate(toolPath), nil
}

// checkWorkingArea warns when a contour leaves the configured plane.
// The machine stops at its physical limits, so an oversized drawing
// would cut a clipped shape.
func checkWorkingArea(contours []geom.Path) {
	for i, contour := range contours {
		if len(contour) == 0 {
			continue
		}
		min, max := geom.Bounds(contour)
		if min.X() < 0 || min.Y() < 0 || max.X() > *dimX || max.Y() > *dimY {
			log.Printf("Warning: contour #%v exceeds the %vx%v mm working area: (%.3f,%.3f)-(%.3f,%.3f)",
				i, *dimX, *dimY, min.X(), min.Y(), max.X(), max.Y())
		}
	}
}
