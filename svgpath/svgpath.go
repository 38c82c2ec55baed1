// Package svgpath extracts cutting contours from an SVG document. It
// flattens curved segments into polylines, converts coordinates to
// millimeters and flips the y axis (SVG grows downward, the machine
// grows upward). Documents whose elements carry their own transform
// attribute are refused rather than cut wrong.
package svgpath

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut"
	"github.com/polyshaper/foamcut/geom"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Options configures the extraction.
type Options struct {
	// Flatness is the maximum deviation, in millimeters, between a
	// curve and its polyline approximation.
	Flatness float64
	// Scale converts SVG user units to millimeters. Documents drawn
	// in millimeter units use 1.
	Scale float64
}

// Extract parses the SVG document read from r and returns its paths as
// contours in machine coordinates. Content that cannot be converted
// fails the whole run; a partially extracted drawing must never reach
// the cutter.
func Extract(r io.Reader, opts Options) ([]geom.Path, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, foamcut.IOFailure("svg input", err)
	}
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.StrictErrorMode)
	if err != nil {
		return nil, foamcut.UnrecognizedElement("svg document", err)
	}

	f := &flattener{flatness: opts.Flatness}
	for _, svgPath := range icon.SVGPaths {
		m := rasterx.MatrixAdder{Adder: f, M: icon.Transform}
		svgPath.Path.AddTo(&m)
		f.Stop(false)
	}

	// SVG y runs downward from the top of the view box; the machine y
	// runs upward from the origin.
	top := icon.ViewBox.Y + icon.ViewBox.H
	contours := make([]geom.Path, len(f.paths))
	for i, path := range f.paths {
		contour := make(geom.Path, len(path))
		for j, p := range path {
			contour[j] = mgl64.Vec2{
				(p.X() - icon.ViewBox.X) * opts.Scale,
				(top - p.Y()) * opts.Scale,
			}
		}
		contours[i] = contour
	}

	return contours, nil
}

// validateDocument checks that the stream is an SVG document this
// extractor can convert faithfully. The parser applies per-element
// transform attributes only while rasterizing, not to the stored
// geometry, so a document using them would extract as the untransformed
// shape; such documents are refused instead.
func validateDocument(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return foamcut.UnrecognizedElement("svg document", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if se.Name.Local != "svg" {
				return foamcut.UnrecognizedElement(fmt.Sprintf("<%v> document root", se.Name.Local), nil)
			}
			sawRoot = true
		}
		for _, attr := range se.Attr {
			if attr.Name.Local == "transform" {
				return foamcut.UnrecognizedElement(fmt.Sprintf("transform attribute on <%v>", se.Name.Local), nil)
			}
		}
	}
	if !sawRoot {
		return foamcut.UnrecognizedElement("document without an svg root", nil)
	}
	return nil
}
