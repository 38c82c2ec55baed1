package gcode

import (
	"strings"
	"testing"

	"github.com/polyshaper/foamcut/geom"
)

func TestCutterGenerate(t *testing.T) {
	g := &Cutter{Speed: 100, Temperature: 25}
	path := geom.Path{{1, 1}, {4, 1}, {4, 4}, {1, 4}, {1, 1}}
	got := g.Generate(path)

	want := "M3\n" +
		"G92 X0 Y0 Z0 \n" +
		"M106 S63\n" +
		"G4 P10000 ; Dwell for 10 second \n" +
		"G01 F100.000\n" +
		"G01 X1.000 Y1.000\n" +
		"G01 X4.000 Y1.000\n" +
		"G01 X4.000 Y4.000\n" +
		"G01 X1.000 Y4.000\n" +
		"G01 X1.000 Y1.000\n" +
		"G01 X0.000 Y0.000\n" +
		"M107\n" +
		"M4\n"
	if got != want {
		t.Errorf("program mismatch:\ngot:\n%v\nwant:\n%v", got, want)
	}
}

func TestCutterProgramShape(t *testing.T) {
	g := &Cutter{Speed: 100, Temperature: 25}
	path := geom.Path{{0, 0}, {1, 0}, {3, 0}, {4, 0}, {4, 1}, {3, 1}, {3, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	got := g.Generate(path)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if lines[0] != "M3" {
		t.Errorf("first line = %q, want M3", lines[0])
	}
	if lines[len(lines)-2] != "M107" || lines[len(lines)-1] != "M4" {
		t.Errorf("last lines = %q, %q, want M107, M4", lines[len(lines)-2], lines[len(lines)-1])
	}

	moves := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "G01 X") {
			moves++
		}
	}
	// One move per path point plus the final return to origin.
	if want := len(path) + 1; moves != want {
		t.Errorf("G01 move count = %v, want %v", moves, want)
	}
	if lines[len(lines)-3] != "G01 X0.000 Y0.000" {
		t.Errorf("return move = %q, want G01 X0.000 Y0.000", lines[len(lines)-3])
	}
}

func TestCutterTemperatureDuty(t *testing.T) {
	tests := []struct {
		temperature int
		want        string
	}{
		{temperature: 0, want: "M106 S0\n"},
		{temperature: 25, want: "M106 S63\n"},
		{temperature: 50, want: "M106 S127\n"},
		{temperature: 100, want: "M106 S255\n"},
	}

	for _, tt := range tests {
		g := &Cutter{Speed: 100, Temperature: tt.temperature}
		got := g.Generate(geom.Path{{0, 0}})
		if !strings.Contains(got, tt.want) {
			t.Errorf("temperature %v%%: program does not contain %q", tt.temperature, tt.want)
		}
	}
}

func TestCutterEmptyPath(t *testing.T) {
	g := &Cutter{Speed: 100, Temperature: 25}
	if got := g.Generate(nil); got != "" {
		t.Errorf("expected empty output for empty path, got %q", got)
	}
}
