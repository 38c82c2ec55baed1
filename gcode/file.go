package gcode

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/polyshaper/foamcut"
)

// Filename returns the full path of the next G-code file to write in
// dir. A three-digit sequence number is appended to basename so that
// existing files are never overwritten: base-000.gcode, base-001.gcode
// and so on.
func Filename(basename, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", foamcut.IOFailure(dir, err)
	}

	re, err := regexp.Compile("^" + regexp.QuoteMeta(basename) + `-(\d{3})\.gcode$`)
	if err != nil {
		return "", err
	}

	sequence := 0
	for _, entry := range entries {
		m := re.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n+1 > sequence {
			sequence = n + 1
		}
	}

	return filepath.Join(dir, fmt.Sprintf("%v-%03d.gcode", basename, sequence)), nil
}

// WriteFile writes the generated program to filename. Failures are
// reported as IO errors carrying the file name.
func WriteFile(program, filename string) error {
	if err := os.WriteFile(filename, []byte(program), 0644); err != nil {
		return foamcut.IOFailure(filename, err)
	}
	return nil
}
