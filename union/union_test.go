package union

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polyshaper/foamcut"
	"github.com/polyshaper/foamcut/geom"
)

const closeDistance = 0.5

// unitSquare returns a closed unit square with its lower-left corner
// at (x, y).
func unitSquare(x, y float64) geom.Path {
	return geom.Path{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}
}

func TestJoinTwoSquares(t *testing.T) {
	got, err := Join([]geom.Path{unitSquare(0, 0), unitSquare(3, 0)}, closeDistance)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	// The nearest corner pair is (1,0)/(3,0): the second square is
	// spliced right after (1,0) and the junction point is duplicated
	// on the way back.
	want := geom.Path{
		{0, 0}, {1, 0},
		{3, 0}, {4, 0}, {4, 1}, {3, 1}, {3, 0},
		{1, 0}, {1, 1}, {0, 1}, {0, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("point count = %v, want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %v = %v, want %v", i, got[i], want[i])
		}
	}
	if err := geom.VerifyClosed(got, closeDistance); err != nil {
		t.Errorf("result is not closed: %v", err)
	}
}

func TestJoinManySquares(t *testing.T) {
	// Disjoint unit squares at increasing distance along a line. Each
	// splice adds exactly one junction duplicate, so the result holds
	// every input point plus K-1 extras.
	for _, k := range []int{1, 2, 3, 5, 8} {
		t.Run(fmt.Sprintf("%v squares", k), func(t *testing.T) {
			var contours []geom.Path
			total := 0
			for i := 0; i < k; i++ {
				sq := unitSquare(float64(3*i), 0)
				total += len(sq)
				contours = append(contours, sq)
			}

			got, err := Join(contours, closeDistance)
			if err != nil {
				t.Fatalf("Join: %v", err)
			}
			if want := total + (k - 1); len(got) != want {
				t.Errorf("point count = %v, want %v", len(got), want)
			}
			if err := geom.VerifyClosed(got, closeDistance); err != nil {
				t.Errorf("result is not closed: %v", err)
			}
		})
	}
}

func TestJoinDeterministic(t *testing.T) {
	contours := []geom.Path{unitSquare(0, 0), unitSquare(3, 0), unitSquare(0, 3), unitSquare(3, 3)}
	first, err := Join(contours, closeDistance)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := Join(contours, closeDistance)
		if err != nil {
			t.Fatalf("Join: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %v: point count = %v, want %v", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %v: point %v = %v, want %v", run, i, again[i], first[i])
			}
		}
	}
}

func TestJoinSinglePointContour(t *testing.T) {
	// A single-point contour is trivially closed and splices as a
	// travel-and-return spike.
	got, err := Join([]geom.Path{unitSquare(0, 0), {mgl64.Vec2{0.5, 3}}}, closeDistance)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if want := 5 + 1 + 1; len(got) != want {
		t.Errorf("point count = %v, want %v", len(got), want)
	}
	found := false
	for _, p := range got {
		if p == (mgl64.Vec2{0.5, 3}) {
			found = true
		}
	}
	if !found {
		t.Errorf("spike point missing from %v", got)
	}
}

func TestJoinErrors(t *testing.T) {
	tests := []struct {
		name     string
		contours []geom.Path
	}{
		{
			name:     "open contour",
			contours: []geom.Path{{{0, 0}, {1, 0}, {1, 1}}},
		},
		{
			name:     "open contour after a valid one",
			contours: []geom.Path{unitSquare(0, 0), {{0, 0}, {5, 0}}},
		},
		{
			name:     "empty member contour",
			contours: []geom.Path{unitSquare(0, 0), {}},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			_, err := Join(tt.contours, closeDistance)
			if err == nil {
				t.Fatal("expected an error")
			}
			var fcErr *foamcut.Error
			if !errors.As(err, &fcErr) || fcErr.Code != foamcut.CodeInvalidPath {
				t.Errorf("error = %v, want invalid path (code %v)", err, foamcut.CodeInvalidPath)
			}
		})
	}
}

func TestJoinEmptyInput(t *testing.T) {
	got, err := Join(nil, closeDistance)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected an empty path, got %v", got)
	}
}
