// Package union merges a set of closed contours into one closed path
// by repeatedly splicing the globally nearest remaining contour into
// the working path through a travel-and-return connector.
package union

import (
	"github.com/polyshaper/foamcut"
	"github.com/polyshaper/foamcut/geom"
)

// Join unites the input contours into a single closed path containing
// every input point. Every contour must be closed within closeDistance
// and must have at least one point; a single-point contour is accepted
// and splices as a travel-and-return spike. The result for a fixed
// input order is fully deterministic: distance ties keep the earliest
// pool, working-path and candidate indices, in that order. An empty
// input yields an empty path.
func Join(contours []geom.Path, closeDistance float64) (geom.Path, error) {
	for _, contour := range contours {
		if len(contour) == 0 {
			return nil, foamcut.InvalidPath("contour has no points")
		}
		if err := geom.VerifyClosed(contour, closeDistance); err != nil {
			return nil, err
		}
	}

	if len(contours) == 0 {
		return geom.Path{}, nil
	}

	working := append(geom.Path{}, contours[0]...)
	pending := make([]geom.Path, len(contours)-1)
	copy(pending, contours[1:])

	for len(pending) > 0 {
		poolIdx, workingIdx, candidateIdx := nearestPending(working, pending)
		candidate := pending[poolIdx]
		pending = append(pending[:poolIdx], pending[poolIdx+1:]...)
		working = splice(working, workingIdx, geom.Rotate(candidate, candidateIdx))
	}

	return working, nil
}

// nearestPending finds the pending contour with the globally minimal
// point-pair distance to the working path. It returns the pool index
// of the winner and the indices of the nearest points in the working
// path and the winner.
func nearestPending(working geom.Path, pending []geom.Path) (poolIdx, workingIdx, candidateIdx int) {
	best, idx1, idx2 := pathsDistance(working, pending[0])
	for i := 1; i < len(pending); i++ {
		if d, i1, i2 := pathsDistance(working, pending[i]); d < best {
			best, idx1, idx2 = d, i1, i2
			poolIdx = i
		}
	}
	return poolIdx, idx1, idx2
}

// pathsDistance returns the minimal squared distance between any point
// of path1 and any point of path2, with the indices of the nearest
// pair. Full scan; ties keep the earliest indices.
func pathsDistance(path1, path2 geom.Path) (float64, int, int) {
	index1 := 0
	best, index2 := geom.NearestPoint(path1[0], path2)
	for idx := 1; idx < len(path1); idx++ {
		if d, i2 := geom.NearestPoint(path1[idx], path2); d < best {
			best = d
			index1 = idx
			index2 = i2
		}
	}
	return best, index1, index2
}

// splice inserts the rotated candidate immediately after working[idx].
// The junction point ends up duplicated on both sides, forming the
// travel-and-return connector between the two regions.
func splice(working geom.Path, idx int, rotated geom.Path) geom.Path {
	joined := make(geom.Path, 0, len(working)+len(rotated)+1)
	joined = append(joined, working[:idx+1]...)
	joined = append(joined, rotated...)
	joined = append(joined, working[idx:]...)
	return joined
}
