//go:build !highs

package solver

import "errors"

// NewHighsSolver reports that the binary was built without HiGHS support; the
// real backend lives in highs.go behind the "highs" build tag.
func NewHighsSolver(float64) (Solver, error) {
	return nil, errors.New("highs backend unavailable: rebuild with -tags highs")
}
