//go:build highs

package solver

import (
	"context"
	"fmt"

	highs "github.com/bartolsthoorn/gohighs/highs"
)

// HighsSolver is an optional backend on the HiGHS solver, linked through cgo.
// It is compiled in with the "highs" build tag and selected with
// SOLVER_BACKEND=highs. Compared with the simplex backend it handles larger
// and numerically harder models.
type HighsSolver struct {
	// TimeLimitSeconds caps one solve; zero means no limit.
	TimeLimitSeconds float64
}

// NewHighsSolver returns the HiGHS-backed solver.
func NewHighsSolver(timeLimitSeconds float64) (Solver, error) {
	return &HighsSolver{TimeLimitSeconds: timeLimitSeconds}, nil
}

// Name identifies the backend in logs and results.
func (s *HighsSolver) Name() string { return "highs" }

// Solve translates the model into the HiGHS column/row form and maps the
// solver's model status onto the outcome statuses.
func (s *HighsSolver) Solve(ctx context.Context, m *Model) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hm := &highs.Model{Maximize: m.Maximize}
	for _, v := range m.Vars {
		hm.ColCosts = append(hm.ColCosts, v.Cost)
		hm.ColLower = append(hm.ColLower, v.Lower)
		hm.ColUpper = append(hm.ColUpper, v.Upper)
	}
	for _, row := range m.Rows {
		coeffs := make([]float64, len(m.Vars))
		for _, c := range row.Coefs {
			coeffs[c.Col] = c.Val
		}
		hm.AddLeRow(coeffs, row.RHS)
	}

	opts := []highs.SolveOption{highs.WithOutput(false)}
	if s.TimeLimitSeconds > 0 {
		opts = append(opts, highs.WithTimeLimit(s.TimeLimitSeconds))
	}

	sol, err := hm.Solve(opts...)
	if err != nil {
		return nil, fmt.Errorf("highs solve: %w", err)
	}

	switch {
	case sol.IsOptimal():
		values := append([]float64(nil), sol.ColValues...)
		out := &Outcome{
			Status:    StatusOptimal,
			Objective: sol.Objective,
			Values:    values,
		}
		if len(sol.RowValues) == len(m.Rows) {
			out.RowActivity = append([]float64(nil), sol.RowValues...)
		} else {
			out.RowActivity = m.Activity(values)
		}
		return out, nil
	case sol.IsInfeasible():
		return &Outcome{Status: StatusInfeasible, RawStatus: fmt.Sprintf("%v", sol.Status)}, nil
	case sol.IsUnbounded():
		return &Outcome{Status: StatusUnbounded, RawStatus: fmt.Sprintf("%v", sol.Status)}, nil
	default:
		return &Outcome{Status: StatusOther, RawStatus: fmt.Sprintf("%v", sol.Status)}, nil
	}
}
