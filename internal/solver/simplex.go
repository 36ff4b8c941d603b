package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexSolver is the default in-process backend, built on gonum's dense
// simplex method. It is pure Go, deterministic, and needs no external solver
// installation.
type SimplexSolver struct {
	// Tol is passed through to the simplex routine; zero selects gonum's
	// default tolerance.
	Tol float64
}

// NewSimplexSolver returns a simplex backend with default tolerances.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{}
}

// Name identifies the backend in logs and results.
func (s *SimplexSolver) Name() string { return "simplex" }

// Solve converts the bounded less-than form into the standard form
// min c·y, A y = b, y >= 0 and runs the simplex method.
//
// The conversion shifts every variable by its lower bound, adds one slack
// column per finite upper bound and one per constraint row, and folds the
// shift back into the reported objective and solution values.
func (s *SimplexSolver) Solve(ctx context.Context, m *Model) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(m.Vars)
	if n == 0 {
		return &Outcome{Status: StatusOptimal, Values: []float64{}, RowActivity: m.Activity(nil)}, nil
	}

	lower := make([]float64, n)
	var offset float64
	for j, v := range m.Vars {
		if math.IsInf(v.Lower, -1) {
			return nil, fmt.Errorf("simplex: variable %s has no lower bound", v.Name)
		}
		if !math.IsInf(v.Upper, 1) && v.Upper < v.Lower {
			// Crossed bounds make the model trivially infeasible.
			return &Outcome{Status: StatusInfeasible, RawStatus: fmt.Sprintf("bounds of %s cross", v.Name)}, nil
		}
		lower[j] = v.Lower
		offset += v.Cost * v.Lower
	}

	// Column layout: n shifted variables, then one slack per finite upper
	// bound, then one slack per constraint row.
	type stdRow struct {
		coefs []Coef
		rhs   float64
	}
	var rows []stdRow
	cols := n
	for j, v := range m.Vars {
		if math.IsInf(v.Upper, 1) {
			continue
		}
		rows = append(rows, stdRow{
			coefs: []Coef{{Col: j, Val: 1}, {Col: cols, Val: 1}},
			rhs:   v.Upper - v.Lower,
		})
		cols++
	}
	for _, row := range m.Rows {
		if math.IsInf(row.RHS, 1) {
			// Relaxed or unbounded rows never bind; dropping them keeps the
			// standard form finite.
			continue
		}
		rhs := row.RHS
		coefs := make([]Coef, 0, len(row.Coefs)+1)
		for _, c := range row.Coefs {
			rhs -= c.Val * lower[c.Col]
			coefs = append(coefs, c)
		}
		coefs = append(coefs, Coef{Col: cols, Val: 1})
		rows = append(rows, stdRow{coefs: coefs, rhs: rhs})
		cols++
	}

	cvec := make([]float64, cols)
	for j, v := range m.Vars {
		if m.Maximize {
			cvec[j] = -v.Cost
		} else {
			cvec[j] = v.Cost
		}
	}

	if len(rows) == 0 {
		// No constraints at all: the optimum sits at the lower bounds unless
		// some variable improves the objective without limit.
		for j := range m.Vars {
			if cvec[j] < 0 {
				return &Outcome{Status: StatusUnbounded, RawStatus: "no binding constraints"}, nil
			}
		}
		values := append([]float64(nil), lower...)
		return &Outcome{
			Status:      StatusOptimal,
			Objective:   offset,
			Values:      values,
			RowActivity: m.Activity(values),
		}, nil
	}

	a := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	for i, row := range rows {
		sign := 1.0
		if row.rhs < 0 {
			// Equality rows may be negated freely; keeping b nonnegative
			// keeps phase one well behaved.
			sign = -1
		}
		for _, c := range row.coefs {
			a.Set(i, c.Col, sign*c.Val)
		}
		b[i] = sign * row.rhs
	}

	optF, optY, err := lp.Simplex(cvec, a, b, s.Tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return &Outcome{Status: StatusInfeasible, RawStatus: err.Error()}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Outcome{Status: StatusUnbounded, RawStatus: err.Error()}, nil
	default:
		return &Outcome{Status: StatusOther, RawStatus: err.Error()}, nil
	}

	values := make([]float64, n)
	for j := range values {
		values[j] = lower[j] + optY[j]
	}
	objective := optF + offset
	if m.Maximize {
		objective = -optF + offset
	}

	return &Outcome{
		Status:      StatusOptimal,
		Objective:   objective,
		Values:      values,
		RowActivity: m.Activity(values),
	}, nil
}
