package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leRow(name string, rhs float64, coefs ...Coef) Row {
	return Row{Name: name, RHS: rhs, Coefs: coefs}
}

func TestSimplex_MaximizeSingleConstraint(t *testing.T) {
	// max 3x + 5y s.t. x + 2y <= 100, x,y >= 0. Optimum at x=100.
	m := &Model{
		Maximize: true,
		Vars: []Variable{
			{Name: "x", Cost: 3, Lower: 0, Upper: Inf()},
			{Name: "y", Cost: 5, Lower: 0, Upper: Inf()},
		},
		Rows: []Row{leRow("cap", 100, Coef{Col: 0, Val: 1}, Coef{Col: 1, Val: 2})},
	}

	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, out.Status)
	assert.InDelta(t, 300, out.Objective, 1e-9)
	assert.InDelta(t, 100, out.Values[0], 1e-9)
	assert.InDelta(t, 0, out.Values[1], 1e-9)
	assert.InDelta(t, 100, out.RowActivity[0], 1e-9)
}

func TestSimplex_MinimizeWithShiftedLowerBounds(t *testing.T) {
	// min x + 2y s.t. x >= 20, y >= 5, x + y <= 100.
	m := &Model{
		Vars: []Variable{
			{Name: "x", Cost: 1, Lower: 20, Upper: Inf()},
			{Name: "y", Cost: 2, Lower: 5, Upper: Inf()},
		},
		Rows: []Row{leRow("cap", 100, Coef{Col: 0, Val: 1}, Coef{Col: 1, Val: 1})},
	}

	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, out.Status)
	assert.InDelta(t, 30, out.Objective, 1e-9)
	assert.InDelta(t, 20, out.Values[0], 1e-9)
	assert.InDelta(t, 5, out.Values[1], 1e-9)
}

func TestSimplex_UpperBoundsBecomeRows(t *testing.T) {
	// max x + y s.t. x <= 4, y <= 6, x + y <= 8.
	m := &Model{
		Maximize: true,
		Vars: []Variable{
			{Name: "x", Cost: 1, Lower: 0, Upper: 4},
			{Name: "y", Cost: 1, Lower: 0, Upper: 6},
		},
		Rows: []Row{leRow("cap", 8, Coef{Col: 0, Val: 1}, Coef{Col: 1, Val: 1})},
	}

	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, out.Status)
	assert.InDelta(t, 8, out.Objective, 1e-9)
	assert.LessOrEqual(t, out.Values[0], 4.0+1e-9)
	assert.LessOrEqual(t, out.Values[1], 6.0+1e-9)
}

func TestSimplex_Infeasible(t *testing.T) {
	// x >= 60, y >= 30, x + 2y <= 100 cannot hold together.
	m := &Model{
		Maximize: true,
		Vars: []Variable{
			{Name: "x", Cost: 3, Lower: 60, Upper: Inf()},
			{Name: "y", Cost: 5, Lower: 30, Upper: Inf()},
		},
		Rows: []Row{leRow("cap", 100, Coef{Col: 0, Val: 1}, Coef{Col: 1, Val: 2})},
	}

	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, out.Status)
}

func TestSimplex_Unbounded(t *testing.T) {
	// max z where z never touches the only constraint.
	m := &Model{
		Maximize: true,
		Vars: []Variable{
			{Name: "x", Cost: 3, Lower: 0, Upper: Inf()},
			{Name: "z", Cost: 4, Lower: 0, Upper: Inf()},
		},
		Rows: []Row{leRow("cap", 100, Coef{Col: 0, Val: 1})},
	}

	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, StatusUnbounded, out.Status)
}

func TestSimplex_NoConstraints(t *testing.T) {
	t.Run("maximize positive cost is unbounded", func(t *testing.T) {
		m := &Model{
			Maximize: true,
			Vars:     []Variable{{Name: "x", Cost: 1, Lower: 0, Upper: Inf()}},
		}
		out, err := NewSimplexSolver().Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, StatusUnbounded, out.Status)
	})

	t.Run("minimize positive cost settles at lower bounds", func(t *testing.T) {
		m := &Model{
			Vars: []Variable{{Name: "x", Cost: 2, Lower: 7, Upper: Inf()}},
		}
		out, err := NewSimplexSolver().Solve(context.Background(), m)
		require.NoError(t, err)
		require.Equal(t, StatusOptimal, out.Status)
		assert.InDelta(t, 14, out.Objective, 1e-9)
		assert.InDelta(t, 7, out.Values[0], 1e-9)
	})
}

func TestSimplex_EmptyModel(t *testing.T) {
	out, err := NewSimplexSolver().Solve(context.Background(), &Model{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, out.Status)
	assert.Empty(t, out.Values)
}

func TestSimplex_CrossedBoundsInfeasible(t *testing.T) {
	m := &Model{
		Vars: []Variable{{Name: "x", Cost: 1, Lower: 10, Upper: 5}},
	}
	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, out.Status)
}

func TestSimplex_SkipsRelaxedRows(t *testing.T) {
	// A row relaxed to +inf must not constrain the solution.
	m := &Model{
		Maximize: true,
		Vars:     []Variable{{Name: "x", Cost: 1, Lower: 0, Upper: 10}},
		Rows:     []Row{leRow("relaxed", Inf(), Coef{Col: 0, Val: 1})},
	}
	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, out.Status)
	assert.InDelta(t, 10, out.Values[0], 1e-9)
}

func TestSimplex_TrivialRowReported(t *testing.T) {
	// Rows without coefficients still show up in the activity vector.
	m := &Model{
		Maximize: true,
		Vars:     []Variable{{Name: "x", Cost: 1, Lower: 0, Upper: 3}},
		Rows: []Row{
			leRow("idle", 7),
			leRow("cap", 5, Coef{Col: 0, Val: 1}),
		},
	}
	out, err := NewSimplexSolver().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, out.Status)
	require.Len(t, out.RowActivity, 2)
	assert.InDelta(t, 0, out.RowActivity[0], 1e-9)
	assert.InDelta(t, 3, out.RowActivity[1], 1e-9)
}

func TestSimplex_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimplexSolver().Solve(ctx, &Model{})
	require.Error(t, err)
}
