package optimizer

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/solver"
)

func TestBuild_BasicBounds(t *testing.T) {
	m := Build(validProblem(), UnconstrainedBounds{}, "basic_production_optimization")

	if len(m.Vars) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(m.Vars))
	}
	for _, v := range m.Vars {
		if v.Lower != 0 {
			t.Errorf("variable %s lower bound = %g, want 0", v.Name, v.Lower)
		}
		if !math.IsInf(v.Upper, 1) {
			t.Errorf("variable %s upper bound = %g, want +inf", v.Name, v.Upper)
		}
	}
	if !m.Maximize {
		t.Errorf("expected a maximization model")
	}
	if m.Vars[0].Cost != 3 || m.Vars[1].Cost != 5 {
		t.Errorf("objective coefficients = %g, %g, want 3, 5", m.Vars[0].Cost, m.Vars[1].Cost)
	}
}

func TestBuild_MinimizeCostUsesCostCoefficients(t *testing.T) {
	p := validProblem()
	p.Objective = models.MinimizeCost
	m := Build(p, UnconstrainedBounds{}, "basic_production_optimization")

	if m.Maximize {
		t.Errorf("expected a minimization model")
	}
	if m.Vars[0].Cost != 1 || m.Vars[1].Cost != 2 {
		t.Errorf("objective coefficients = %g, %g, want 1, 2", m.Vars[0].Cost, m.Vars[1].Cost)
	}
}

func TestBuild_DemandBounds(t *testing.T) {
	p := validProblem()
	p.DemandConstraints = []models.DemandConstraint{
		{ProductName: "A", MinDemand: fptr(20)},
		{ProductName: "B", MaxDemand: fptr(30)},
	}
	m := Build(p, NewDemandBounds(p), "demand_constrained_optimization")

	if m.Vars[0].Lower != 20 || !math.IsInf(m.Vars[0].Upper, 1) {
		t.Errorf("A bounds = [%g, %g], want [20, +inf)", m.Vars[0].Lower, m.Vars[0].Upper)
	}
	if m.Vars[1].Lower != 0 || m.Vars[1].Upper != 30 {
		t.Errorf("B bounds = [%g, %g], want [0, 30]", m.Vars[1].Lower, m.Vars[1].Upper)
	}
}

func TestBuild_CapacityRows(t *testing.T) {
	m := Build(validProblem(), UnconstrainedBounds{}, "basic_production_optimization")

	want := []solver.Row{
		{
			Name: "resource_R1",
			RHS:  100,
			Coefs: []solver.Coef{
				{Col: 0, Val: 1},
				{Col: 1, Val: 2},
			},
		},
	}
	if diff := cmp.Diff(want, m.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

// A resource no product uses still gets a row, so utilization reporting stays
// uniform across resources.
func TestBuild_UnusedResourceKeepsRow(t *testing.T) {
	p := validProblem()
	p.Resources = append(p.Resources, models.Resource{Name: "idle", AvailableCapacity: 7})
	m := Build(p, UnconstrainedBounds{}, "basic_production_optimization")

	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.Rows))
	}
	idle := m.Rows[1]
	if idle.Name != "resource_idle" || idle.RHS != 7 || len(idle.Coefs) != 0 {
		t.Fatalf("unexpected trivial row %+v", idle)
	}
}
