package optimizer

import (
	"fmt"
	"math"

	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/solver"
)

// snapEpsilon suppresses solver noise: any production quantity with magnitude
// below it is reported as exactly zero.
const snapEpsilon = 1e-8

const (
	msgOptimal    = "Optimal solution found"
	msgInfeasible = "The model is infeasible"
	msgUnbounded  = "The model is unbounded: no finite optimum exists"
)

// Interpret maps a solver outcome back onto the domain result. The mapping is
// total over the outcome's status domain: an unrecognized status becomes an
// error result, never a fault.
//
// Variable i of the outcome corresponds to p.Products[i] and row j to
// p.Resources[j], the order Build emitted them in.
func Interpret(out *solver.Outcome, p *models.Problem) models.OptimizationResult {
	switch out.Status {
	case solver.StatusOptimal:
		plan := make(map[string]float64, len(p.Products))
		for i, prod := range p.Products {
			qty := out.Values[i]
			if math.Abs(qty) < snapEpsilon {
				qty = 0
			}
			plan[prod.Name] = qty
		}

		utilization := make(map[string]models.ResourceUtilization, len(p.Resources))
		for j, res := range p.Resources {
			used := out.RowActivity[j]
			pct := 0.0
			if res.AvailableCapacity > 0 {
				pct = used / res.AvailableCapacity * 100
			}
			utilization[res.Name] = models.ResourceUtilization{
				Used:           used,
				Available:      res.AvailableCapacity,
				UtilizationPct: pct,
			}
		}

		objective := out.Objective
		return models.OptimizationResult{
			Status:              models.StatusOptimal,
			ObjectiveValue:      &objective,
			ProductionPlan:      plan,
			ResourceUtilization: utilization,
			SolverMessage:       msgOptimal,
		}

	case solver.StatusInfeasible:
		return models.OptimizationResult{
			Status:        models.StatusInfeasible,
			SolverMessage: msgInfeasible,
		}

	case solver.StatusUnbounded:
		return models.OptimizationResult{
			Status:        models.StatusUnbounded,
			SolverMessage: msgUnbounded,
		}

	default:
		raw := out.RawStatus
		if raw == "" {
			raw = string(out.Status)
		}
		return models.OptimizationResult{
			Status:        models.StatusError,
			SolverMessage: fmt.Sprintf("Optimization status: %s", raw),
		}
	}
}
