package optimizer

import (
	"fmt"
	"math"

	"github.com/optifab/prodplan/internal/domain/models"
)

// auditTolerance is the absolute slack beyond which a bound violation is a
// hard failure rather than numerical noise. It defines the business meaning
// of "respects a bound", independent of the solver's internal feasibility
// tolerance.
const auditTolerance = 1e-6

// nearCapacityPct: utilization within this fraction of capacity draws a
// warning without downgrading the result.
const nearCapacityPct = 0.0001

// Audit re-checks an optimal result against the original problem, independent
// of solver-reported slack: every quantity must lie within its demand bounds
// and every resource's recomputed usage must not exceed capacity. It returns
// whether the plan is feasible plus any warnings; hard violations make the
// caller downgrade the result, soft warnings ride along untouched.
func Audit(result *models.OptimizationResult, p *models.Problem, policy BoundPolicy) (bool, []string) {
	var warnings []string
	feasible := true

	for _, prod := range p.Products {
		qty := result.ProductionPlan[prod.Name]
		lower, upper := policy.Bounds(prod.Name)
		if qty < lower-auditTolerance {
			feasible = false
			warnings = append(warnings, fmt.Sprintf(
				"production of %q (%g) falls below its minimum demand %g", prod.Name, qty, lower))
		}
		if !math.IsInf(upper, 1) && qty > upper+auditTolerance {
			feasible = false
			warnings = append(warnings, fmt.Sprintf(
				"production of %q (%g) exceeds its maximum demand %g", prod.Name, qty, upper))
		}
	}

	usage := p.UsageMatrix()
	for _, res := range p.Resources {
		var used float64
		for _, prod := range p.Products {
			used += usage[prod.Name][res.Name] * result.ProductionPlan[prod.Name]
		}
		switch {
		case used > res.AvailableCapacity+auditTolerance:
			feasible = false
			warnings = append(warnings, fmt.Sprintf(
				"resource %q usage %g exceeds capacity %g", res.Name, used, res.AvailableCapacity))
		case res.AvailableCapacity > 0 && used >= res.AvailableCapacity*(1-nearCapacityPct):
			warnings = append(warnings, fmt.Sprintf(
				"resource %q is within 0.01%% of capacity (%g of %g)", res.Name, used, res.AvailableCapacity))
		}
	}

	return feasible, warnings
}
