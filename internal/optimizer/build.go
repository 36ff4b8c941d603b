package optimizer

import (
	"fmt"

	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/solver"
)

// Build translates a validated problem into a solver-ready linear program:
// one decision variable per product (bounds from the policy), a profit or
// cost objective, and one capacity row per resource.
//
// Constraint rows are named resource_<name> and variables produce_<name> so
// results and infeasibility diagnoses can be mapped back to business
// identities without relying on solver-internal ordering. A resource no
// product uses still gets a row; it is trivially satisfied and keeps
// utilization reporting uniform.
func Build(p *models.Problem, policy BoundPolicy, modelName string) *solver.Model {
	m := &solver.Model{
		Name:     modelName,
		Maximize: p.Objective == models.MaximizeProfit,
	}

	index := make(map[string]int, len(p.Products))
	for i, prod := range p.Products {
		cost := prod.ProfitPerUnit
		if p.Objective == models.MinimizeCost {
			cost = prod.CostPerUnit
		}
		lower, upper := policy.Bounds(prod.Name)
		m.Vars = append(m.Vars, solver.Variable{
			Name:  fmt.Sprintf("produce_%s", prod.Name),
			Cost:  cost,
			Lower: lower,
			Upper: upper,
		})
		index[prod.Name] = i
	}

	usage := p.UsageMatrix()
	for _, res := range p.Resources {
		row := solver.Row{
			Name: fmt.Sprintf("resource_%s", res.Name),
			RHS:  res.AvailableCapacity,
		}
		for _, prod := range p.Products {
			if perUnit, ok := usage[prod.Name][res.Name]; ok && perUnit != 0 {
				row.Coefs = append(row.Coefs, solver.Coef{Col: index[prod.Name], Val: perUnit})
			}
		}
		m.Rows = append(m.Rows, row)
	}

	return m
}
