// Package optimizer contains the production-planning core: input validation,
// model construction, result interpretation, post-solve auditing, and the
// variant registry that composes them into solve pipelines.
package optimizer

import (
	"fmt"

	"github.com/optifab/prodplan/internal/domain/models"
)

// Validate checks a problem for structural and semantic defects before any
// model is built. It is a pure function and accumulates every violation
// instead of stopping at the first, so one round trip surfaces all of them.
func Validate(p *models.Problem) (bool, []string) {
	var errs []string

	switch p.Objective {
	case models.MaximizeProfit, models.MinimizeCost:
	default:
		errs = append(errs, fmt.Sprintf("unknown objective %q: must be %q or %q",
			p.Objective, models.MaximizeProfit, models.MinimizeCost))
	}

	products := make(map[string]bool, len(p.Products))
	for _, prod := range p.Products {
		if products[prod.Name] {
			errs = append(errs, fmt.Sprintf("duplicate product name %q", prod.Name))
		}
		products[prod.Name] = true
	}

	resources := make(map[string]bool, len(p.Resources))
	for _, res := range p.Resources {
		if resources[res.Name] {
			errs = append(errs, fmt.Sprintf("duplicate resource name %q", res.Name))
		}
		resources[res.Name] = true
	}

	for _, ru := range p.ResourceUsage {
		if !products[ru.ProductName] {
			errs = append(errs, fmt.Sprintf("resource usage references undeclared product %q", ru.ProductName))
		}
		if !resources[ru.ResourceName] {
			errs = append(errs, fmt.Sprintf("resource usage references undeclared resource %q", ru.ResourceName))
		}
	}

	for _, res := range p.Resources {
		if res.AvailableCapacity < 0 {
			errs = append(errs, fmt.Sprintf("resource %q has negative capacity %g", res.Name, res.AvailableCapacity))
		}
	}

	for _, dc := range p.DemandConstraints {
		if dc.MinDemand != nil && *dc.MinDemand < 0 {
			errs = append(errs, fmt.Sprintf("product %q has negative min_demand %g", dc.ProductName, *dc.MinDemand))
		}
		if dc.MinDemand != nil && dc.MaxDemand != nil && *dc.MinDemand > *dc.MaxDemand {
			errs = append(errs, fmt.Sprintf("product %q has min_demand %g greater than max_demand %g",
				dc.ProductName, *dc.MinDemand, *dc.MaxDemand))
		}
		if !products[dc.ProductName] {
			errs = append(errs, fmt.Sprintf("demand constraint references undeclared product %q", dc.ProductName))
		}
	}

	return len(errs) == 0, errs
}
