package optimizer

import (
	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/solver"
)

// BoundPolicy decides the lower and upper bound of each production variable.
// It is the only behavioral difference between optimizer variants; the set of
// policies is closed and registered explicitly at startup.
type BoundPolicy interface {
	Bounds(product string) (lower, upper float64)
}

// UnconstrainedBounds produces [0, +inf) for every product.
type UnconstrainedBounds struct{}

// Bounds implements BoundPolicy.
func (UnconstrainedBounds) Bounds(string) (float64, float64) {
	return 0, solver.Inf()
}

// DemandBounds applies per-product demand constraints: lower = min_demand if
// present else 0, upper = max_demand if present else +inf.
type DemandBounds struct {
	demands map[string]models.DemandConstraint
}

// NewDemandBounds indexes the problem's demand constraints into a policy.
func NewDemandBounds(p *models.Problem) DemandBounds {
	return DemandBounds{demands: p.DemandByProduct()}
}

// Bounds implements BoundPolicy.
func (d DemandBounds) Bounds(product string) (float64, float64) {
	lower, upper := 0.0, solver.Inf()
	dc, ok := d.demands[product]
	if !ok {
		return lower, upper
	}
	if dc.MinDemand != nil {
		lower = *dc.MinDemand
	}
	if dc.MaxDemand != nil {
		upper = *dc.MaxDemand
	}
	return lower, upper
}
