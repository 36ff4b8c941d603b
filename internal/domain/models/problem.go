package models

// Objective selects the direction of optimization.
type Objective string

const (
	MaximizeProfit Objective = "maximize_profit"
	MinimizeCost   Objective = "minimize_cost"
)

// Product is something the plant can manufacture.
type Product struct {
	Name          string  `json:"name"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	CostPerUnit   float64 `json:"cost_per_unit"`
}

// Resource is a capacity-limited input shared by the products.
type Resource struct {
	Name              string  `json:"name"`
	AvailableCapacity float64 `json:"available_capacity"`
}

// ResourceUsage records how much of one resource a single unit of a product
// consumes. Absent (product, resource) pairs mean zero usage.
type ResourceUsage struct {
	ProductName  string  `json:"product_name"`
	ResourceName string  `json:"resource_name"`
	UsagePerUnit float64 `json:"usage_per_unit"`
}

// DemandConstraint bounds the production quantity of one product. Either
// bound may be omitted; a nil pointer means the bound is absent.
type DemandConstraint struct {
	ProductName string   `json:"product_name"`
	MinDemand   *float64 `json:"min_demand,omitempty"`
	MaxDemand   *float64 `json:"max_demand,omitempty"`
}

// Problem is one complete production-planning request. It is constructed per
// request, never mutated after validation, and discarded after the solve.
type Problem struct {
	Objective         Objective          `json:"objective"`
	Products          []Product          `json:"products"`
	Resources         []Resource         `json:"resources"`
	ResourceUsage     []ResourceUsage    `json:"resource_usage"`
	DemandConstraints []DemandConstraint `json:"demand_constraints,omitempty"`
}

// UsageMatrix flattens the sparse usage list into product → resource → usage.
func (p *Problem) UsageMatrix() map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64, len(p.Products))
	for _, ru := range p.ResourceUsage {
		row, ok := matrix[ru.ProductName]
		if !ok {
			row = make(map[string]float64)
			matrix[ru.ProductName] = row
		}
		row[ru.ResourceName] = ru.UsagePerUnit
	}
	return matrix
}

// DemandByProduct indexes the demand constraints by product name. Later
// entries for the same product win, mirroring how the request is read.
func (p *Problem) DemandByProduct() map[string]DemandConstraint {
	demands := make(map[string]DemandConstraint, len(p.DemandConstraints))
	for _, dc := range p.DemandConstraints {
		demands[dc.ProductName] = dc
	}
	return demands
}
