package models

// ResultStatus enumerates every terminal state an optimization request can
// reach. The set is closed: whatever the solver reports is mapped onto one of
// these values before the result crosses the service boundary.
type ResultStatus string

const (
	StatusOptimal         ResultStatus = "optimal"
	StatusInfeasible      ResultStatus = "infeasible"
	StatusUnbounded       ResultStatus = "unbounded"
	StatusError           ResultStatus = "error"
	StatusValidationError ResultStatus = "validation_error"
	StatusSolutionWarning ResultStatus = "solution_warning"
)

// ResourceUtilization reports how much of one resource the returned plan
// consumes.
type ResourceUtilization struct {
	Used           float64 `json:"used"`
	Available      float64 `json:"available"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// OptimizationResult is the only entity returned across the system boundary.
// ObjectiveValue, ProductionPlan and ResourceUtilization are present exactly
// when the status is optimal or solution_warning.
type OptimizationResult struct {
	Status                ResultStatus                   `json:"status"`
	ObjectiveValue        *float64                       `json:"objective_value,omitempty"`
	ProductionPlan        map[string]float64             `json:"production_plan,omitempty"`
	ResourceUtilization   map[string]ResourceUtilization `json:"resource_utilization,omitempty"`
	SolverMessage         string                         `json:"solver_message"`
	ValidationErrors      []string                       `json:"validation_errors,omitempty"`
	InfeasibleConstraints []string                       `json:"infeasible_constraints,omitempty"`
	FeasibilityWarnings   []string                       `json:"feasibility_warnings,omitempty"`
}

// HasPlan reports whether the result carries a usable production plan.
func (r *OptimizationResult) HasPlan() bool {
	return r.Status == StatusOptimal || r.Status == StatusSolutionWarning
}
