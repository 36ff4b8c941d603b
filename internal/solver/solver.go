// Package solver defines the narrow boundary between the optimization core
// and the linear-programming backends. The core hands a Model across this
// boundary and consumes an Outcome; everything solver-specific (simplex
// tableaux, cgo handles, HTTP round trips) stays behind the Solver interface.
package solver

import (
	"context"
	"math"
)

// Status is the terminal state a backend reports for one solve.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	// StatusOther covers every remaining backend-specific state (numerical
	// failure, iteration limit, time limit, ...). The raw status text travels
	// alongside so callers can surface it.
	StatusOther Status = "other"
)

// Variable is one decision column: produce this many units of one product.
type Variable struct {
	Name string
	// Cost is the objective coefficient of the variable.
	Cost  float64
	Lower float64
	Upper float64
}

// Coef is a single nonzero coefficient of a constraint row.
type Coef struct {
	Col int     `json:"col"`
	Val float64 `json:"val"`
}

// Row is one capacity constraint: sum(Coefs · x) <= RHS.
type Row struct {
	Name  string
	Coefs []Coef
	RHS   float64
}

// Model is a complete linear program in the bounded less-than form this
// service produces. Rows with no coefficients are legal and trivially
// satisfied; they are kept so row indices stay aligned with the business
// constraints they were built from.
type Model struct {
	Name     string
	Maximize bool
	Vars     []Variable
	Rows     []Row
}

// Outcome is what a backend reports for one solve. Values and RowActivity are
// populated only when Status is StatusOptimal; RowActivity[i] is the realized
// left-hand side of Rows[i], so slack = RHS - activity.
type Outcome struct {
	Status      Status    `json:"status"`
	Objective   float64   `json:"objective"`
	Values      []float64 `json:"values"`
	RowActivity []float64 `json:"row_activity"`
	// RawStatus carries the backend's native status text for diagnostics,
	// mainly when Status is StatusOther.
	RawStatus string `json:"raw_status,omitempty"`
}

// Solver is the consumed interface over an opaque LP backend. Solve is a
// blocking call with no built-in timeout; deadlines are the caller's job.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *Model) (*Outcome, error)
}

// Activity computes the realized left-hand side of every row at x. Backends
// that do not report row activity natively use this to fill the Outcome.
func (m *Model) Activity(x []float64) []float64 {
	activity := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		var sum float64
		for _, c := range row.Coefs {
			sum += c.Val * x[c.Col]
		}
		activity[i] = sum
	}
	return activity
}

// clone returns a deep copy of the model; the diagnosis filter mutates copies
// while the original stays untouched.
func (m *Model) clone() *Model {
	out := &Model{Name: m.Name, Maximize: m.Maximize}
	out.Vars = append([]Variable(nil), m.Vars...)
	out.Rows = make([]Row, len(m.Rows))
	for i, row := range m.Rows {
		out.Rows[i] = Row{Name: row.Name, RHS: row.RHS, Coefs: append([]Coef(nil), row.Coefs...)}
	}
	return out
}

// Inf returns positive infinity, the conventional "no upper bound".
func Inf() float64 { return math.Inf(1) }
