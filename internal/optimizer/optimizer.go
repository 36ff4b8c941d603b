package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/optifab/prodplan/internal/domain/models"
	"github.com/optifab/prodplan/internal/solver"
)

// ErrUnknownOptimizer indicates the requested variant identifier is not
// registered. It is a client error, not a fault.
var ErrUnknownOptimizer = errors.New("unknown optimizer type")

// policyFactory builds the variant's bound policy for one problem instance.
type policyFactory func(*models.Problem) BoundPolicy

// Variant is one fixed solve pipeline: validate → build → solve → interpret →
// audit. Variants differ only in their bound policy and identifier; adding a
// variant means registering a new policy, never changing the pipeline.
type Variant struct {
	id        string
	modelName string
	policy    policyFactory
	backend   solver.Solver
	logger    *zap.Logger
}

// ID returns the variant's registered identifier.
func (v *Variant) ID() string { return v.id }

// Solve runs the full pipeline for one problem. Every failure mode comes back
// as a typed result; nothing escapes as a fault, including panics out of the
// solver backend.
func (v *Variant) Solve(ctx context.Context, p *models.Problem) (result models.OptimizationResult) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("solve panicked", zap.String("variant", v.id), zap.Any("panic", r))
			result = models.OptimizationResult{
				Status:        models.StatusError,
				SolverMessage: fmt.Sprintf("internal solver failure: %v", r),
			}
		}
	}()

	if ok, errs := Validate(p); !ok {
		v.logger.Info("problem rejected by validation",
			zap.String("variant", v.id), zap.Int("violations", len(errs)))
		return models.OptimizationResult{
			Status:           models.StatusValidationError,
			SolverMessage:    "Input validation failed",
			ValidationErrors: errs,
		}
	}

	policy := v.policy(p)
	m := Build(p, policy, v.modelName)

	out, err := v.backend.Solve(ctx, m)
	if err != nil {
		v.logger.Error("solver backend failed", zap.String("variant", v.id), zap.Error(err))
		return models.OptimizationResult{
			Status:        models.StatusError,
			SolverMessage: err.Error(),
		}
	}

	result = Interpret(out, p)

	switch result.Status {
	case models.StatusInfeasible:
		result.InfeasibleConstraints = v.diagnose(ctx, m)
	case models.StatusOptimal:
		feasible, warnings := Audit(&result, p, policy)
		result.FeasibilityWarnings = warnings
		if !feasible {
			// Optimality is trusted but verified: a plan that breaks its own
			// bounds is never silently returned as optimal.
			v.logger.Warn("optimal plan failed the feasibility audit",
				zap.String("variant", v.id), zap.Strings("warnings", warnings))
			result.Status = models.StatusSolutionWarning
			result.SolverMessage = "Solver reported optimal but the plan violates stated bounds"
		}
	}

	v.logger.Info("solve finished",
		zap.String("variant", v.id),
		zap.String("backend", v.backend.Name()),
		zap.String("status", string(result.Status)))
	return result
}

// diagnose attempts the best-effort irreducible inconsistent set. When the
// diagnosis itself fails, the literal "unknown" is reported instead of
// failing the whole response; an empty list means the diagnosis ran and found
// nothing to single out.
func (v *Variant) diagnose(ctx context.Context, m *solver.Model) []string {
	iis, err := solver.DiagnoseInfeasible(ctx, v.backend, m)
	if err != nil {
		v.logger.Warn("infeasibility diagnosis failed", zap.String("variant", v.id), zap.Error(err))
		return []string{"unknown"}
	}
	named := make([]string, len(iis))
	for i, id := range iis {
		named[i] = businessConstraintName(id)
	}
	return named
}

// businessConstraintName maps solver-level constraint identifiers back to the
// vocabulary of the problem: variable bounds become demand constraints,
// capacity rows already carry their resource name.
func businessConstraintName(id string) string {
	if rest, ok := strings.CutPrefix(id, "lower_bound_produce_"); ok {
		return "min_demand_" + rest
	}
	if rest, ok := strings.CutPrefix(id, "upper_bound_produce_"); ok {
		return "max_demand_" + rest
	}
	return id
}

// Registry holds the closed set of optimizer variants, fixed at construction.
type Registry struct {
	variants map[string]*Variant
}

// NewRegistry builds the registry with the two production variants, both
// sharing the given solver backend.
func NewRegistry(backend solver.Solver, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	basic := &Variant{
		id:        "basic",
		modelName: "basic_production_optimization",
		policy:    func(*models.Problem) BoundPolicy { return UnconstrainedBounds{} },
		backend:   backend,
		logger:    logger,
	}
	demand := &Variant{
		id:        "demand-constrained",
		modelName: "demand_constrained_optimization",
		policy:    func(p *models.Problem) BoundPolicy { return NewDemandBounds(p) },
		backend:   backend,
		logger:    logger,
	}

	return &Registry{variants: map[string]*Variant{
		basic.id:  basic,
		demand.id: demand,
	}}
}

// Get resolves a variant by identifier.
func (r *Registry) Get(id string) (*Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, id)
	}
	return v, nil
}

// List returns the registered identifiers in stable order.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.variants))
	for id := range r.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
