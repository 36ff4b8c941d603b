package solver

import (
	"context"
	"fmt"
	"math"
)

// DiagnoseInfeasible computes an irreducible inconsistent set of constraints
// for a model the backend has reported infeasible, using a deletion filter:
// each candidate constraint is tentatively relaxed, and if the model stays
// infeasible without it the constraint is permanently dropped. Whatever
// survives is a minimal set whose simultaneous satisfaction is impossible.
//
// Candidates are the constraint rows plus every finite variable bound that
// actually constrains (positive lower bounds, finite upper bounds). Rows are
// identified by their name, bounds as lower_bound_<var> / upper_bound_<var>;
// translating those to business identities is the caller's concern.
//
// The filter re-solves the model once per candidate, which is acceptable for
// the model sizes this service handles. Any backend failure aborts the
// diagnosis; callers treat that as "could not diagnose", not as an error of
// the overall request.
func DiagnoseInfeasible(ctx context.Context, s Solver, m *Model) ([]string, error) {
	work := m.clone()

	type candidate struct {
		name  string
		relax func(*Model)
		undo  func(*Model)
	}

	var candidates []candidate
	for i := range work.Rows {
		i := i
		name := work.Rows[i].Name
		savedRHS := work.Rows[i].RHS
		candidates = append(candidates, candidate{
			name:  name,
			relax: func(mm *Model) { mm.Rows[i].RHS = math.Inf(1) },
			undo:  func(mm *Model) { mm.Rows[i].RHS = savedRHS },
		})
	}
	for j := range work.Vars {
		j := j
		v := work.Vars[j]
		if v.Lower > 0 {
			savedLower := v.Lower
			candidates = append(candidates, candidate{
				name:  fmt.Sprintf("lower_bound_%s", v.Name),
				relax: func(mm *Model) { mm.Vars[j].Lower = 0 },
				undo:  func(mm *Model) { mm.Vars[j].Lower = savedLower },
			})
		}
		if !math.IsInf(v.Upper, 1) {
			savedUpper := v.Upper
			candidates = append(candidates, candidate{
				name:  fmt.Sprintf("upper_bound_%s", v.Name),
				relax: func(mm *Model) { mm.Vars[j].Upper = math.Inf(1) },
				undo:  func(mm *Model) { mm.Vars[j].Upper = savedUpper },
			})
		}
	}

	kept := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		kept[c.name] = true
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.relax(work)
		out, err := s.Solve(ctx, work)
		if err != nil {
			return nil, fmt.Errorf("diagnosis solve for %s: %w", c.name, err)
		}
		if out.Status == StatusInfeasible {
			// Still infeasible without this constraint, so it is not part of
			// the inconsistency. Leave it relaxed.
			kept[c.name] = false
			continue
		}
		c.undo(work)
	}

	iis := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if kept[c.name] {
			iis = append(iis, c.name)
		}
	}
	return iis, nil
}
