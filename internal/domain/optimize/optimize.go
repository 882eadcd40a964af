package optimize

import (
	"context"
	"time"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
	"github.com/andrescamacho/gunsmith-go/internal/domain/shared"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/solver"
)

// SolverTimeout is the wall-clock budget given to the branch-and-bound
// search, per §4.5. The Solver Driver enforces this by deriving a
// context.Context deadline; it never trusts a caller-supplied timeout
// longer than this.
const SolverTimeout = 120 * time.Second

// Optimize runs the full pipeline for one request: feasibility pre-check,
// model construction, solve, and decode. It builds its own compatibility
// map from lookup so callers only need the catalog and a weapon id.
func Optimize(ctx context.Context, lookup catalog.ItemLookup, c Constraints) (Result, error) {
	weapon, ok := lookup[c.WeaponID]
	if !ok || weapon.Kind != catalog.KindWeapon {
		return Result{}, shared.NewNotFoundError("weapon", c.WeaponID)
	}

	cm, err := compatibility.Build(c.WeaponID, lookup)
	if err != nil {
		return Result{}, err
	}

	return optimizeWithMap(ctx, weapon, lookup, cm, c), nil
}

// optimizeWithMap is split out from Optimize so the Pareto Explorer, which
// rebuilds the model repeatedly for the same weapon, can reuse one
// compatibility map across every sample point.
func optimizeWithMap(ctx context.Context, weapon *catalog.Item, lookup catalog.ItemLookup, cm *compatibility.Map, c Constraints) Result {
	if reasons := checkFeasibility(weapon, lookup, cm, c); len(reasons) > 0 {
		return infeasibleResult(reasons)
	}

	m := buildModel(weapon, lookup, cm, c)

	// WithTimeout keeps the caller's deadline when it is earlier.
	solveCtx, cancel := context.WithTimeout(ctx, SolverTimeout)
	defer cancel()

	sol := solver.Solve(solveCtx, m.problem)
	switch sol.Status {
	case solver.StatusInfeasible:
		return infeasibleResult([]string{"No valid configuration found"})
	case solver.StatusFeasible:
		res := m.decode(sol.Assignment, sol.NodesExplored)
		res.Status = "feasible"
		return res
	default:
		res := m.decode(sol.Assignment, sol.NodesExplored)
		res.Status = "optimal"
		return res
	}
}
