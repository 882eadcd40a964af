package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/metrics"
	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
)

// OptimizeWeaponCommand requests a single optimal loadout for one weapon
// under a set of constraints (§4, §6 "POST /api/optimize").
type OptimizeWeaponCommand struct {
	Lang, GameMode string
	Constraints    optimize.Constraints
}

// OptimizeWeaponResponse carries the solver's result.
type OptimizeWeaponResponse struct {
	Result optimize.Result
}

// OptimizeWeaponHandler runs the full catalog-fetch -> optimize pipeline.
type OptimizeWeaponHandler struct {
	catalog *catalogsvc.Service
}

func NewOptimizeWeaponHandler(catalog *catalogsvc.Service) *OptimizeWeaponHandler {
	return &OptimizeWeaponHandler{catalog: catalog}
}

func (h *OptimizeWeaponHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*OptimizeWeaponCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	lookup, err := h.catalog.GetCatalog(ctx, cmd.Lang, cmd.GameMode)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := optimize.Optimize(ctx, lookup, cmd.Constraints)
	if err != nil {
		return nil, err
	}
	metrics.RecordSolve(result.Status, time.Since(start).Seconds(), result.NodesExplored)

	return &OptimizeWeaponResponse{Result: result}, nil
}
