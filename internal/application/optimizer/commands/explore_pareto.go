package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
)

// ExploreParetoCommand requests a sampled frontier of solutions: one axis
// is driven through a series of targets while another is optimized, and
// the Ignore axis is left out of the objective (§4.6, §6 "POST /api/explore").
type ExploreParetoCommand struct {
	Lang, GameMode string
	Constraints    optimize.Constraints
	Ignore         optimize.Axis
	Steps          int
}

// ExploreParetoResponse carries the sampled frontier.
type ExploreParetoResponse struct {
	Frontier []optimize.FrontierPoint
}

// ExploreParetoHandler runs the Pareto Explorer against the cached catalog.
type ExploreParetoHandler struct {
	catalog *catalogsvc.Service
}

func NewExploreParetoHandler(catalog *catalogsvc.Service) *ExploreParetoHandler {
	return &ExploreParetoHandler{catalog: catalog}
}

func (h *ExploreParetoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ExploreParetoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	lookup, err := h.catalog.GetCatalog(ctx, cmd.Lang, cmd.GameMode)
	if err != nil {
		return nil, err
	}

	frontier, err := optimize.Explore(ctx, lookup, cmd.Constraints, cmd.Ignore, cmd.Steps)
	if err != nil {
		return nil, err
	}

	return &ExploreParetoResponse{Frontier: frontier}, nil
}
