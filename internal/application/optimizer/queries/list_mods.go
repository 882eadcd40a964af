package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
)

// ModSummary is one row of the reachable-mods listing (§6 "GET
// /api/info/{weapon_id}/mods").
type ModSummary struct {
	ID       string
	Name     string
	Category string
	Icon     string
}

// ListModsQuery lists every mod reachable from a weapon's compatibility
// graph, per the weapon's own slot tree (§4.2).
type ListModsQuery struct {
	Lang, GameMode string
	WeaponID       string
}

// ListModsResponse carries the reachable-mods listing, sorted by name.
type ListModsResponse struct {
	Mods []ModSummary
}

// ListModsHandler answers ListModsQuery from the cached catalog and
// compatibility graph.
type ListModsHandler struct {
	catalog *catalogsvc.Service
}

func NewListModsHandler(catalog *catalogsvc.Service) *ListModsHandler {
	return &ListModsHandler{catalog: catalog}
}

func (h *ListModsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListModsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	cm, err := h.catalog.GetCompatibilityMap(ctx, query.WeaponID, query.Lang, query.GameMode)
	if err != nil {
		return nil, err
	}

	mods := make([]ModSummary, 0, len(cm.ReachableItems))
	for _, item := range cm.ReachableItems {
		mods = append(mods, ModSummary{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Stats.Category,
			Icon:     item.Icon,
		})
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].Name < mods[j].Name })

	return &ListModsResponse{Mods: mods}, nil
}
