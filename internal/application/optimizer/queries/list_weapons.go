package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
)

// WeaponSummary is one row of the weapon listing (§6 "GET /api/info").
type WeaponSummary struct {
	ID       string
	Name     string
	Image    string
	Category string
	Caliber  string
}

// ListWeaponsQuery lists every weapon in the catalog for a language/game mode.
type ListWeaponsQuery struct {
	Lang, GameMode string
}

// ListWeaponsResponse carries the weapon listing, sorted by name.
type ListWeaponsResponse struct {
	Weapons []WeaponSummary
}

// ListWeaponsHandler answers ListWeaponsQuery from the cached catalog.
type ListWeaponsHandler struct {
	catalog *catalogsvc.Service
}

func NewListWeaponsHandler(catalog *catalogsvc.Service) *ListWeaponsHandler {
	return &ListWeaponsHandler{catalog: catalog}
}

func (h *ListWeaponsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListWeaponsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	lookup, err := h.catalog.GetCatalog(ctx, query.Lang, query.GameMode)
	if err != nil {
		return nil, err
	}

	weapons := make([]WeaponSummary, 0, len(lookup))
	for _, item := range lookup {
		if item.Kind != catalog.KindWeapon {
			continue
		}
		weapons = append(weapons, WeaponSummary{
			ID:       item.ID,
			Name:     item.Name,
			Image:    item.Icon,
			Category: item.Stats.Category,
			Caliber:  item.Stats.Caliber,
		})
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].Name < weapons[j].Name })

	return &ListWeaponsResponse{Weapons: weapons}, nil
}
