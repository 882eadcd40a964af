// Package httpapi exposes the optimizer over a plain net/http ServeMux
// (the teacher never pulls in a router library, so neither does this),
// translating JSON requests into mediator commands/queries and domain
// errors into the appropriate status code (§6).
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/commands"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/queries"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
	"github.com/andrescamacho/gunsmith-go/internal/domain/shared"
)

// Handlers wires the mediator into a set of net/http.HandlerFuncs.
type Handlers struct {
	m mediator.Mediator
}

func NewHandlers(m mediator.Mediator) *Handlers {
	return &Handlers{m: m}
}

// ListWeapons handles GET /api/info?lang=<code>&game_mode=<regular|pve>.
func (h *Handlers) ListWeapons(w http.ResponseWriter, r *http.Request) {
	lang := catalog.NormalizeLanguage(r.URL.Query().Get("lang"))
	gameMode := catalog.NormalizeGameMode(r.URL.Query().Get("game_mode"))

	resp, err := h.m.Send(r.Context(), &queries.ListWeaponsQuery{Lang: lang, GameMode: gameMode})
	if err != nil {
		writeError(w, err)
		return
	}
	result := resp.(*queries.ListWeaponsResponse)

	dtos := make([]weaponSummaryDTO, 0, len(result.Weapons))
	for _, ws := range result.Weapons {
		dtos = append(dtos, weaponSummaryDTO{ID: ws.ID, Name: ws.Name, Image: ws.Image, Category: ws.Category, Caliber: ws.Caliber})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListMods handles GET /api/info/{weapon_id}/mods.
func (h *Handlers) ListMods(w http.ResponseWriter, r *http.Request, weaponID string) {
	lang := catalog.NormalizeLanguage(r.URL.Query().Get("lang"))
	gameMode := catalog.NormalizeGameMode(r.URL.Query().Get("game_mode"))

	resp, err := h.m.Send(r.Context(), &queries.ListModsQuery{Lang: lang, GameMode: gameMode, WeaponID: weaponID})
	if err != nil {
		writeError(w, err)
		return
	}
	result := resp.(*queries.ListModsResponse)

	dtos := make([]modSummaryDTO, 0, len(result.Mods))
	for _, ms := range result.Mods {
		dtos = append(dtos, modSummaryDTO{ID: ms.ID, Name: ms.Name, Category: ms.Category, Icon: ms.Icon})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Optimize handles POST /api/optimize.
func (h *Handlers) Optimize(w http.ResponseWriter, r *http.Request) {
	var req constraintsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &shared.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}
	if req.WeaponID == "" {
		writeError(w, &shared.ValidationError{Field: "weapon_id", Message: "required"})
		return
	}
	req.Lang = catalog.NormalizeLanguage(req.Lang)
	req.GameMode = catalog.NormalizeGameMode(req.GameMode)
	c := req.toConstraints()

	resp, err := h.m.Send(r.Context(), &commands.OptimizeWeaponCommand{Lang: req.Lang, GameMode: req.GameMode, Constraints: c})
	if err != nil {
		writeError(w, err)
		return
	}
	result := resp.(*commands.OptimizeWeaponResponse).Result

	writeJSON(w, http.StatusOK, toOptimizeResponseDTO(c, result))
}

// Explore handles POST /api/explore.
func (h *Handlers) Explore(w http.ResponseWriter, r *http.Request) {
	var req exploreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &shared.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}
	if req.WeaponID == "" {
		writeError(w, &shared.ValidationError{Field: "weapon_id", Message: "required"})
		return
	}
	req.Lang = catalog.NormalizeLanguage(req.Lang)
	req.GameMode = catalog.NormalizeGameMode(req.GameMode)
	c := req.toConstraints()

	steps := req.Steps
	if steps <= 0 {
		steps = 10
	}

	resp, err := h.m.Send(r.Context(), &commands.ExploreParetoCommand{
		Lang: req.Lang, GameMode: req.GameMode, Constraints: c,
		Ignore: optimize.Axis(req.Ignore), Steps: steps,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	frontier := resp.(*commands.ExploreParetoResponse).Frontier

	dtos := make([]frontierPointDTO, 0, len(frontier))
	for _, p := range frontier {
		dtos = append(dtos, toFrontierPointDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponseDTO struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var notFound *shared.NotFoundError
	var validation *shared.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponseDTO{Error: err.Error()})
}
