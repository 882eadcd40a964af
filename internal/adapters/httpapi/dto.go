package httpapi

import (
	"github.com/andrescamacho/gunsmith-go/internal/domain/optimize"
	"github.com/andrescamacho/gunsmith-go/internal/domain/pricing"
)

// constraintsRequest is the JSON shape shared by /api/optimize and
// /api/explore for the weapon + constraint portion of the request body
// (§6 OptimizeRequest/ExploreRequest).
type constraintsRequest struct {
	Lang     string `json:"lang"`
	GameMode string `json:"game_mode"`
	WeaponID string `json:"weapon_id"`

	MaxPrice         *int     `json:"max_price"`
	MinErgonomics    *int     `json:"min_ergonomics"`
	MaxRecoilV       *int     `json:"max_recoil_v"`
	MaxRecoilSum     *int     `json:"max_recoil_sum"`
	MinMagCapacity   *int     `json:"min_mag_capacity"`
	MinSightingRange *int     `json:"min_sighting_range"`
	MaxWeight        *float64 `json:"max_weight"`

	IncludeItems      []string   `json:"include_items"`
	ExcludeItems      []string   `json:"exclude_items"`
	IncludeCategories [][]string `json:"include_categories"`
	ExcludeCategories []string   `json:"exclude_categories"`

	ErgoWeight   *float64 `json:"ergo_weight"`
	RecoilWeight *float64 `json:"recoil_weight"`
	PriceWeight  *float64 `json:"price_weight"`

	TraderLevels  map[string]int `json:"trader_levels"`
	FleaAvailable *bool          `json:"flea_available"`
	PlayerLevel   int            `json:"player_level"`
}

// toConstraints converts the wire request into optimize.Constraints,
// applying DefaultConstraints for every field the caller left unset.
func (r constraintsRequest) toConstraints() optimize.Constraints {
	c := optimize.DefaultConstraints(r.WeaponID)

	c.MaxPrice = r.MaxPrice
	c.MinErgonomics = r.MinErgonomics
	c.MaxRecoilV = r.MaxRecoilV
	c.MaxRecoilSum = r.MaxRecoilSum
	c.MinMagCapacity = r.MinMagCapacity
	c.MinSightingRange = r.MinSightingRange
	c.MaxWeight = r.MaxWeight

	c.IncludeItems = r.IncludeItems
	c.ExcludeItems = r.ExcludeItems
	c.IncludeCategories = r.IncludeCategories
	c.ExcludeCategories = r.ExcludeCategories

	if r.ErgoWeight != nil {
		c.ErgoWeight = *r.ErgoWeight
	}
	if r.RecoilWeight != nil {
		c.RecoilWeight = *r.RecoilWeight
	}
	if r.PriceWeight != nil {
		c.PriceWeight = *r.PriceWeight
	}

	if len(r.TraderLevels) > 0 {
		levels := make(pricing.TraderLevels, len(r.TraderLevels))
		for k, v := range r.TraderLevels {
			levels[k] = v
		}
		c.TraderLevels = levels
	}
	if r.FleaAvailable != nil {
		c.FleaAvailable = *r.FleaAvailable
	}
	c.PlayerLevel = r.PlayerLevel

	return c
}

// exploreRequest adds the Pareto Explorer's own parameters on top of the
// shared constraint body.
type exploreRequest struct {
	constraintsRequest
	Ignore string `json:"ignore"`
	Steps  int    `json:"steps"`
}

type weaponSummaryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Caliber  string `json:"caliber"`
}

type modSummaryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

type itemDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slot  string `json:"slot"`
	Price int    `json:"price"`
	Via   string `json:"via"`
}

type presetDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Price int    `json:"price"`
}

type finalStatsDTO struct {
	Ergonomics       int     `json:"ergonomics"`
	RecoilPct        float64 `json:"recoil_pct"`
	RecoilVertical   int     `json:"recoil_v"`
	RecoilHorizontal int     `json:"recoil_h"`
	Weight           float64 `json:"weight"`
	TotalPrice       int     `json:"total_price"`
}

// optimizeResponseDTO is the §6 OptimizeResponse shape.
type optimizeResponseDTO struct {
	Status         string        `json:"status"`
	Reasons        []string      `json:"reasons,omitempty"`
	SelectedItems  []itemDTO     `json:"selected_items"`
	SelectedPreset presetDTO     `json:"selected_preset"`
	FallbackBase   bool          `json:"fallback_base"`
	ObjectiveValue float64       `json:"objective_value"`
	FinalStats     finalStatsDTO `json:"final_stats"`
}

func toItemDTOs(items []optimize.ItemDetail) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, itemDTO{ID: it.ID, Name: it.Name, Icon: it.Icon, Slot: it.Slot, Price: it.Price, Via: it.Via})
	}
	return out
}

func toPresetDTO(p optimize.PresetDetail) presetDTO {
	return presetDTO{ID: p.ID, Name: p.Name, Icon: p.Icon, Price: p.Price}
}

func toFinalStatsDTO(s optimize.FinalStats) finalStatsDTO {
	return finalStatsDTO{
		Ergonomics:       s.Ergonomics,
		RecoilPct:        (s.RecoilMultiplier - 1) * 100,
		RecoilVertical:   s.RecoilVertical,
		RecoilHorizontal: s.RecoilHorizontal,
		Weight:           s.Weight,
		TotalPrice:       s.TotalPrice,
	}
}

func toOptimizeResponseDTO(c optimize.Constraints, res optimize.Result) optimizeResponseDTO {
	objective := c.ErgoWeight*float64(res.Stats.Ergonomics) -
		c.RecoilWeight*(res.Stats.RecoilMultiplier-1)*100 -
		c.PriceWeight*float64(res.Stats.TotalPrice)

	return optimizeResponseDTO{
		Status:         res.Status,
		Reasons:        res.Reasons,
		SelectedItems:  toItemDTOs(res.Items),
		SelectedPreset: toPresetDTO(res.Base),
		FallbackBase:   res.FallbackBase,
		ObjectiveValue: objective,
		FinalStats:     toFinalStatsDTO(res.Stats),
	}
}

// frontierPointDTO is one entry of the §6 /api/explore response list.
type frontierPointDTO struct {
	Ergonomics       int       `json:"ergo"`
	RecoilPct        float64   `json:"recoil_pct"`
	RecoilVertical   float64   `json:"recoil_v"`
	RecoilHorizontal float64   `json:"recoil_h"`
	Price            int       `json:"price"`
	SelectedItems    []itemDTO `json:"selected_items"`
	SelectedPreset   presetDTO `json:"selected_preset"`
	Status           string    `json:"status"`
}

func toFrontierPointDTO(p optimize.FrontierPoint) frontierPointDTO {
	return frontierPointDTO{
		Ergonomics:       p.Ergonomics,
		RecoilPct:        p.RecoilPct,
		RecoilVertical:   p.RecoilVertical,
		RecoilHorizontal: p.RecoilHorizontal,
		Price:            p.Price,
		SelectedItems:    toItemDTOs(p.Items),
		SelectedPreset:   toPresetDTO(p.Base),
		Status:           p.Status,
	}
}
