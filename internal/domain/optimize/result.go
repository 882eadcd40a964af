package optimize

import (
	"math"
)

// ItemDetail is one chosen attachment in a decoded Result.
type ItemDetail struct {
	ID    string
	Name  string
	Icon  string
	Slot  string
	Price int
	Via   string // "purchased" or "preset"
}

// PresetDetail describes the chosen base, whether factory preset or naked.
type PresetDetail struct {
	ID    string // empty when naked
	Name  string
	Icon  string
	Price int
}

// FinalStats are recomputed independently of the solver's internal scaled
// integers, per §4.5's "never trust solver internals for display" rule.
type FinalStats struct {
	Ergonomics       int
	RecoilMultiplier float64
	RecoilVertical   int
	RecoilHorizontal int
	Weight           float64
	TotalPrice       int
}

// Result is the decoded outcome of one Optimize call.
type Result struct {
	Status  string // "optimal", "feasible", or "infeasible"
	Reasons []string // populated on infeasible, from the pre-check or solver

	Base         PresetDetail
	FallbackBase bool // true when no base was purchasable and the first preset (or naked) was forced in at price 0
	Items        []ItemDetail
	Stats        FinalStats

	NodesExplored int
}

// decode turns a solver.Solution plus the model that produced it back into
// domain terms, recomputing every displayed statistic from the chosen items
// directly rather than trusting the solver's scaled objective value.
func (m *model) decode(assignment []int, nodesExplored int) Result {
	res := Result{Status: "optimal", NodesExplored: nodesExplored}

	for _, b := range m.bases {
		if assignment[m.baseVar[b.presetID]] == 1 {
			res.Base = PresetDetail{ID: b.presetID, Name: b.name, Icon: b.icon, Price: b.price}
			if b.presetID == m.fallbackBase || (b.presetID == "" && m.fallbackNaked) {
				res.FallbackBase = true
			}
			break
		}
	}

	ergo := m.weapon.Stats.NakedErgonomics
	totalRecoilMod := 0.0
	weight := m.weapon.Stats.Weight
	total := res.Base.Price

	for _, id := range m.admissibleIDs {
		if assignment[m.xVar[id]] != 1 {
			continue
		}
		item := m.cm.ReachableItems[id]
		ergo += item.Stats.Ergonomics
		totalRecoilMod += item.Stats.RecoilModifier
		weight += item.Stats.Weight

		via := "preset"
		if assignment[m.buyVar[id]] == 1 {
			via = "purchased"
			total += m.itemPrice[id]
		}

		slot := ""
		for _, s := range m.itemSlots(id) {
			if v, ok := m.slotPlacementTerm(id, s); ok && assignment[v] == 1 {
				slot = s
				break
			}
		}

		res.Items = append(res.Items, ItemDetail{
			ID:    id,
			Name:  item.Name,
			Icon:  item.Icon,
			Slot:  slot,
			Price: m.itemPrice[id],
			Via:   via,
		})
	}

	// §4.5's decode formula is uncapped: ergonomics = naked + Σ mod_ergo.
	// The §4.4 objective's capped_ergo never reaches the displayed stats —
	// see model.go's addErgoCapVars doc.
	recoilMultiplier := 1 + totalRecoilMod
	res.Stats = FinalStats{
		Ergonomics:       ergo,
		RecoilMultiplier: recoilMultiplier,
		RecoilVertical:   int(math.Round(float64(m.weapon.Stats.NakedRecoilVertical) * recoilMultiplier)),
		RecoilHorizontal: int(math.Round(float64(m.weapon.Stats.NakedRecoilHorizontal) * recoilMultiplier)),
		Weight:           weight,
		TotalPrice:       total,
	}

	return res
}

func infeasibleResult(reasons []string) Result {
	return Result{Status: "infeasible", Reasons: reasons}
}
