package optimize

import (
	"math"
	"sort"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
	"github.com/andrescamacho/gunsmith-go/internal/domain/pricing"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/solver"
)

// candidateBase is one admissible choice for the "base" decision variable:
// either a purchasable preset, or the naked weapon.
type candidateBase struct {
	presetID string // "" means naked
	price    int
	name     string
	icon     string
	contains map[string]bool
}

// model is the intermediate representation the Model Builder (§4.4)
// produces before handing a solver.Problem to the Solver Driver.
type model struct {
	problem *solver.Problem

	weapon *catalog.Item
	lookup catalog.ItemLookup
	cm     *compatibility.Map
	c      Constraints

	bases          []candidateBase
	baseVar        map[string]int // presetID (or "" for naked) -> var index
	admissibleIDs  []string
	xVar           map[string]int
	buyVar         map[string]int // may alias xVar when item has no containing preset
	placedVar      map[[2]string]int
	itemPrice      map[string]int // effective purchase price (0 when only via preset)
	itemContainers map[string][]string
	slotRequired   map[string]bool
	fallbackBase   string
	fallbackNaked  bool
}

// buildModel implements the Variables and Constraints sections of §4.4.
func buildModel(weapon *catalog.Item, lookup catalog.ItemLookup, cm *compatibility.Map, c Constraints) *model {
	m := &model{
		weapon:         weapon,
		lookup:         lookup,
		cm:             cm,
		c:              c,
		baseVar:        map[string]int{},
		xVar:           map[string]int{},
		buyVar:         map[string]int{},
		placedVar:      map[[2]string]int{},
		itemPrice:      map[string]int{},
		itemContainers: map[string][]string{},
		slotRequired:   map[string]bool{},
	}
	m.problem = &solver.Problem{}

	m.collectSlotRequired()
	m.selectCandidateBases()

	excludeIDs := intSet(c.ExcludeItems)
	includeIDs := intSet(c.IncludeItems)
	levels := c.TraderLevels
	if levels == nil {
		levels = pricing.DefaultTraderLevels()
	}

	for id, item := range cm.ReachableItems {
		if excludeIDs[id] {
			continue
		}
		if len(c.ExcludeCategories) > 0 && matchesCategoryGroup(item.Stats, c.ExcludeCategories) {
			continue
		}

		containers := m.containingBases(id)
		res := pricing.Resolve(item.Stats, item.Offers, levels, c.FleaAvailable, c.PlayerLevel)

		if !res.Reachable && len(containers) == 0 {
			continue // inadmissible: neither individually purchasable nor preset-covered
		}

		m.admissibleIDs = append(m.admissibleIDs, id)
		m.itemContainers[id] = containers
		if res.Reachable {
			m.itemPrice[id] = res.Price
		}
	}
	sort.Strings(m.admissibleIDs) // deterministic variable order (§5)

	for _, id := range m.admissibleIDs {
		m.xVar[id] = m.addVar(0)
	}
	for _, id := range m.admissibleIDs {
		if len(m.itemContainers[id]) > 0 {
			m.buyVar[id] = m.addVar(0)
		} else {
			m.buyVar[id] = m.xVar[id] // buy == x when never preset-covered
		}
	}

	m.addPlacementVars()

	m.addBaseExclusivity()
	m.addPresetOnlyConstraints(includeIDs)
	m.addBuyLinkageConstraints()
	m.addSlotCapacityConstraints()
	m.addPlacementSelectionConstraints()
	m.addParentAttachmentConstraints()
	m.addRequiredSlotConstraints()
	m.addConflictConstraints()
	m.addIncludeConstraints(includeIDs)
	m.addBudgetConstraint()
	m.addErgoConstraint()
	m.addRecoilConstraints()
	m.addMagazineAndSightConstraints()
	m.addWeightConstraint()

	m.setObjective()

	m.problem.NumVars = len(m.problem.Obj)

	return m
}

func (m *model) addVar(objCoef int64) int {
	idx := len(m.problem.Obj)
	m.problem.Obj = append(m.problem.Obj, objCoef)
	return idx
}

func (m *model) collectSlotRequired() {
	for _, s := range m.weapon.Slots {
		m.slotRequired[s.ID] = s.Required
	}
	for _, item := range m.cm.ReachableItems {
		for _, s := range item.Slots {
			m.slotRequired[s.ID] = s.Required
		}
	}
}

// selectCandidateBases implements the base-variable fallback chain of §4.4.
func (m *model) selectCandidateBases() {
	var purchasablePresets []catalog.Preset
	for _, p := range m.weapon.Presets {
		if p.Purchasable() {
			purchasablePresets = append(purchasablePresets, p)
		}
	}

	nakedPurchasable := m.weapon.Stats.WeaponPurchasable()

	if len(purchasablePresets) == 0 && !nakedPurchasable {
		if len(m.weapon.Presets) > 0 {
			p := m.weapon.Presets[0]
			m.bases = []candidateBase{m.toBase(p, 0)}
			m.fallbackBase = p.ID
		} else {
			m.bases = []candidateBase{{presetID: "", price: 0, name: "Naked"}}
			m.fallbackNaked = true
		}
	} else {
		for _, p := range purchasablePresets {
			m.bases = append(m.bases, m.toBase(p, p.LowestPrice))
		}
		if nakedPurchasable {
			m.bases = append(m.bases, candidateBase{presetID: "", price: m.weapon.Stats.Price, name: "Naked"})
		}
	}

	for i, b := range m.bases {
		m.baseVar[b.presetID] = m.addVar(0)
		_ = i
	}
}

func (m *model) toBase(p catalog.Preset, price int) candidateBase {
	contains := make(map[string]bool, len(p.ContainedIDs))
	for _, id := range p.ContainedIDs {
		contains[id] = true
	}
	return candidateBase{presetID: p.ID, price: price, name: p.Name, icon: p.Icon, contains: contains}
}

// containingBases returns the ids of every candidate base (by presetID,
// "" excluded) that contains itemID.
func (m *model) containingBases(itemID string) []string {
	var ids []string
	for _, b := range m.bases {
		if b.presetID == "" {
			continue
		}
		if b.contains[itemID] {
			ids = append(ids, b.presetID)
		}
	}
	return ids
}

func (m *model) addBaseExclusivity() {
	terms := make([]solver.Term, 0, len(m.bases))
	for _, b := range m.bases {
		terms = append(terms, solver.Term{Var: m.baseVar[b.presetID], Coef: 1})
	}
	m.problem.AddConstraint(solver.Constraint{Name: "base-exclusivity", Terms: terms, Sense: solver.EQ, Bound: 1})
}

// addPresetOnlyConstraints implements constraint 2: items with no
// individual price are gated by Σ base_v over their containing presets.
func (m *model) addPresetOnlyConstraints(includeIDs map[string]bool) {
	for _, id := range m.admissibleIDs {
		if _, hasPrice := m.itemPrice[id]; hasPrice {
			continue
		}
		containers := m.itemContainers[id]
		terms := []solver.Term{{Var: m.xVar[id], Coef: 1}}
		for _, pid := range containers {
			terms = append(terms, solver.Term{Var: m.baseVar[pid], Coef: -1})
		}
		m.problem.AddConstraint(solver.Constraint{Name: "preset-only:" + id, Terms: terms, Sense: solver.LE, Bound: 0})
	}
}

// addBuyLinkageConstraints implements constraint 3 for items with
// containing candidate presets: buy <= x; buy <= 1 - H; buy >= x - H.
func (m *model) addBuyLinkageConstraints() {
	for _, id := range m.admissibleIDs {
		containers := m.itemContainers[id]
		if len(containers) == 0 {
			continue // buyVar aliases xVar already
		}
		x := m.xVar[id]
		buy := m.buyVar[id]

		m.problem.AddConstraint(solver.Constraint{
			Name: "buy-le-x:" + id, Sense: solver.LE, Bound: 0,
			Terms: []solver.Term{{Var: buy, Coef: 1}, {Var: x, Coef: -1}},
		})

		hTerms := []solver.Term{{Var: buy, Coef: 1}}
		for _, pid := range containers {
			hTerms = append(hTerms, solver.Term{Var: m.baseVar[pid], Coef: 1})
		}
		m.problem.AddConstraint(solver.Constraint{Name: "buy-le-1-H:" + id, Sense: solver.LE, Bound: 1, Terms: hTerms})

		gTerms := []solver.Term{{Var: x, Coef: 1}, {Var: buy, Coef: -1}}
		for _, pid := range containers {
			gTerms = append(gTerms, solver.Term{Var: m.baseVar[pid], Coef: -1})
		}
		m.problem.AddConstraint(solver.Constraint{Name: "buy-ge-x-H:" + id, Sense: solver.LE, Bound: 0, Terms: gTerms})
	}
}

// itemSlots returns the candidate slot ids an admissible item could be
// placed into, i.e. every slot whose allowed-items list (per the
// compatibility map) includes it.
func (m *model) itemSlots(itemID string) []string {
	var slots []string
	for slotID, items := range m.cm.SlotItems {
		for _, it := range items {
			if it == itemID {
				slots = append(slots, slotID)
				break
			}
		}
	}
	sort.Strings(slots)
	return slots
}

func (m *model) addPlacementVars() {
	for _, id := range m.admissibleIDs {
		slots := m.itemSlots(id)
		if len(slots) <= 1 {
			continue // single-slot items use x[i] directly in slot capacity
		}
		for _, s := range slots {
			m.placedVar[[2]string{id, s}] = m.addVar(0)
		}
	}
}

// slotPlacementTerm returns the variable index that represents item id's
// presence in slot s: placed_in[i,s] for multi-slot items, x[i] for items
// with exactly one candidate slot.
func (m *model) slotPlacementTerm(id, s string) (int, bool) {
	if v, ok := m.placedVar[[2]string{id, s}]; ok {
		return v, true
	}
	slots := m.itemSlots(id)
	if len(slots) == 1 && slots[0] == s {
		if x, ok := m.xVar[id]; ok {
			return x, true
		}
	}
	return 0, false
}

func (m *model) addSlotCapacityConstraints() {
	for slotID, items := range m.cm.SlotItems {
		var terms []solver.Term
		for _, itemID := range items {
			if _, ok := m.xVar[itemID]; !ok {
				continue // not admissible
			}
			if v, ok := m.slotPlacementTerm(itemID, slotID); ok {
				terms = append(terms, solver.Term{Var: v, Coef: 1})
			}
		}
		if len(terms) == 0 {
			continue
		}
		m.problem.AddConstraint(solver.Constraint{Name: "slot-capacity:" + slotID, Terms: terms, Sense: solver.LE, Bound: 1})
	}
}

func (m *model) addPlacementSelectionConstraints() {
	for _, id := range m.admissibleIDs {
		slots := m.itemSlots(id)
		if len(slots) <= 1 {
			continue
		}
		terms := []solver.Term{{Var: m.xVar[id], Coef: -1}}
		for _, s := range slots {
			terms = append(terms, solver.Term{Var: m.placedVar[[2]string{id, s}], Coef: 1})
		}
		m.problem.AddConstraint(solver.Constraint{Name: "placement-selection:" + id, Terms: terms, Sense: solver.EQ, Bound: 0})
	}
}

func (m *model) addParentAttachmentConstraints() {
	for slotID, owner := range m.cm.SlotOwner {
		if owner == m.weapon.ID {
			continue // unconditional: owned by the base itself
		}
		// An owner that is not admissible under current exclusions is never
		// selected, so nothing may be placed in its slot.
		ownerX, ownerAdmissible := m.xVar[owner]
		for _, itemID := range m.cm.SlotItems[slotID] {
			v, ok := m.slotPlacementTerm(itemID, slotID)
			if !ok {
				continue
			}
			terms := []solver.Term{{Var: v, Coef: 1}}
			if ownerAdmissible {
				terms = append(terms, solver.Term{Var: ownerX, Coef: -1})
			}
			m.problem.AddConstraint(solver.Constraint{
				Name: "parent-attach:" + itemID + ":" + slotID, Sense: solver.LE, Bound: 0,
				Terms: terms,
			})
		}
	}
}

func (m *model) addRequiredSlotConstraints() {
	for slotID, required := range m.slotRequired {
		if !required {
			continue
		}
		items, ok := m.cm.SlotItems[slotID]
		if !ok {
			continue
		}
		var terms []solver.Term
		for _, itemID := range items {
			if v, ok := m.slotPlacementTerm(itemID, slotID); ok {
				terms = append(terms, solver.Term{Var: v, Coef: 1})
			}
		}
		if len(terms) == 0 {
			continue
		}

		owner := m.cm.SlotOwner[slotID]
		if owner == m.weapon.ID {
			m.problem.AddConstraint(solver.Constraint{Name: "required-slot:" + slotID, Terms: terms, Sense: solver.GE, Bound: 1})
			continue
		}
		ownerX, ok := m.xVar[owner]
		if !ok {
			continue
		}
		// conditional: Σ placements - x[owner] >= 0
		condTerms := append(append([]solver.Term{}, terms...), solver.Term{Var: ownerX, Coef: -1})
		m.problem.AddConstraint(solver.Constraint{Name: "required-slot-cond:" + slotID, Terms: condTerms, Sense: solver.GE, Bound: 0})
	}
}

func (m *model) addConflictConstraints() {
	seen := map[[2]string]bool{}
	for _, id := range m.admissibleIDs {
		item := m.cm.ReachableItems[id]
		for _, other := range item.Conflicts {
			if _, ok := m.xVar[other]; !ok {
				continue
			}
			key := [2]string{id, other}
			if id > other {
				key = [2]string{other, id}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			m.problem.AddConstraint(solver.Constraint{
				Name: "conflict:" + key[0] + ":" + key[1], Sense: solver.LE, Bound: 1,
				Terms: []solver.Term{{Var: m.xVar[key[0]], Coef: 1}, {Var: m.xVar[key[1]], Coef: 1}},
			})
		}
	}
}

func (m *model) addIncludeConstraints(includeIDs map[string]bool) {
	for id := range includeIDs {
		v, ok := m.xVar[id]
		if !ok {
			// Unreachable ids are reported by the feasibility pre-check; a
			// reachable id that is excluded or has no purchase path gets no
			// include constraint.
			continue
		}
		m.problem.AddConstraint(solver.Constraint{Name: "include:" + id, Terms: []solver.Term{{Var: v, Coef: 1}}, Sense: solver.EQ, Bound: 1})
	}
	for gi, group := range m.c.IncludeCategories {
		var terms []solver.Term
		for _, id := range m.admissibleIDs {
			if matchesCategoryGroup(m.cm.ReachableItems[id].Stats, group) {
				terms = append(terms, solver.Term{Var: m.xVar[id], Coef: 1})
			}
		}
		if len(terms) == 0 {
			continue
		}
		m.problem.AddConstraint(solver.Constraint{Name: "include-category", Terms: terms, Sense: solver.GE, Bound: 1})
		_ = gi
	}
}

func (m *model) addBudgetConstraint() {
	if m.c.MaxPrice == nil {
		return
	}
	var terms []solver.Term
	for _, b := range m.bases {
		if b.price != 0 {
			terms = append(terms, solver.Term{Var: m.baseVar[b.presetID], Coef: int64(b.price)})
		}
	}
	for _, id := range m.admissibleIDs {
		price := m.itemPrice[id]
		if price != 0 {
			terms = append(terms, solver.Term{Var: m.buyVar[id], Coef: int64(price)})
		}
	}
	m.problem.AddConstraint(solver.Constraint{Name: "budget", Terms: terms, Sense: solver.LE, Bound: int64(*m.c.MaxPrice)})
}

func (m *model) addErgoConstraint() {
	if m.c.MinErgonomics == nil {
		return
	}
	terms := make([]solver.Term, 0, len(m.admissibleIDs))
	for _, id := range m.admissibleIDs {
		ergo := m.cm.ReachableItems[id].Stats.Ergonomics
		if ergo != 0 {
			terms = append(terms, solver.Term{Var: m.xVar[id], Coef: int64(ergo) * ErgoScale})
		}
	}
	bound := int64(*m.c.MinErgonomics)*ErgoScale - int64(m.weapon.Stats.NakedErgonomics)*ErgoScale
	m.problem.AddConstraint(solver.Constraint{Name: "min-ergonomics", Terms: terms, Sense: solver.GE, Bound: bound})
}

// addRecoilConstraints maps max_recoil_v and max_recoil_sum to upper bounds
// on the scaled total recoil modifier, per §4.4 constraint 12.
func (m *model) addRecoilConstraints() {
	terms := make([]solver.Term, 0, len(m.admissibleIDs))
	for _, id := range m.admissibleIDs {
		rm := m.cm.ReachableItems[id].Stats.RecoilModifier
		if rm != 0 {
			terms = append(terms, solver.Term{Var: m.xVar[id], Coef: int64(math.Round(rm * RecoilScale))})
		}
	}
	if len(terms) == 0 {
		return
	}

	nakedV := float64(m.weapon.Stats.NakedRecoilVertical)
	nakedH := float64(m.weapon.Stats.NakedRecoilHorizontal)

	if m.c.MaxRecoilV != nil && nakedV > 0 {
		bound := int64(math.Floor((float64(*m.c.MaxRecoilV)/nakedV - 1) * RecoilScale))
		m.problem.AddConstraint(solver.Constraint{Name: "max-recoil-v", Terms: cloneTerms(terms), Sense: solver.LE, Bound: bound})
	}
	if m.c.MaxRecoilSum != nil && (nakedV+nakedH) > 0 {
		bound := int64(math.Floor((float64(*m.c.MaxRecoilSum)/(nakedV+nakedH) - 1) * RecoilScale))
		m.problem.AddConstraint(solver.Constraint{Name: "max-recoil-sum", Terms: cloneTerms(terms), Sense: solver.LE, Bound: bound})
	}
}

func cloneTerms(terms []solver.Term) []solver.Term {
	out := make([]solver.Term, len(terms))
	copy(out, terms)
	return out
}

func (m *model) addMagazineAndSightConstraints() {
	if m.c.MinMagCapacity != nil && *m.c.MinMagCapacity > 0 {
		var terms []solver.Term
		for _, id := range m.admissibleIDs {
			if m.cm.ReachableItems[id].Stats.Capacity >= *m.c.MinMagCapacity {
				terms = append(terms, solver.Term{Var: m.xVar[id], Coef: 1})
			}
		}
		if len(terms) > 0 {
			m.problem.AddConstraint(solver.Constraint{Name: "min-mag-capacity", Terms: terms, Sense: solver.GE, Bound: 1})
		}
	}

	if m.c.MinSightingRange != nil && *m.c.MinSightingRange > m.weapon.Stats.SightingRange {
		var terms []solver.Term
		for _, id := range m.admissibleIDs {
			if m.cm.ReachableItems[id].Stats.SightingRange >= *m.c.MinSightingRange {
				terms = append(terms, solver.Term{Var: m.xVar[id], Coef: 1})
			}
		}
		if len(terms) > 0 {
			m.problem.AddConstraint(solver.Constraint{Name: "min-sighting-range", Terms: terms, Sense: solver.GE, Bound: 1})
		}
	}
}

func (m *model) addWeightConstraint() {
	if m.c.MaxWeight == nil {
		return
	}
	terms := make([]solver.Term, 0, len(m.admissibleIDs))
	for _, id := range m.admissibleIDs {
		w := m.cm.ReachableItems[id].Stats.Weight
		if w != 0 {
			terms = append(terms, solver.Term{Var: m.xVar[id], Coef: int64(math.Round(w * WeightScale))})
		}
	}
	bound := int64(math.Round(*m.c.MaxWeight*WeightScale)) - int64(math.Round(m.weapon.Stats.Weight*WeightScale))
	m.problem.AddConstraint(solver.Constraint{Name: "max-weight", Terms: terms, Sense: solver.LE, Bound: bound})
}

// ergoCapSteps is §4.4's objective cap: capped_ergo = max(0, min(100, total_ergo)).
const ergoCapSteps = 100

// addErgoCapVars linearizes capped_ergo = max(0, min(ergoCapSteps, total_ergo))
// for the objective using only 0/1 variables, since this solver has no
// general integer variables for CP-SAT's AddMinEquality/AddMaxEquality pair
// (the Python original's capped_ergo_var) to compile down to directly.
//
// One binary e[k] is added per threshold k = 1..ergoCapSteps, forced by a
// pair of big-M constraints to equal the indicator "total_ergo >= k":
//
//	total_ergo >= k - M(1-e[k])   (non-binding when e[k]=0, exact when e[k]=1)
//	total_ergo <= (k-1) + M*e[k]  (exact when e[k]=0, non-binding when e[k]=1)
//
// Σ e[k] then always equals the clamped value, so feeding each e[k] the
// ergo objective coefficient reproduces ergo_weight · capped_ergo exactly.
func (m *model) addErgoCapVars(coefPerStep int64) []int {
	terms := make([]solver.Term, 0, len(m.admissibleIDs))
	minSum := int64(m.weapon.Stats.NakedErgonomics)
	maxSum := int64(m.weapon.Stats.NakedErgonomics)
	for _, id := range m.admissibleIDs {
		ergo := int64(m.cm.ReachableItems[id].Stats.Ergonomics)
		if ergo == 0 {
			continue
		}
		terms = append(terms, solver.Term{Var: m.xVar[id], Coef: ergo})
		if ergo > 0 {
			maxSum += ergo
		} else {
			minSum += ergo
		}
	}

	naked := int64(m.weapon.Stats.NakedErgonomics)
	bigM := maxSum
	if loose := int64(ergoCapSteps) - minSum; loose > bigM {
		bigM = loose
	}
	bigM++

	vars := make([]int, ergoCapSteps)
	for k := 1; k <= ergoCapSteps; k++ {
		e := m.addVar(coefPerStep)
		vars[k-1] = e

		m.problem.AddConstraint(solver.Constraint{
			Name:  "ergo-cap-lower",
			Terms: append(cloneTerms(terms), solver.Term{Var: e, Coef: -bigM}),
			Sense: solver.GE,
			Bound: int64(k) - bigM - naked,
		})
		m.problem.AddConstraint(solver.Constraint{
			Name:  "ergo-cap-upper",
			Terms: append(cloneTerms(terms), solver.Term{Var: e, Coef: -bigM}),
			Sense: solver.LE,
			Bound: int64(k-1) - naked,
		})
	}
	return vars
}

// setObjective implements §4.4's objective: maximize ergo_weight·capped_ergo
// − recoil_weight·total_recoil_mod − price_weight·total_price.
func (m *model) setObjective() {
	ergoCoefPerStep := int64(math.Round(m.c.ErgoWeight * ObjectiveScale))
	m.addErgoCapVars(ergoCoefPerStep)

	for _, id := range m.admissibleIDs {
		item := m.cm.ReachableItems[id]
		coef := -m.c.RecoilWeight * item.Stats.RecoilModifier * RecoilScale * ObjectiveScale
		m.problem.Obj[m.xVar[id]] += int64(math.Round(coef))

		if price, ok := m.itemPrice[id]; ok && price != 0 {
			priceCoef := -m.c.PriceWeight * float64(price) * ObjectiveScale
			m.problem.Obj[m.buyVar[id]] += int64(math.Round(priceCoef))
		}
	}
	for _, b := range m.bases {
		if b.price != 0 {
			priceCoef := -m.c.PriceWeight * float64(b.price) * ObjectiveScale
			m.problem.Obj[m.baseVar[b.presetID]] += int64(math.Round(priceCoef))
		}
	}
}
