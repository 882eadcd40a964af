package optimize

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
)

// checkFeasibility runs the pre-check of §4.4 before model construction,
// returning every detected reason a request cannot possibly be satisfied.
// A nil/empty slice means the pre-check found nothing disqualifying (the
// model may still turn out infeasible for reasons only the solver can see,
// e.g. conflicting includes).
func checkFeasibility(weapon *catalog.Item, lookup catalog.ItemLookup, cm *compatibility.Map, c Constraints) []string {
	var reasons []string

	for _, reqID := range c.IncludeItems {
		if _, ok := cm.ReachableItems[reqID]; !ok {
			name := reqID
			if item, ok := lookup[reqID]; ok {
				name = item.Name
			}
			reasons = append(reasons, fmt.Sprintf("Required item '%s' is not compatible with this weapon", name))
		}
	}

	for _, group := range c.IncludeCategories {
		if len(group) == 0 {
			continue
		}
		found := false
		for _, item := range cm.ReachableItems {
			if matchesCategoryGroup(item.Stats, group) {
				found = true
				break
			}
		}
		if !found {
			reasons = append(reasons, fmt.Sprintf("No items found for required category group: %v", group))
		}
	}

	if c.MinMagCapacity != nil && *c.MinMagCapacity > 0 {
		adequate := false
		for _, item := range cm.ReachableItems {
			if item.Stats.Capacity >= *c.MinMagCapacity {
				adequate = true
				break
			}
		}
		if !adequate {
			reasons = append(reasons, fmt.Sprintf("No magazine with capacity >= %d rounds available", *c.MinMagCapacity))
		}
	}

	if c.MinSightingRange != nil && *c.MinSightingRange > 0 {
		if weapon.Stats.SightingRange < *c.MinSightingRange {
			adequate := false
			for _, item := range cm.ReachableItems {
				if item.Stats.SightingRange >= *c.MinSightingRange {
					adequate = true
					break
				}
			}
			if !adequate {
				reasons = append(reasons, fmt.Sprintf("No sight with sighting range >= %dm available", *c.MinSightingRange))
			}
		}
	}

	if c.MaxWeight != nil {
		baseWeight := weapon.Stats.Weight
		lightest := lightestPositiveWeight(cm)
		totalMin := baseWeight + lightest
		if totalMin > *c.MaxWeight {
			reasons = append(reasons, fmt.Sprintf("Weight exceeds limit even with lightest mods (%.2fkg > %.2fkg)", totalMin, *c.MaxWeight))
		}
	}

	return reasons
}

// lightestPositiveWeight finds the smallest strictly-positive item weight
// among every reachable item. This pins the semantics left ambiguous by
// the source's `if weight > 0 and weight < min_mod_weight or
// min_mod_weight == 0` expression — see SPEC_FULL.md §9's Open Question
// writeup for why the straightforward "lightest positive weight seen so
// far" reading is the one implemented, rather than reproducing the
// precedence quirk.
func lightestPositiveWeight(cm *compatibility.Map) float64 {
	var best float64
	for _, item := range cm.ReachableItems {
		w := item.Stats.Weight
		if w > 0 && (best == 0 || w < best) {
			best = w
		}
	}
	return best
}

// matchesCategoryGroup reports whether stats' category id or name matches
// any entry in group (category ids and names are checked interchangeably,
// per §4.4's "by category_id OR category name").
func matchesCategoryGroup(stats catalog.StatBlock, group []string) bool {
	for _, cat := range group {
		if cat == stats.CategoryID || strings.EqualFold(cat, stats.Category) {
			return true
		}
	}
	return false
}
