package optimize

import "github.com/andrescamacho/gunsmith-go/internal/domain/pricing"

// Constraints is a single optimize/explore request's parameters (§3). All
// fields are optional except WeaponID; pointer fields distinguish "unset"
// from the zero value.
type Constraints struct {
	WeaponID string

	MaxPrice         *int
	MinErgonomics    *int
	MaxRecoilV       *int
	MaxRecoilSum     *int
	MinMagCapacity   *int
	MinSightingRange *int
	MaxWeight        *float64

	IncludeItems      []string
	ExcludeItems      []string
	IncludeCategories [][]string // OR-groups; each group must be satisfied
	ExcludeCategories []string

	ErgoWeight   float64
	RecoilWeight float64
	PriceWeight  float64

	TraderLevels  pricing.TraderLevels
	FleaAvailable bool
	PlayerLevel   int
}

// DefaultConstraints returns a Constraints value with the source's default
// objective weights (ergo=1, recoil=1, price=0) and flea enabled, matching
// optimize_weapon's keyword defaults.
func DefaultConstraints(weaponID string) Constraints {
	return Constraints{
		WeaponID:      weaponID,
		ErgoWeight:    1.0,
		RecoilWeight:  1.0,
		PriceWeight:   0.0,
		TraderLevels:  pricing.DefaultTraderLevels(),
		FleaAvailable: true,
	}
}

func intSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
