// Package pricing resolves the cheapest available price for an item given
// trader access levels, character level, and flea-market availability.
package pricing

import (
	"strings"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
)

// TraderLevels maps a normalized trader key to the character's loyalty
// level with that trader (1..4).
type TraderLevels map[string]int

// Known trader keys (§3).
const (
	TraderPrapor      = "prapor"
	TraderSkier       = "skier"
	TraderPeacekeeper = "peacekeeper"
	TraderMechanic    = "mechanic"
	TraderJaeger      = "jaeger"
)

// DefaultTraderLevels returns the default loyalty levels: every trader at
// level 4.
func DefaultTraderLevels() TraderLevels {
	return TraderLevels{
		TraderPrapor:      4,
		TraderSkier:       4,
		TraderPeacekeeper: 4,
		TraderMechanic:    4,
		TraderJaeger:      4,
	}
}

// Resolution is the outcome of resolving a price: whether the item is
// reachable at all, its cheapest price, and the offer source that produced
// it.
type Resolution struct {
	Price      int
	Source     string
	Reachable  bool
}

// Resolve implements §4.3: iterate the stat block's offers, rejecting flea
// offers when flea is unavailable or the player's level is below the
// offer's flea-level floor, and trader offers when the character's level
// at that trader is below the offer's required level. Among surviving
// offers, return the minimum price. When there are no offers at all but a
// positive fallback Price exists, the item is treated as flea-only.
func Resolve(stats catalog.StatBlock, offers []catalog.Offer, levels TraderLevels, fleaAvailable bool, playerLevel int) Resolution {
	if levels == nil {
		levels = DefaultTraderLevels()
	}

	if len(offers) == 0 {
		if stats.Price > 0 {
			if !fleaAvailable {
				return Resolution{}
			}
			if playerLevel > 0 && stats.MinLevelFlea > playerLevel {
				return Resolution{}
			}
			return Resolution{Price: stats.Price, Source: stats.PriceSource, Reachable: true}
		}
		return Resolution{}
	}

	best := -1
	bestSource := ""
	for _, offer := range offers {
		if offer.IsFlea() {
			if !fleaAvailable {
				continue
			}
			if playerLevel > 0 && stats.MinLevelFlea > playerLevel {
				continue
			}
		} else {
			traderLevel := levels[strings.ToLower(offer.VendorNormalized)]
			if traderLevel == 0 {
				traderLevel = 4
			}
			if offer.TraderLevel > traderLevel {
				continue
			}
		}

		if best == -1 || offer.Price < best {
			best = offer.Price
			bestSource = offer.Source
		}
	}

	if best == -1 {
		return Resolution{}
	}
	return Resolution{Price: best, Source: bestSource, Reachable: true}
}
