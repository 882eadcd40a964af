package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
)

func TestResolve_FleaGatedByLevel(t *testing.T) {
	offers := []catalog.Offer{{Price: 1000, Source: "fleaMarket"}}
	stats := catalog.StatBlock{MinLevelFlea: 10}

	res := Resolve(stats, offers, DefaultTraderLevels(), true, 5)
	assert.False(t, res.Reachable)

	res2 := Resolve(stats, offers, DefaultTraderLevels(), true, 15)
	assert.True(t, res2.Reachable)
	assert.Equal(t, 1000, res2.Price)
}

func TestResolve_TraderGatedByLoyaltyLevel(t *testing.T) {
	offers := []catalog.Offer{
		{Price: 5000, Source: "prapor", VendorNormalized: "prapor", TraderLevel: 3},
	}
	levels := TraderLevels{TraderPrapor: 2}

	res := Resolve(catalog.StatBlock{}, offers, levels, true, 0)
	assert.False(t, res.Reachable)

	levels[TraderPrapor] = 3
	res2 := Resolve(catalog.StatBlock{}, offers, levels, true, 0)
	assert.True(t, res2.Reachable)
	assert.Equal(t, "prapor", res2.Source)
}

func TestResolve_PicksCheapestSurvivor(t *testing.T) {
	offers := []catalog.Offer{
		{Price: 5000, Source: "prapor", VendorNormalized: "prapor", TraderLevel: 1},
		{Price: 3000, Source: "fleaMarket"},
	}
	res := Resolve(catalog.StatBlock{}, offers, DefaultTraderLevels(), true, 10)
	assert.True(t, res.Reachable)
	assert.Equal(t, 3000, res.Price)
	assert.Equal(t, "fleaMarket", res.Source)
}

func TestResolve_NoOffersFallsBackToFlatPrice(t *testing.T) {
	stats := catalog.StatBlock{Price: 2000, PriceSource: "basePrice"}

	res := Resolve(stats, nil, DefaultTraderLevels(), true, 0)
	assert.True(t, res.Reachable)
	assert.Equal(t, 2000, res.Price)

	res2 := Resolve(stats, nil, DefaultTraderLevels(), false, 0)
	assert.False(t, res2.Reachable)
}

func TestResolve_NoOffersNoPriceIsUnreachable(t *testing.T) {
	res := Resolve(catalog.StatBlock{}, nil, DefaultTraderLevels(), true, 0)
	assert.False(t, res.Reachable)
}
