package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DropsModsWithNoValidPrice(t *testing.T) {
	weapons := []RawItem{{ID: "w1", Name: "Weapon"}}
	mods := []RawItem{
		{ID: "m-priced", Name: "Priced", BuyFor: []RawOffer{{PriceRUB: 1000, Source: "prapor"}}},
		{ID: "m-free", Name: "Free", BuyFor: nil},
	}

	lookup := Normalize(weapons, mods)

	assert.Contains(t, lookup, "m-priced")
	assert.NotContains(t, lookup, "m-free")
	assert.Contains(t, lookup, "w1")
}

func TestExtractModStats_RecoilModifierPrecedence(t *testing.T) {
	m := &RawItem{
		ID:             "m1",
		RecoilModifier: -8, // top-level, divide by 100
	}
	stats, _ := extractModStats(m)
	assert.InDelta(t, -0.08, stats.RecoilModifier, 1e-9)

	m2 := &RawItem{
		ID: "m2",
		Properties: RawProperties{
			RecoilModifier: -0.12, // nested wins outright, no scaling
		},
		RecoilModifier: -8,
	}
	stats2, _ := extractModStats(m2)
	assert.InDelta(t, -0.12, stats2.RecoilModifier, 1e-9)

	m3 := &RawItem{ID: "m3"}
	stats3, _ := extractModStats(m3)
	assert.Zero(t, stats3.RecoilModifier)
}

func TestExtractPresets_PurchasableAndSorted(t *testing.T) {
	raw := []RawPreset{
		{
			ID:   "p1",
			Name: "Preset One",
			BuyFor: []RawOffer{
				{PriceRUB: 5000, Source: "prapor", Vendor: RawVendor{MinTraderLevel: 2}},
				{PriceRUB: 3000, Source: "fleaMarket"},
			},
			ContainsItems: []RawContainedItem{{Item: RawItemRef{ID: "m1"}}},
		},
		{
			ID:     "p2",
			Name:   "Unpurchasable",
			BuyFor: nil,
		},
	}

	purchasableOnly := extractPresets(raw, false)
	require.Len(t, purchasableOnly, 1)
	assert.Equal(t, "p1", purchasableOnly[0].ID)
	assert.Equal(t, 3000, purchasableOnly[0].LowestPrice)
	assert.Equal(t, "fleaMarket", purchasableOnly[0].PriceSource)
	assert.True(t, purchasableOnly[0].Purchasable())

	withUnpurchasable := extractPresets(raw, true)
	require.Len(t, withUnpurchasable, 2)
	assert.False(t, withUnpurchasable[1].Purchasable())
}

func TestNormalizeLanguageAndGameMode(t *testing.T) {
	assert.Equal(t, "ru", NormalizeLanguage("ru"))
	assert.Equal(t, "en", NormalizeLanguage("xx"))
	assert.Equal(t, "pve", NormalizeGameMode("pve"))
	assert.Equal(t, "regular", NormalizeGameMode("hardcore"))
}
