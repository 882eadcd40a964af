package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/pricing"
)

func intp(v int) *int { return &v }

func weapon(id string, ergo, recoilV, recoilH, price int, slots ...catalog.SlotDescriptor) *catalog.Item {
	return &catalog.Item{
		ID: id, Name: id, Kind: catalog.KindWeapon, Slots: slots,
		Stats: catalog.StatBlock{
			NakedErgonomics: ergo, NakedRecoilVertical: recoilV, NakedRecoilHorizontal: recoilH,
			Price: price,
		},
	}
}

func mod(id string, ergo int, recoil float64, price int, conflicts ...string) *catalog.Item {
	return &catalog.Item{
		ID: id, Name: id, Kind: catalog.KindMod, Conflicts: conflicts,
		Stats:  catalog.StatBlock{Ergonomics: ergo, RecoilModifier: recoil},
		Offers: []catalog.Offer{{Price: price, Source: "fleaMarket"}},
	}
}

func slot(id string, required bool, allowed ...string) catalog.SlotDescriptor {
	return catalog.SlotDescriptor{ID: id, Name: id, Required: required, AllowedIDs: allowed}
}

// Scenario A — naked weapon, no slots, no constraints.
func TestScenarioA_NakedWeaponNoConstraints(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000)
	lookup := catalog.ItemLookup{"W": w}

	res, err := Optimize(context.Background(), lookup, DefaultConstraints("W"))
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)
	assert.Empty(t, res.Items)
	assert.Equal(t, "", res.Base.ID)
	assert.Equal(t, 50, res.Stats.Ergonomics)
	assert.Equal(t, 100, res.Stats.RecoilVertical)
	assert.Equal(t, 10000, res.Stats.TotalPrice)
}

// Scenario B — required slot, two alternatives: M1's recoil reduction
// outweighs M2's extra ergonomics.
func TestScenarioB_RequiredSlotPrefersRecoilReduction(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000, slot("s1", true, "M1", "M2"))
	m1 := mod("M1", 5, -0.10, 2000)
	m2 := mod("M2", 10, 0.05, 3000)
	lookup := catalog.ItemLookup{"W": w, "M1": m1, "M2": m2}

	c := DefaultConstraints("W")
	c.ErgoWeight, c.RecoilWeight, c.PriceWeight = 1, 1, 0

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "M1", res.Items[0].ID)
}

// Scenario C — forced conflict via include_items is infeasible.
func TestScenarioC_ForcedConflictIsInfeasible(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000, slot("s1", false, "M1", "M2"))
	m1 := mod("M1", 5, -0.05, 1000, "M2")
	m2 := mod("M2", 5, -0.05, 1000, "M1")
	lookup := catalog.ItemLookup{"W": w, "M1": m1, "M2": m2}

	c := DefaultConstraints("W")
	c.IncludeItems = []string{"M1", "M2"}

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	assert.Equal(t, "infeasible", res.Status)
}

// Scenario D — a preset bundles M1 more cheaply than buying the naked
// weapon and M1 separately; the optimizer should pick the preset and not
// double-charge for M1.
func TestScenarioD_PresetAvoidsDoubleCounting(t *testing.T) {
	w := &catalog.Item{
		ID: "W", Name: "W", Kind: catalog.KindWeapon,
		Slots: []catalog.SlotDescriptor{slot("s1", false, "M1")},
		Stats: catalog.StatBlock{NakedErgonomics: 50, NakedRecoilVertical: 100, Price: 0}, // unpurchasable naked
		Presets: []catalog.Preset{
			{ID: "P", Name: "P", ContainedIDs: []string{"M1"}, LowestPrice: 5000},
		},
	}
	m1 := mod("M1", 5, -0.05, 2000)
	lookup := catalog.ItemLookup{"W": w, "M1": m1}

	c := DefaultConstraints("W")
	c.ErgoWeight, c.PriceWeight = 1, 1

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)
	assert.Equal(t, "P", res.Base.ID)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "M1", res.Items[0].ID)
	assert.Equal(t, "preset", res.Items[0].Via)
	assert.Equal(t, 5000, res.Stats.TotalPrice)
}

// Scenario E — only one reachable magazine meets the capacity floor.
func TestScenarioE_MagazineCapacityGate(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000, slot("mag", false, "M1", "M2"))
	w.Stats.Capacity = 10
	small := mod("M1", 0, 0, 500)
	small.Stats.Capacity = 20
	big := mod("M2", 0, 0, 1500)
	big.Stats.Capacity = 30
	lookup := catalog.ItemLookup{"W": w, "M1": small, "M2": big}

	c := DefaultConstraints("W")
	c.MinMagCapacity = intp(30)

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "M2", res.Items[0].ID)
}

// Scenario F — exploring along price yields a non-decreasing ergonomics
// frontier of the requested length (after dedup, at most that length).
func TestScenarioF_ExploreAlongPrice(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000,
		slot("s1", false, "M1", "M2", "M3"))
	m1 := mod("M1", 5, -0.02, 1000)
	m2 := mod("M2", 10, -0.01, 2000)
	m3 := mod("M3", 15, 0.0, 3000)
	lookup := catalog.ItemLookup{"W": w, "M1": m1, "M2": m2, "M3": m3}

	c := DefaultConstraints("W")
	points, err := Explore(context.Background(), lookup, c, AxisPrice, 3)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].Ergonomics, points[i-1].Ergonomics)
	}
}

// Invariant 5 (include/exclude respected) exercised directly.
func TestInvariant_IncludeAndExcludeRespected(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000, slot("s1", false, "M1", "M2"))
	m1 := mod("M1", 5, -0.05, 1000)
	m2 := mod("M2", 20, -0.20, 1000)
	lookup := catalog.ItemLookup{"W": w, "M1": m1, "M2": m2}

	c := DefaultConstraints("W")
	c.IncludeItems = []string{"M1"}
	c.ExcludeItems = []string{"M2"}

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)

	var ids []string
	for _, it := range res.Items {
		ids = append(ids, it.ID)
	}
	assert.Contains(t, ids, "M1")
	assert.NotContains(t, ids, "M2")
}

// Invariant 6 (budget respected).
func TestInvariant_BudgetRespected(t *testing.T) {
	w := weapon("W", 50, 100, 50, 10000, slot("s1", false, "M1", "M2"))
	m1 := mod("M1", 30, -0.3, 9000)
	m2 := mod("M2", 5, -0.02, 500)
	lookup := catalog.ItemLookup{"W": w, "M1": m1, "M2": m2}

	c := DefaultConstraints("W")
	c.PriceWeight = 0
	c.MaxPrice = intp(10200) // rules out naked+M1 (19000) and naked+M2 (10500)

	res, err := Optimize(context.Background(), lookup, c)
	require.NoError(t, err)
	require.Equal(t, "optimal", res.Status)
	assert.LessOrEqual(t, res.Stats.TotalPrice, 10200)
}

// Unknown weapon id is rejected before model construction, per §7.
func TestOptimize_UnknownWeaponIsNotFound(t *testing.T) {
	lookup := catalog.ItemLookup{}
	_, err := Optimize(context.Background(), lookup, DefaultConstraints("nope"))
	require.Error(t, err)
}

func TestDefaultConstraints_UsesSourceDefaultWeights(t *testing.T) {
	c := DefaultConstraints("W")
	assert.Equal(t, 1.0, c.ErgoWeight)
	assert.Equal(t, 1.0, c.RecoilWeight)
	assert.Equal(t, 0.0, c.PriceWeight)
	assert.True(t, c.FleaAvailable)
	assert.Equal(t, pricing.DefaultTraderLevels()[pricing.TraderPrapor], c.TraderLevels[pricing.TraderPrapor])
}
