package optimize

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/compatibility"
	"github.com/andrescamacho/gunsmith-go/internal/domain/shared"
)

// Axis names the dimension the Pareto Explorer leaves unconstrained while
// sweeping the others (§4.6).
type Axis string

const (
	AxisPrice  Axis = "price"
	AxisRecoil Axis = "recoil"
	AxisErgo   Axis = "ergo"
)

// pure single-axis objective weight vectors, per §4.6.
var (
	recoilOnlyWeights = [3]float64{0, 1, 0} // ergo, recoil, price
	ergoOnlyWeights   = [3]float64{1, 0, 0}
	priceOnlyWeights  = [3]float64{0, 0, 1}
)

// FrontierPoint is one sampled solution along the swept axis.
type FrontierPoint struct {
	Ergonomics       int
	RecoilPct        float64
	RecoilVertical   float64
	RecoilHorizontal float64
	Price            int
	Items            []ItemDetail
	Base             PresetDetail
	Status           string
}

// Explore runs the Pareto Explorer (§4.6). The ignored axis gets zero
// objective weight. Ergonomics (vertical recoil when ignore is AxisErgo) is
// driven through `steps` evenly spaced targets, each imposed as a hard
// constraint while the remaining axis is optimized; the resulting frontier
// points are deduplicated. A `steps` below 2 is raised to 2.
func Explore(ctx context.Context, lookup catalog.ItemLookup, c Constraints, ignore Axis, steps int) ([]FrontierPoint, error) {
	if steps < 2 {
		steps = 2
	}

	weapon, ok := lookup[c.WeaponID]
	if !ok || weapon.Kind != catalog.KindWeapon {
		return nil, shared.NewNotFoundError("weapon", c.WeaponID)
	}
	cm, err := compatibility.Build(c.WeaponID, lookup)
	if err != nil {
		return nil, err
	}

	run := func(weights [3]float64, overrides Constraints) Result {
		cc := c
		cc.ErgoWeight, cc.RecoilWeight, cc.PriceWeight = weights[0], weights[1], weights[2]
		if overrides.MinErgonomics != nil {
			cc.MinErgonomics = overrides.MinErgonomics
		}
		if overrides.MaxRecoilV != nil {
			cc.MaxRecoilV = overrides.MaxRecoilV
		}
		return optimizeWithMap(ctx, weapon, lookup, cm, cc)
	}

	var frontier []FrontierPoint

	switch ignore {
	case AxisRecoil:
		frontier = sweepErgo(run, c, priceOnlyWeights, steps)
	case AxisErgo:
		frontier = sweepRecoil(run, c, weapon, steps)
	default: // AxisPrice, and any unrecognized value defaults to price per §4.6
		frontier = sweepErgo(run, c, recoilOnlyWeights, steps)
	}

	return dedupFrontier(frontier), nil
}

// sweepErgo drives the ergonomics axis from its feasible minimum (under
// sampleWeights) to its feasible maximum (under ergo-only weights), used by
// both the "price" and "recoil" ignore modes — they differ only in which
// weight vector is used for the actual sampled solve, which the caller
// passes as sampleWeights.
func sweepErgo(run func([3]float64, Constraints) Result, c Constraints, sampleWeights [3]float64, steps int) []FrontierPoint {
	low := run(sampleWeights, Constraints{})
	if low.Status == "infeasible" {
		return nil
	}
	high := run(ergoOnlyWeights, Constraints{})

	rangeMin := low.Stats.Ergonomics
	rangeMax := 100
	if high.Status != "infeasible" {
		rangeMax = high.Stats.Ergonomics
	}
	if c.MinErgonomics != nil && *c.MinErgonomics > rangeMin {
		rangeMin = *c.MinErgonomics
	}
	if rangeMin < 0 {
		rangeMin = 0
	}
	if rangeMax > 100 {
		rangeMax = 100
	}
	if rangeMax <= rangeMin {
		rangeMax = rangeMin + 1
	}

	targets := make([]float64, steps)
	floats.Span(targets, float64(rangeMin), float64(rangeMax))

	var frontier []FrontierPoint
	for _, t := range targets {
		target := int(t)
		res := run(sampleWeights, Constraints{MinErgonomics: &target})
		if res.Status != "infeasible" {
			frontier = append(frontier, toFrontierPoint(res))
		}
	}
	return frontier
}

// sweepRecoil implements ignore == "ergo": the sampled solve always uses
// price-only weights, and the swept variable is MaxRecoilV rather than
// MinErgonomics.
func sweepRecoil(run func([3]float64, Constraints) Result, c Constraints, weapon *catalog.Item, steps int) []FrontierPoint {
	low := run(recoilOnlyWeights, Constraints{})
	if low.Status == "infeasible" {
		return nil
	}
	high := run(priceOnlyWeights, Constraints{})

	rangeMin := float64(low.Stats.RecoilVertical)
	rangeMax := float64(weapon.Stats.NakedRecoilVertical)
	if weapon.Stats.NakedRecoilVertical == 0 {
		rangeMax = 100
	}
	if high.Status != "infeasible" {
		rangeMax = float64(high.Stats.RecoilVertical)
	}
	if c.MaxRecoilV != nil && float64(*c.MaxRecoilV) < rangeMax {
		rangeMax = float64(*c.MaxRecoilV)
	}
	if rangeMax <= rangeMin {
		rangeMax = rangeMin + 1
	}

	targets := make([]float64, steps)
	floats.Span(targets, rangeMin, rangeMax)

	var frontier []FrontierPoint
	for _, t := range targets {
		target := int(t)
		res := run(priceOnlyWeights, Constraints{MaxRecoilV: &target})
		if res.Status != "infeasible" {
			frontier = append(frontier, toFrontierPoint(res))
		}
	}
	return frontier
}

func toFrontierPoint(res Result) FrontierPoint {
	return FrontierPoint{
		Ergonomics:       res.Stats.Ergonomics,
		RecoilPct:        math.Round((res.Stats.RecoilMultiplier-1)*100*10) / 10,
		RecoilVertical:   math.Round(float64(res.Stats.RecoilVertical)*10) / 10,
		RecoilHorizontal: math.Round(float64(res.Stats.RecoilHorizontal)*10) / 10,
		Price:            res.Stats.TotalPrice,
		Items:            res.Items,
		Base:             res.Base,
		Status:           res.Status,
	}
}

// dedupFrontier drops repeated (ergo, recoil_v, price) triples, per §4.6.
func dedupFrontier(points []FrontierPoint) []FrontierPoint {
	type key struct {
		ergo    int
		recoilV float64
		price   int
	}
	seen := make(map[key]bool, len(points))
	out := make([]FrontierPoint, 0, len(points))
	for _, p := range points {
		k := key{p.Ergonomics, p.RecoilVertical, p.Price}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
