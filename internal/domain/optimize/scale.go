// Package optimize builds and solves the integer program that chooses a
// weapon's modification loadout, and drives the Pareto frontier explorer
// above it.
package optimize

// The solver works in integers; every fractional quantity is scaled by one
// of these factors before being summed into a constraint or objective term
// (§9 "Scaled arithmetic").
const (
	// ErgoScale scales ergonomics so fractional averaging doesn't need
	// floating point inside the solver.
	ErgoScale = 10
	// RecoilScale scales the fractional recoil modifier.
	RecoilScale = 1000
	// WeightScale scales item/weapon weight (kg) to integer grams-ish units.
	WeightScale = 1000
	// ObjectiveScale scales every objective coefficient to a common integer
	// base before summation.
	ObjectiveScale = 1000
)
