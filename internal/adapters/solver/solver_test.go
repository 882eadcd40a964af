package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_SimpleKnapsack(t *testing.T) {
	// 3 items, values [10, 6, 4], weights [5, 4, 3], capacity 7.
	// Best: items 1+2 (value 10, weight 7) ties item 0 alone (value 10,
	// weight 5); either is optimal at value 10.
	p := &Problem{
		NumVars: 3,
		Obj:     []int64{10, 6, 4},
		Constraints: []Constraint{
			{
				Name:  "capacity",
				Terms: []Term{{Var: 0, Coef: 5}, {Var: 1, Coef: 4}, {Var: 2, Coef: 3}},
				Sense: LE,
				Bound: 7,
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sol := Solve(ctx, p)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, int64(10), sol.ObjectiveValue)
}

func TestSolve_Infeasible(t *testing.T) {
	p := &Problem{
		NumVars: 1,
		Obj:     []int64{1},
		Constraints: []Constraint{
			{Name: "impossible", Terms: []Term{{Var: 0, Coef: 1}}, Sense: GE, Bound: 2},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sol := Solve(ctx, p)
	assert.Equal(t, StatusInfeasible, sol.Status)
}

func TestSolve_EqualityConstraint(t *testing.T) {
	// Exactly one of 3 base variables must be 1; maximize the value of the
	// chosen one.
	p := &Problem{
		NumVars: 3,
		Obj:     []int64{1, 5, 3},
		Constraints: []Constraint{
			{
				Name:  "exactly-one-base",
				Terms: []Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}, {Var: 2, Coef: 1}},
				Sense: EQ,
				Bound: 1,
			},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sol := Solve(ctx, p)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, int64(5), sol.ObjectiveValue)
	assert.Equal(t, []int{0, 1, 0}, sol.Assignment)
}

func TestSolve_ConflictPair(t *testing.T) {
	p := &Problem{
		NumVars: 2,
		Obj:     []int64{4, 4},
		Constraints: []Constraint{
			{Name: "conflict", Terms: []Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}, Sense: LE, Bound: 1},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sol := Solve(ctx, p)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, int64(4), sol.ObjectiveValue)
	assert.LessOrEqual(t, sol.Assignment[0]+sol.Assignment[1], 1)
}
