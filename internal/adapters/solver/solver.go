package solver

import "context"

// constraintBound tracks, for one constraint, the contribution already
// locked in by assigned variables (sum) plus the smallest and largest
// contribution the still-unassigned variables could add (minRem, maxRem).
// Both are recomputed incrementally as the search assigns and unassigns
// variables, giving an O(1)-amortized feasibility check per branch.
type constraintBound struct {
	c      *Constraint
	sum    int64
	minRem int64
	maxRem int64
}

func (b *constraintBound) feasible() bool {
	switch b.c.Sense {
	case LE:
		return b.sum+b.minRem <= b.c.Bound
	case GE:
		return b.sum+b.maxRem >= b.c.Bound
	default: // EQ
		return b.sum+b.minRem <= b.c.Bound && b.c.Bound <= b.sum+b.maxRem
	}
}

// search holds the mutable state threaded through the branch-and-bound
// recursion.
type search struct {
	p          *Problem
	ctx        context.Context
	bounds     []constraintBound
	varTerms   [][]int // constraint indices each variable participates in
	assignment []int8  // -1 unassigned, 0/1 otherwise
	objSum     int64
	objMaxRem  int64 // sum of max(0, obj coef) over unassigned vars

	best       int64
	bestAssign []int
	found      bool
	nodes      int
	deadlineHit bool
}

// Solve runs branch-and-bound search to (at most) optimality, honoring
// ctx's deadline as the 120-second wall-clock limit from §4.5. If the
// deadline passes before the full tree is explored, the best incumbent
// found so far (if any) is returned labeled StatusFeasible; with no
// incumbent at all, StatusInfeasible is returned.
func Solve(ctx context.Context, p *Problem) Solution {
	s := &search{
		p:          p,
		ctx:        ctx,
		assignment: make([]int8, p.NumVars),
		varTerms:   make([][]int, p.NumVars),
	}
	for i := range s.assignment {
		s.assignment[i] = -1
	}

	s.bounds = make([]constraintBound, len(p.Constraints))
	for ci := range p.Constraints {
		c := &p.Constraints[ci]
		b := constraintBound{c: c}
		for _, t := range c.Terms {
			s.varTerms[t.Var] = append(s.varTerms[t.Var], ci)
			if t.Coef > 0 {
				b.maxRem += t.Coef
			} else {
				b.minRem += t.Coef
			}
		}
		s.bounds[ci] = b
	}

	for v, coef := range p.Obj {
		if coef > 0 {
			s.objMaxRem += coef
		}
		_ = v
	}

	s.branch(0)

	if !s.found {
		return Solution{Status: StatusInfeasible, NodesExplored: s.nodes}
	}
	status := StatusOptimal
	if s.deadlineHit {
		status = StatusFeasible
	}
	return Solution{Status: status, Assignment: s.bestAssign, ObjectiveValue: s.best, NodesExplored: s.nodes}
}

// branch assigns variable idx to 0 then 1 (order chosen so the all-zero
// baseline is explored first, matching the objective's typical preference
// for inclusion only when it pays off), recursing until every variable is
// fixed.
func (s *search) branch(idx int) {
	s.nodes++
	if s.nodes%2048 == 0 {
		select {
		case <-s.ctx.Done():
			s.deadlineHit = true
		default:
		}
	}
	if s.deadlineHit {
		return
	}

	if idx == s.p.NumVars {
		if s.objSum > s.best || !s.found {
			s.found = true
			s.best = s.objSum
			s.bestAssign = append([]int(nil), s.intAssignment()...)
		}
		return
	}

	// Bound: even if every remaining variable takes its best-case objective
	// contribution, can we still beat the incumbent? If not, prune.
	if s.found && s.objSum+s.objMaxRem <= s.best {
		return
	}

	for _, val := range [2]int8{0, 1} {
		if !s.assign(idx, val) {
			s.unassign(idx, val)
			continue
		}
		s.branch(idx + 1)
		s.unassign(idx, val)
		if s.deadlineHit {
			return
		}
	}
}

// assign sets variable idx to val, updates every constraint it appears in,
// and returns false if doing so makes some constraint unsatisfiable by
// any completion.
func (s *search) assign(idx int, val int8) bool {
	s.assignment[idx] = val
	if val == 1 {
		s.objSum += s.p.Obj[idx]
	}
	if s.p.Obj[idx] > 0 {
		s.objMaxRem -= s.p.Obj[idx]
	}

	ok := true
	for _, ci := range s.varTerms[idx] {
		b := &s.bounds[ci]
		var coef int64
		for _, t := range b.c.Terms {
			if t.Var == idx {
				coef = t.Coef
				break
			}
		}
		if coef > 0 {
			b.maxRem -= coef
		} else {
			b.minRem -= coef
		}
		b.sum += coef * int64(val)
		if !b.feasible() {
			ok = false
		}
	}
	return ok
}

// unassign reverts the effect of assign for variable idx previously set to val.
func (s *search) unassign(idx int, val int8) {
	if s.assignment[idx] == -1 {
		return
	}
	s.assignment[idx] = -1
	if val == 1 {
		s.objSum -= s.p.Obj[idx]
	}
	if s.p.Obj[idx] > 0 {
		s.objMaxRem += s.p.Obj[idx]
	}

	for _, ci := range s.varTerms[idx] {
		b := &s.bounds[ci]
		var coef int64
		for _, t := range b.c.Terms {
			if t.Var == idx {
				coef = t.Coef
				break
			}
		}
		if coef > 0 {
			b.maxRem += coef
		} else {
			b.minRem += coef
		}
		b.sum -= coef * int64(val)
	}
}

func (s *search) intAssignment() []int {
	out := make([]int, len(s.assignment))
	for i, v := range s.assignment {
		if v == 1 {
			out[i] = 1
		}
	}
	return out
}
