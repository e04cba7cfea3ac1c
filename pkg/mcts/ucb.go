package mcts

import (
	"math"

	"github.com/samber/lo"
)

// Candidate picked by a selection with explicit random tie-breaking:
// the highest value wins, exact ties go to the highest random key
type tieBreaker struct {
	index int
	value float64
	key   uint64
}

func newTieBreaker() tieBreaker {
	return tieBreaker{index: -1, value: math.Inf(-1)}
}

func (t *tieBreaker) offer(index int, value float64, key uint64) {
	if t.index == -1 || value > t.value || (value == t.value && key > t.key) {
		t.index = index
		t.value = value
		t.key = key
	}
}

// Root children may be restricted to the tactical probe's approved moves,
// any other node allows every child
func (s *search) allowed(parent, child *Node) bool {
	if s.approved == nil || parent.Depth != 0 {
		return true
	}
	return lo.Contains(s.approved, child.Move)
}

// UCT: mean + 2*C*sqrt(ln(N)/n), the automated player maximizes, the
// opponent minimizes (the exploration bonus is applied with the turn's sign)
func (s *search) selectUCT(parent *Node) *Node {
	sign := 1.0
	if parent.Turn != s.player {
		sign = -1.0
	}

	lnParentVisits := 0.0
	if parent.N() > 0 {
		lnParentVisits = math.Log(float64(parent.N()))
	}

	best := newTieBreaker()
	for i := range parent.Children {
		child := &parent.Children[i]
		if !s.allowed(parent, child) {
			continue
		}

		visits := float64(child.N()) + VisitFloor
		mean := float64(child.Score()) / visits
		bonus := 0.0
		if parent.N() > 0 {
			bonus = 2 * s.exploration * math.Sqrt(lnParentVisits/visits)
		}
		biased := mean + bonus*sign
		best.offer(i, biased*sign, s.rng.Uint64())
	}

	if best.index == -1 {
		return nil
	}
	return &parent.Children[best.index]
}

// Uniformly random child among the allowed ones
func (s *search) selectRandom(parent *Node) *Node {
	if s.approved == nil || parent.Depth != 0 {
		return &parent.Children[s.rng.IntN(len(parent.Children))]
	}

	candidates := lo.Filter(lo.Range(len(parent.Children)), func(i int, _ int) bool {
		return lo.Contains(s.approved, parent.Children[i].Move)
	})
	if len(candidates) == 0 {
		return nil
	}
	return &parent.Children[candidates[s.rng.IntN(len(candidates))]]
}

func (s *search) selectChild(parent *Node) *Node {
	if s.selection == SelectRandom {
		return s.selectRandom(parent)
	}
	return s.selectUCT(parent)
}

// BestChild returns the child to play after the search, honouring the root restriction
func (s *search) bestChild(parent *Node) *Node {
	best := newTieBreaker()
	for i := range parent.Children {
		child := &parent.Children[i]
		if !s.allowed(parent, child) {
			continue
		}
		switch s.bestChildPolicy {
		case BestChildMostVisits:
			best.offer(i, float64(child.N()), s.rng.Uint64())
		default:
			best.offer(i, child.Mean(), s.rng.Uint64())
		}
	}

	if best.index == -1 {
		return nil
	}
	return &parent.Children[best.index]
}
