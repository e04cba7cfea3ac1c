package mcts

import (
	"testing"

	"github.com/matryer/is"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

func newTestSearch(t *testing.T, b *board.Board, opts Options) *search {
	t.Helper()
	engine, err := New(b.Rules(), DefaultLimits().SetTrials(100), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := engine.newSearch(b, board.NoMove)
	s.root.expand()
	return s
}

func setStats(node *Node, visits, score int32) {
	node.visits = visits
	node.score = score
}

func TestTieBreaker(t *testing.T) {
	is := is.New(t)

	tb := newTieBreaker()
	tb.offer(0, 1.0, 5)
	is.Equal(tb.index, 0)
	tb.offer(1, 1.0, 9)
	is.Equal(tb.index, 1)
	tb.offer(2, 0.5, 100)
	is.Equal(tb.index, 1)
	tb.offer(3, 2.0, 0)
	is.Equal(tb.index, 3)
}

func TestSelectUCTPrefersUnvisited(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)
	s := newTestSearch(t, b, DefaultOptions())

	setStats(s.root, 20, 0)
	for i := range s.root.Children {
		setStats(&s.root.Children[i], 2, 2)
	}
	setStats(&s.root.Children[6], 0, 0)

	is.Equal(s.selectUCT(s.root).Move, 6)
}

func TestSelectUCTOpponentMinimizes(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)
	s := newTestSearch(t, b, DefaultOptions())

	child := &s.root.Children[0]
	child.materialize(s.root)
	child.expand()
	is.Equal(child.Turn, board.CrossPlayer)

	setStats(child, 40, 0)
	for i := range child.Children {
		setStats(&child.Children[i], 5, 5)
	}
	// Worst for the automated player, best for the opponent
	setStats(&child.Children[3], 5, -5)

	is.Equal(s.selectUCT(child).Move, child.Children[3].Move)

	// The automated player at the root goes the other way
	setStats(s.root, 40, 0)
	for i := range s.root.Children {
		setStats(&s.root.Children[i], 5, -5)
	}
	setStats(&s.root.Children[2], 5, 5)
	is.Equal(s.selectUCT(s.root).Move, 2)
}

func TestRootRestriction(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)

	for _, selection := range []SelectionPolicy{SelectUCT, SelectRandom} {
		opts := DefaultOptions()
		opts.Selection = selection
		s := newTestSearch(t, b, opts)
		s.approved = []int{1, 7}

		setStats(s.root, 30, 0)
		for i := range s.root.Children {
			setStats(&s.root.Children[i], 3, 3)
		}
		setStats(&s.root.Children[1], 3, -3)
		setStats(&s.root.Children[7], 3, -3)

		for range 50 {
			move := s.selectChild(s.root).Move
			is.True(move == 1 || move == 7)
		}
		best := s.bestChild(s.root).Move
		is.True(best == 1 || best == 7)
	}
}

func TestRestrictionOnlyAtRoot(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)
	opts := DefaultOptions()
	opts.Selection = SelectRandom
	s := newTestSearch(t, b, opts)
	s.approved = []int{1}

	child := &s.root.Children[1]
	child.materialize(s.root)
	child.expand()

	seen := make(map[int]bool)
	for range 100 {
		seen[s.selectChild(child).Move] = true
	}
	is.True(len(seen) > 1)
}

func TestRestrictionWithoutCandidates(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)
	s := newTestSearch(t, b, DefaultOptions())
	s.approved = []int{}

	is.True(s.selectUCT(s.root) == nil)
	is.True(s.bestChild(s.root) == nil)
}

func TestBestChildBreaksTiesAtRandom(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)
	s := newTestSearch(t, b, DefaultOptions())

	seen := make(map[int]bool)
	for range 100 {
		seen[s.bestChild(s.root).Move] = true
	}
	is.True(len(seen) > 1)
}

func TestBestChildPolicies(t *testing.T) {
	is := is.New(t)
	b, _ := board.New(tttRules)

	opts := DefaultOptions()
	s := newTestSearch(t, b, opts)
	setStats(&s.root.Children[4], 100, 60)
	setStats(&s.root.Children[8], 3, 3)
	is.Equal(s.bestChild(s.root).Move, 8)

	opts.BestChild = BestChildMostVisits
	s = newTestSearch(t, b, opts)
	setStats(&s.root.Children[4], 100, 60)
	setStats(&s.root.Children[8], 3, 3)
	is.Equal(s.bestChild(s.root).Move, 4)
}

func TestRestrictedSearchOnlyVisitsApproved(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 4, WinLength: 3}
	b, _ := board.New(rules)
	engine := newEngine(t, rules, DefaultLimits().SetTrials(600), ModeMCTS, board.CrossPlayer)

	s := engine.newSearch(b, board.NoMove)
	s.approved = []int{5, 10}
	move := s.runTrials()
	is.True(move == 5 || move == 10)

	visited := 0
	for _, child := range s.root.Children {
		if child.Move == 5 || child.Move == 10 {
			visited += int(child.N())
			continue
		}
		is.Equal(child.N(), int32(0))
	}
	is.Equal(visited, 599)
}
