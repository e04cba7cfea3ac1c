package mcts

import (
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

func TestRolloutFinishedPositions(t *testing.T) {
	is := is.New(t)
	r := rand.New(rand.NewPCG(1, 2))

	full := board.MustParse(tttRules, "XOX XOO OXX")
	outcome, plies := rollout(full, board.CirclePlayer, 8, r, nil)
	is.Equal(outcome, board.Draw)
	is.Equal(plies, 0)

	won := board.MustParse(tttRules, "XXX OO. ...")
	outcome, plies = rollout(won, board.CirclePlayer, 2, r, nil)
	is.Equal(outcome, board.CrossWon)
	is.Equal(plies, 0)
}

func TestRolloutPlaysToTheEnd(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 5, WinLength: 4}
	r := rand.New(rand.NewPCG(9, 9))
	buf := make([]int, 0, rules.Cells())

	for range 200 {
		b, _ := board.New(rules)
		outcome, plies := rollout(b, board.CrossPlayer, board.NoMove, r, buf)
		is.Equal(rules.Cells()-b.CountEmpty(), plies)

		crosses := 0
		for _, c := range b.Cells() {
			if c == board.Cross {
				crosses++
			}
		}
		is.Equal(crosses, (plies+1)/2)

		winner, ok := outcome.Winner()
		if !ok {
			is.True(b.IsFull())
			continue
		}
		found := false
		for i, c := range b.Cells() {
			if p, stone := c.Player(); stone && p == winner && b.IsWinningMove(i) {
				found = true
				break
			}
		}
		is.True(found)
	}
}
