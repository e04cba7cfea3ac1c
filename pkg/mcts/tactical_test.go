package mcts

import (
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

// Plain recursive minimax over the same horizon, without any cutoffs
func referenceValue(b *board.Board, mover, player board.Player, ply int) int {
	if ply > 4 {
		return drawValue
	}
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return drawValue
	}

	maximizing := mover == player
	best := 2
	if maximizing {
		best = -2
	}
	for _, mv := range empty {
		b.Place(mv, mover)
		var value int
		switch {
		case b.IsWinningMove(mv) && maximizing:
			value = winValue
		case b.IsWinningMove(mv):
			value = lossValue
		default:
			value = referenceValue(b, mover.Opponent(), player, ply+1)
		}
		b.Clear(mv)

		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

func randomPosition(r *rand.Rand, rules board.Rules, stones int) (*board.Board, board.Player) {
	b, _ := board.New(rules)
	turn := board.CrossPlayer
	for range stones {
		empty := b.EmptyCells()
		mv := empty[r.IntN(len(empty))]
		b.Place(mv, turn)
		turn = turn.Opponent()
	}
	return b, turn
}

func TestProbeMatchesReference(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 4, WinLength: 3}
	r := rand.New(rand.NewPCG(3, 5))

	for range 150 {
		b, player := randomPosition(r, rules, 4+r.IntN(3))
		before := b.Clone()
		result := TacticalProbe(b, player)
		is.True(b.Equal(before))
		is.Equal(result.Legal, b.CountEmpty())

		firstWin := board.NoMove
		values := make(map[int]int)
		best, worst := lossValue, winValue
		for _, mv := range b.EmptyCells() {
			b.Place(mv, player)
			if b.IsWinningMove(mv) && firstWin == board.NoMove {
				firstWin = mv
			}
			values[mv] = referenceValue(b, player.Opponent(), player, 2)
			b.Clear(mv)
			best = max(best, values[mv])
			worst = min(worst, values[mv])
		}

		if firstWin != board.NoMove {
			is.Equal(result.Status, ImmediateWin)
			is.Equal(result.Move, firstWin)
			continue
		}

		var approved []int
		for _, mv := range b.EmptyCells() {
			if values[mv] == best {
				approved = append(approved, mv)
			}
		}
		is.Equal(result.Approved, approved)
		is.Equal(result.Value, best)

		if worst == lossValue {
			is.Equal(result.Status, SomeForcedLoss)
			is.Equal(result.Move, approved[0])
		} else {
			is.Equal(result.Status, NoForcedOutcome)
			is.Equal(result.Move, board.NoMove)
		}
	}
}

func TestProbeImmediateWin(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 5, WinLength: 4}
	b := board.MustParse(rules, `
		. . . . .
		. O O O .
		X X X . .
		. . . . .
		. . . . .`)
	before := b.Clone()

	result := TacticalProbe(b, board.CirclePlayer)
	is.Equal(result.Status, ImmediateWin)
	is.Equal(result.Move, 5)
	is.Equal(result.Value, winValue)
	is.True(b.Equal(before))

	b.Place(result.Move, board.CirclePlayer)
	is.True(b.IsWinningMove(result.Move))
}

func TestProbeSingleBlock(t *testing.T) {
	is := is.New(t)
	b := board.MustParse(tttRules, `
		O . .
		X X .
		. . .`)

	result := TacticalProbe(b, board.CirclePlayer)
	is.Equal(result.Status, SomeForcedLoss)
	is.Equal(result.Approved, []int{5})
	is.Equal(result.Move, 5)
	is.Equal(result.Value, drawValue)
	is.True(!result.AllMovesLose())
}

// An open two with K=3 can't be stopped, every move loses
func TestProbeAllMovesLose(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 6, WinLength: 3}
	b := board.MustParse(rules, `
		. . . . . .
		. . . . . .
		. . X X . .
		. . . . . .
		. . . . . .
		. . . . . .`)

	result := TacticalProbe(b, board.CirclePlayer)
	is.Equal(result.Status, SomeForcedLoss)
	is.True(result.AllMovesLose())
	is.Equal(result.Value, lossValue)
	is.Equal(len(result.Approved), 34)
	is.Equal(result.Move, 0)
}

func TestProbeQuietPosition(t *testing.T) {
	is := is.New(t)
	rules := board.Rules{Size: 5, WinLength: 4}
	b := board.MustParse(rules, `
		. . . . .
		. . . . .
		. . X O .
		. . . . .
		. . . . .`)

	result := TacticalProbe(b, board.CrossPlayer)
	is.Equal(result.Status, NoForcedOutcome)
	is.Equal(result.Move, board.NoMove)
	is.Equal(result.Value, drawValue)
	is.Equal(len(result.Approved), 23)
}

func TestProbeEdgeBoards(t *testing.T) {
	is := is.New(t)

	full := board.MustParse(tttRules, "XOX XOO OXX")
	result := TacticalProbe(full, board.CirclePlayer)
	is.Equal(result.Status, NoForcedOutcome)
	is.Equal(result.Legal, 0)
	is.Equal(result.Move, board.NoMove)
	is.Equal(result.Value, drawValue)

	// The last empty cell, nothing left to answer with
	last := board.MustParse(tttRules, "XOX XOO OX.")
	result = TacticalProbe(last, board.CrossPlayer)
	is.Equal(result.Status, NoForcedOutcome)
	is.Equal(result.Approved, []int{8})

	single, _ := board.New(board.Rules{Size: 1, WinLength: 1})
	result = TacticalProbe(single, board.CrossPlayer)
	is.Equal(result.Status, ImmediateWin)
	is.Equal(result.Move, 0)
}
