package mcts

import (
	"math/rand/v2"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

// Plays uniformly random moves on b until someone completes a line or the
// board is full. lastMove is the move that produced b (board.NoMove if none),
// turn is the side to move. Mutates b, returns the outcome and the number
// of plies played. buf is scratch space for the empty cells
func rollout(b *board.Board, turn board.Player, lastMove int, r *rand.Rand, buf []int) (board.Outcome, int) {
	plies := 0
	for {
		if lastMove != board.NoMove && b.IsWinningMove(lastMove) {
			// The player who moved before 'turn' completed the line
			return board.WinFor(turn.Opponent()), plies
		}

		buf = b.AppendEmpty(buf[:0])
		if len(buf) == 0 {
			return board.Draw, plies
		}

		lastMove = buf[r.IntN(len(buf))]
		b.Place(lastMove, turn)
		turn = turn.Opponent()
		plies++
	}
}
