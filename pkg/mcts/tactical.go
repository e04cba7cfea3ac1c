package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

// ProbeResult is the verdict of the 4-ply tactical probe
type ProbeResult struct {
	Status TacticalStatus
	// Winning move on ImmediateWin, one of the best moves on SomeForcedLoss,
	// board.NoMove otherwise
	Move int
	// Every ply-1 move whose worst case ties the best one found
	Approved []int
	// Best worst-case value: 1 win, 0 unresolved, -1 loss
	Value int
	// Number of legal ply-1 moves
	Legal int
}

// Every legal move loses within the horizon, restricting the search is pointless
func (r ProbeResult) AllMovesLose() bool {
	return r.Status == SomeForcedLoss && r.Value == lossValue
}

func (r ProbeResult) String() string {
	return fmt.Sprintf("ProbeResult{status=%v move=%d value=%d approved=%v legal=%d}",
		r.Status, r.Move, r.Value, r.Approved, r.Legal)
}

// TacticalProbe searches every line of at most 4 plies from b, with player to
// move first. The player maximizes, the opponent minimizes, a branch is cut as
// soon as a move completes a line. Stones placed during the scan are always
// removed, b is left as it was
func TacticalProbe(b *board.Board, player board.Player) ProbeResult {
	opponent := player.Opponent()
	result := ProbeResult{
		Status: NoForcedOutcome,
		Move:   board.NoMove,
		Value:  lossValue,
		Legal:  b.CountEmpty(),
	}

	worst := winValue
	for i1 := 0; i1 < b.Len(); i1++ {
		if b.At(i1) != board.Empty {
			continue
		}

		b.Place(i1, player)
		if b.IsWinningMove(i1) {
			b.Clear(i1)
			result.Status = ImmediateWin
			result.Move = i1
			result.Approved = []int{i1}
			result.Value = winValue
			return result
		}
		value := probeOpponentPly(b, player, opponent)
		b.Clear(i1)

		if len(result.Approved) == 0 || value > result.Value {
			result.Value = value
			result.Approved = []int{i1}
		} else if value == result.Value {
			result.Approved = append(result.Approved, i1)
		}
		worst = min(worst, value)
	}

	if result.Legal == 0 {
		result.Value = drawValue
		return result
	}

	// Losing is possible with some move (or unavoidable with every one)
	if worst == lossValue {
		result.Status = SomeForcedLoss
		result.Move = result.Approved[0]
	}
	return result
}

// Ply 2: the opponent picks the minimum
func probeOpponentPly(b *board.Board, player, opponent board.Player) int {
	value := winValue
	moved := false
	for i2 := 0; i2 < b.Len(); i2++ {
		if b.At(i2) != board.Empty {
			continue
		}
		moved = true

		b.Place(i2, opponent)
		if b.IsWinningMove(i2) {
			b.Clear(i2)
			return lossValue
		}
		value = min(value, probePlayerPly(b, player, opponent))
		b.Clear(i2)

		if value == lossValue {
			break
		}
	}

	if !moved {
		return drawValue
	}
	return value
}

// Ply 3: the player picks the maximum
func probePlayerPly(b *board.Board, player, opponent board.Player) int {
	value := lossValue
	moved := false
	for i3 := 0; i3 < b.Len(); i3++ {
		if b.At(i3) != board.Empty {
			continue
		}
		moved = true

		b.Place(i3, player)
		if b.IsWinningMove(i3) {
			b.Clear(i3)
			return winValue
		}
		value = max(value, probeLastPly(b, opponent))
		b.Clear(i3)
	}

	if !moved {
		return drawValue
	}
	return value
}

// Ply 4: the horizon, the opponent either completes a line or the branch is unresolved
func probeLastPly(b *board.Board, opponent board.Player) int {
	for i4 := 0; i4 < b.Len(); i4++ {
		if b.At(i4) != board.Empty {
			continue
		}

		b.Place(i4, opponent)
		won := b.IsWinningMove(i4)
		b.Clear(i4)

		if won {
			return lossValue
		}
	}
	return drawValue
}
