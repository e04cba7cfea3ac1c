package board

import "fmt"

// IsWinningMove reports whether the stone at idx completed a line of
// at least WinLength cells of its color. Out of range and empty cells
// are never winning. The board is not modified
func IsWinningMove(b *Board, idx int) bool {
	return b.IsWinningMove(idx)
}

func (b *Board) IsWinningMove(idx int) bool {
	if !b.InRange(idx) {
		return false
	}
	color := b.cells[idx]
	if color == Empty {
		return false
	}

	n := b.rules.Size
	k := b.rules.WinLength
	x, y := idx%n, idx/n

	// Horizontal, walk to the leftmost stone of the run, then count to the right
	tx := x
	for tx > 0 && b.cells[(tx-1)+y*n] == color {
		tx--
	}
	count := 1
	for tx < n-1 && b.cells[(tx+1)+y*n] == color {
		count++
		tx++
	}
	if count >= k {
		return true
	}

	// Directions with a vertical component, one row per step:
	// dx = -1 up-right/down-left, 0 vertical, 1 up-left/down-right
	for dx := -1; dx <= 1; dx++ {
		tx, ty := x, y
		for ty > 0 && tx-dx >= 0 && tx-dx < n && b.cells[(tx-dx)+(ty-1)*n] == color {
			tx -= dx
			ty--
		}
		count = 1
		for ty < n-1 && tx+dx >= 0 && tx+dx < n && b.cells[(tx+dx)+(ty+1)*n] == color {
			count++
			tx += dx
			ty++
		}
		if count >= k {
			return true
		}
	}
	return false
}

// CheckMove validates a move index played on the board,
// returns nil if idx is in range and holds a stone
func CheckMove(b *Board, idx int) error {
	if !b.InRange(idx) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, idx)
	}
	if b.cells[idx] == Empty {
		return fmt.Errorf("%w: %d", ErrEmptyCell, idx)
	}
	return nil
}

// Terminal evaluates the position after the move at last was played,
// returns (outcome, true) if the game is over
func Terminal(b *Board, last int) (Outcome, bool) {
	if b.IsWinningMove(last) {
		p, _ := b.cells[last].Player()
		return WinFor(p), true
	}
	if b.IsFull() {
		return Draw, true
	}
	return Draw, false
}
