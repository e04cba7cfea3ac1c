package board

import (
	"errors"
	"fmt"
)

const (
	DefaultSize      = 9
	DefaultWinLength = 5
)

var ErrInvalidRules = errors.New("board: invalid rules")

// Rules of the game: n x n grid, K in a row wins
type Rules struct {
	Size      int `json:"size" yaml:"size"`
	WinLength int `json:"win_length" yaml:"win_length"`
}

func DefaultRules() Rules {
	return Rules{Size: DefaultSize, WinLength: DefaultWinLength}
}

func (r Rules) Validate() error {
	if r.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidRules, r.Size)
	}
	if r.WinLength < 1 || r.WinLength > r.Size {
		return fmt.Errorf("%w: win length %d on a %dx%d board", ErrInvalidRules, r.WinLength, r.Size, r.Size)
	}
	return nil
}

// Number of cells on the board
func (r Rules) Cells() int {
	return r.Size * r.Size
}

func (r Rules) String() string {
	return fmt.Sprintf("%dx%d/%d", r.Size, r.Size, r.WinLength)
}
