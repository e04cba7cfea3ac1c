package board

import (
	"errors"
	"fmt"
	"strings"
)

// NoMove is returned when there is no legal move, and used as the
// previous move of a game that has not started yet
const NoMove = -1

type Cell uint8

const (
	Empty  Cell = 0
	Cross  Cell = 1
	Circle Cell = 2
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Cross:
		return "X"
	case Circle:
		return "O"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// Player is the side to move, it never holds the 'empty' value
type Player uint8

const (
	CrossPlayer  Player = 1
	CirclePlayer Player = 2
)

// Opponent flips the turn
func (p Player) Opponent() Player {
	switch p {
	case CrossPlayer:
		return CirclePlayer
	case CirclePlayer:
		return CrossPlayer
	}
	panic(fmt.Sprintf("board: invalid player %d", uint8(p)))
}

// Cell occupied by this player
func (p Player) Cell() Cell {
	switch p {
	case CrossPlayer:
		return Cross
	case CirclePlayer:
		return Circle
	}
	panic(fmt.Sprintf("board: invalid player %d", uint8(p)))
}

func (p Player) Valid() bool {
	return p == CrossPlayer || p == CirclePlayer
}

func (p Player) String() string {
	switch p {
	case CrossPlayer:
		return "cross"
	case CirclePlayer:
		return "circle"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

var ErrInvalidPlayer = errors.New("board: invalid player")

// ParsePlayer accepts "cross"/"x" and "circle"/"o", case insensitive
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cross", "x":
		return CrossPlayer, nil
	case "circle", "o":
		return CirclePlayer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
}

// Returns the player owning this cell, false for empty cells
func (c Cell) Player() (Player, bool) {
	switch c {
	case Cross:
		return CrossPlayer, true
	case Circle:
		return CirclePlayer, true
	}
	return 0, false
}

// Outcome of a finished game or a random playout
type Outcome uint8

const (
	Draw      Outcome = 0
	CrossWon  Outcome = 1
	CircleWon Outcome = 2
)

// WinFor returns the outcome in which given player won
func WinFor(p Player) Outcome {
	switch p {
	case CrossPlayer:
		return CrossWon
	case CirclePlayer:
		return CircleWon
	}
	panic(fmt.Sprintf("board: invalid player %d", uint8(p)))
}

// Winner of the outcome, false on a draw
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case CrossWon:
		return CrossPlayer, true
	case CircleWon:
		return CirclePlayer, true
	}
	return 0, false
}

// Score from given player's perspective: +1 win, -1 loss, 0 draw
func (o Outcome) Score(p Player) int {
	winner, ok := o.Winner()
	switch {
	case !ok:
		return 0
	case winner == p:
		return 1
	default:
		return -1
	}
}

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case CrossWon:
		return "cross won"
	case CircleWon:
		return "circle won"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}
