package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrOutOfRange   = errors.New("board: move out of range")
	ErrOccupied     = errors.New("board: cell is occupied")
	ErrEmptyCell    = errors.New("board: cell is empty")
	ErrSizeMismatch = errors.New("board: cell count does not match rules")
	ErrInvalidCell  = errors.New("board: invalid cell value")
)

// Board is a snapshot of the n*n grid, index i maps to (i % n, i / n).
// The zero value is not usable, create it with New, FromCells or Parse
type Board struct {
	rules Rules
	cells []Cell
}

func New(rules Rules) (*Board, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Board{rules: rules, cells: make([]Cell, rules.Cells())}, nil
}

// FromCells copies given cells into a new board
func FromCells(rules Rules, cells []Cell) (*Board, error) {
	b, err := New(rules)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(b.cells) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(cells), len(b.cells))
	}
	for i, c := range cells {
		if c != Empty && c != Cross && c != Circle {
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidCell, uint8(c), i)
		}
	}
	copy(b.cells, cells)
	return b, nil
}

// Parse reads the board from text, '.' is an empty cell, 'X' cross and 'O' circle.
// Whitespace is ignored, so rows may be split into lines
func Parse(rules Rules, text string) (*Board, error) {
	cells := make([]Cell, 0, rules.Cells())
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		switch unicode.ToUpper(r) {
		case '.', '-':
			cells = append(cells, Empty)
		case 'X':
			cells = append(cells, Cross)
		case 'O':
			cells = append(cells, Circle)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidCell, r)
		}
	}
	return FromCells(rules, cells)
}

// MustParse is Parse that panics on error, meant for tests and fixed positions
func MustParse(rules Rules, text string) *Board {
	b, err := Parse(rules, text)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Rules() Rules {
	return b.rules
}

func (b *Board) Size() int {
	return b.rules.Size
}

// Number of cells
func (b *Board) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the cells
func (b *Board) Cells() []Cell {
	return append([]Cell(nil), b.cells...)
}

func (b *Board) Clone() *Board {
	return &Board{rules: b.rules, cells: append([]Cell(nil), b.cells...)}
}

// CopyFrom overwrites the cells with the other board's, rules must match
func (b *Board) CopyFrom(other *Board) {
	copy(b.cells, other.cells)
}

func (b *Board) InRange(idx int) bool {
	return idx >= 0 && idx < len(b.cells)
}

// At returns the cell at idx, caller must make sure the index is in range
func (b *Board) At(idx int) Cell {
	return b.cells[idx]
}

func (b *Board) Index(x, y int) int {
	return x + y*b.rules.Size
}

// Coords returns (column, row) of the index
func (b *Board) Coords(idx int) (int, int) {
	return idx % b.rules.Size, idx / b.rules.Size
}

// Play occupies the cell with player's color
func (b *Board) Play(idx int, p Player) error {
	if !b.InRange(idx) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, idx)
	}
	if b.cells[idx] != Empty {
		return fmt.Errorf("%w: %d", ErrOccupied, idx)
	}
	b.cells[idx] = p.Cell()
	return nil
}

// Clear empties the cell, used to undo moves
func (b *Board) Clear(idx int) {
	b.cells[idx] = Empty
}

// set is the unchecked version of Play, used by the search hot paths
func (b *Board) set(idx int, c Cell) {
	b.cells[idx] = c
}

// Place puts the player's stone without validation, search code
// uses it on cells it knows are empty
func (b *Board) Place(idx int, p Player) {
	b.set(idx, p.Cell())
}

// AppendEmpty appends indices of the empty cells in index order to dst
func (b *Board) AppendEmpty(dst []int) []int {
	for i, c := range b.cells {
		if c == Empty {
			dst = append(dst, i)
		}
	}
	return dst
}

func (b *Board) EmptyCells() []int {
	return b.AppendEmpty(make([]int, 0, len(b.cells)))
}

func (b *Board) CountEmpty() int {
	n := 0
	for _, c := range b.cells {
		if c == Empty {
			n++
		}
	}
	return n
}

func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Equal reports whether both boards have the same rules and cells
func (b *Board) Equal(other *Board) bool {
	if b.rules != other.rules {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board row by row
func (b *Board) String() string {
	var sb strings.Builder
	n := b.rules.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[x+y*n].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
