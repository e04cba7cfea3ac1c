package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-gomoku/internal/game"
	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

type renderer struct {
	out    *termenv.Output
	cross  termenv.Color
	circle termenv.Color
}

func newRenderer(w io.Writer) *renderer {
	out := termenv.NewOutput(w)
	return &renderer{
		out:    out,
		cross:  out.Color("#E88388"),
		circle: out.Color("#71BEF2"),
	}
}

func (r *renderer) stone(c board.Cell, last bool) string {
	style := r.out.String(c.String())
	switch c {
	case board.Cross:
		style = style.Foreground(r.cross).Bold()
	case board.Circle:
		style = style.Foreground(r.circle).Bold()
	default:
		style = style.Faint()
	}
	if last {
		style = style.Reverse()
	}
	return style.String()
}

// Board with 1-based column and row labels, the last move is highlighted
func (r *renderer) board(w io.Writer, b *board.Board, last int) {
	n := b.Size()
	var sb strings.Builder

	sb.WriteString("    ")
	for x := 1; x <= n; x++ {
		fmt.Fprintf(&sb, "%-3d", x)
	}
	sb.WriteString("\n")

	for y := range n {
		fmt.Fprintf(&sb, "%3d ", y+1)
		for x := range n {
			idx := b.Index(x, y)
			sb.WriteString(r.stone(b.At(idx), idx == last))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}

func (r *renderer) status(w io.Writer, s *game.Session) {
	score := s.Score()
	fmt.Fprintf(w, "%s %d  %s %d  draws %d\n",
		r.stone(board.Cross, false), score.CrossWins,
		r.stone(board.Circle, false), score.CircleWins,
		score.Draws)

	if outcome, over := s.Result(); over {
		msg := r.out.String(outcome.String()).Bold()
		fmt.Fprintf(w, "Game over: %s. Type 'new' to play again.\n", msg)
		return
	}

	who := s.Turn().String()
	if s.ComputerTurn() {
		who += " (computer)"
	}
	fmt.Fprintf(w, "To move: %s\n", who)
}

func (r *renderer) clear() {
	r.out.ClearScreen()
}
