// Package game keeps the state of an interactive game: the board, the move
// history, whose turn it is and the score over consecutive games.
package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

var (
	ErrGameOver      = errors.New("game: the game is over")
	ErrNotYourTurn   = errors.New("game: it's the computer's turn")
	ErrNoComputer    = errors.New("game: no computer player")
	ErrNothingToUndo = errors.New("game: nothing to undo")
	ErrBadCoords     = errors.New("game: expected 'column row'")
)

// Wins and draws over the games of a session
type Score struct {
	CrossWins  int
	CircleWins int
	Draws      int
}

// Engine picks the computer's moves, *mcts.MCTS satisfies it
type Engine interface {
	Rules() board.Rules
	Options() mcts.Options
	DecideMove(b *board.Board, previousMove int) (int, error)
}

type decision struct {
	move int
	err  error
}

// Session is a sequence of games on the same rules. Cross always moves first.
// With an engine attached, the engine plays its configured side and the person
// the other one; without it two people take turns
type Session struct {
	rules   board.Rules
	board   *board.Board
	history []int
	turn    board.Player
	outcome board.Outcome
	over    bool
	score   Score

	engine  Engine
	delay   time.Duration
	pending chan decision // decision abandoned by a cancelled ComputerMove
}

// NewSession starts the first game, engine may be nil
func NewSession(rules board.Rules, engine Engine, delay time.Duration) (*Session, error) {
	b, err := board.New(rules)
	if err != nil {
		return nil, err
	}
	if engine != nil && engine.Rules() != rules {
		return nil, fmt.Errorf("%w: engine plays %v, game is %v", mcts.ErrRulesMismatch, engine.Rules(), rules)
	}

	return &Session{
		rules:   rules,
		board:   b,
		history: make([]int, 0, rules.Cells()),
		turn:    board.CrossPlayer,
		engine:  engine,
		delay:   delay,
	}, nil
}

// Reset starts a new game, the score is kept
func (s *Session) Reset() {
	s.board, _ = board.New(s.rules)
	s.history = s.history[:0]
	s.turn = board.CrossPlayer
	s.over = false
	s.outcome = board.Draw
}

func (s *Session) Rules() board.Rules {
	return s.rules
}

// Copy of the current position
func (s *Session) Board() *board.Board {
	return s.board.Clone()
}

func (s *Session) Turn() board.Player {
	return s.turn
}

func (s *Session) History() []int {
	return append([]int(nil), s.history...)
}

// Last played move, board.NoMove at the start of a game
func (s *Session) LastMove() int {
	if len(s.history) == 0 {
		return board.NoMove
	}
	return s.history[len(s.history)-1]
}

// Outcome of the game, false while it's still running
func (s *Session) Result() (board.Outcome, bool) {
	return s.outcome, s.over
}

func (s *Session) Score() Score {
	return s.score
}

func (s *Session) VsComputer() bool {
	return s.engine != nil
}

// Side played by the computer, false without an engine
func (s *Session) ComputerSide() (board.Player, bool) {
	if s.engine == nil {
		return 0, false
	}
	return s.engine.Options().Player, true
}

func (s *Session) ComputerTurn() bool {
	side, ok := s.ComputerSide()
	return ok && !s.over && side == s.turn
}

// Play a person's move
func (s *Session) Play(idx int) error {
	if s.over {
		return ErrGameOver
	}
	if s.ComputerTurn() {
		return ErrNotYourTurn
	}
	return s.place(idx)
}

func (s *Session) place(idx int) error {
	if err := s.board.Play(idx, s.turn); err != nil {
		return err
	}
	s.history = append(s.history, idx)

	if outcome, over := board.Terminal(s.board, idx); over {
		s.finish(outcome)
		return nil
	}
	s.turn = s.turn.Opponent()
	return nil
}

func (s *Session) finish(outcome board.Outcome) {
	s.over = true
	s.outcome = outcome
	switch outcome {
	case board.CrossWon:
		s.score.CrossWins++
	case board.CircleWon:
		s.score.CircleWins++
	default:
		s.score.Draws++
	}
	log.Debug().Str("outcome", outcome.String()).Int("moves", len(s.history)).Msg("game over")
}

// ComputerMove asks the engine for its move and places it, no sooner than the
// session's delay after the call. The engine runs in its own goroutine; if ctx
// is cancelled first, the move is dropped and the next call waits for that
// search to finish, so the engine never runs two decisions at once
func (s *Session) ComputerMove(ctx context.Context) (int, error) {
	if s.engine == nil {
		return board.NoMove, ErrNoComputer
	}
	if !s.ComputerTurn() {
		if s.over {
			return board.NoMove, ErrGameOver
		}
		return board.NoMove, fmt.Errorf("game: it's the person's turn")
	}

	if s.pending != nil {
		select {
		case <-s.pending:
			s.pending = nil
		case <-ctx.Done():
			return board.NoMove, ctx.Err()
		}
	}

	done := make(chan decision, 1)
	position, last := s.board.Clone(), s.LastMove()
	go func() {
		move, err := s.engine.DecideMove(position, last)
		done <- decision{move: move, err: err}
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	var d decision
	select {
	case d = <-done:
	case <-ctx.Done():
		s.pending = done
		return board.NoMove, ctx.Err()
	}
	select {
	case <-timer.C:
	case <-ctx.Done():
		return board.NoMove, ctx.Err()
	}

	if d.err != nil {
		if errors.Is(d.err, mcts.ErrBoardFull) {
			s.finish(board.Draw)
		}
		return board.NoMove, d.err
	}
	return d.move, s.place(d.move)
}

// Undo takes back the last move. Against the computer it also takes back the
// computer's reply, so it's the person's turn again
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	s.undoOne()

	if side, ok := s.ComputerSide(); ok && s.turn == side && len(s.history) > 0 {
		s.undoOne()
	}
	return nil
}

func (s *Session) undoOne() {
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	// The cell's owner moves again
	s.turn, _ = s.board.At(last).Player()
	s.board.Clear(last)

	if s.over {
		switch s.outcome {
		case board.CrossWon:
			s.score.CrossWins--
		case board.CircleWon:
			s.score.CircleWins--
		default:
			s.score.Draws--
		}
		s.over = false
		s.outcome = board.Draw
	}
}

// ParseCoords reads "column row" (1-based, separated by a space or a comma)
// and returns the cell index
func ParseCoords(rules board.Rules, text string) (int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return board.NoMove, fmt.Errorf("%w: %q", ErrBadCoords, text)
	}

	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return board.NoMove, fmt.Errorf("%w: %q", ErrBadCoords, text)
	}
	if x < 1 || y < 1 || x > rules.Size || y > rules.Size {
		return board.NoMove, fmt.Errorf("%w: (%d, %d) on a %dx%d board", board.ErrOutOfRange, x, y, rules.Size, rules.Size)
	}
	return (x - 1) + (y-1)*rules.Size, nil
}
