package game

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

var tttRules = board.Rules{Size: 3, WinLength: 3}

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func playAll(is *is.I, s *Session, moves ...int) {
	for _, mv := range moves {
		is.NoErr(s.Play(mv))
	}
}

func TestTwoPeopleWinAndUndo(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(tttRules, nil, 0)
	is.NoErr(err)
	is.True(!s.VsComputer())

	playAll(is, s, 0, 3, 1, 4, 2)
	outcome, over := s.Result()
	is.True(over)
	is.Equal(outcome, board.CrossWon)
	is.Equal(s.Score(), Score{CrossWins: 1})
	is.True(errors.Is(s.Play(8), ErrGameOver))

	is.NoErr(s.Undo())
	_, over = s.Result()
	is.True(!over)
	is.Equal(s.Score(), Score{})
	is.Equal(s.Turn(), board.CrossPlayer)
	is.Equal(s.Board().At(2), board.Empty)
	is.Equal(s.LastMove(), 4)

	// Two people: a single move is taken back
	is.NoErr(s.Undo())
	is.Equal(s.Turn(), board.CirclePlayer)
	is.Equal(s.History(), []int{0, 3, 1})
}

func TestDrawAndReset(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(tttRules, nil, 0)
	is.NoErr(err)

	playAll(is, s, 0, 1, 2, 4, 3, 5, 7, 6, 8)
	outcome, over := s.Result()
	is.True(over)
	is.Equal(outcome, board.Draw)
	is.Equal(s.Score().Draws, 1)

	s.Reset()
	_, over = s.Result()
	is.True(!over)
	is.Equal(s.LastMove(), board.NoMove)
	is.Equal(s.Board().CountEmpty(), 9)
	is.Equal(s.Score().Draws, 1)
	is.True(errors.Is(s.Undo(), ErrNothingToUndo))
}

func TestInvalidMoves(t *testing.T) {
	is := is.New(t)
	s, err := NewSession(tttRules, nil, 0)
	is.NoErr(err)

	is.NoErr(s.Play(4))
	is.True(errors.Is(s.Play(4), board.ErrOccupied))
	is.True(errors.Is(s.Play(9), board.ErrOutOfRange))
	is.Equal(s.Turn(), board.CirclePlayer)

	_, err = s.ComputerMove(context.Background())
	is.True(errors.Is(err, ErrNoComputer))
}

func newComputerSession(t *testing.T, delay time.Duration) *Session {
	t.Helper()
	engine, err := mcts.New(tttRules, mcts.DefaultLimits().SetTrials(500), mcts.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(tttRules, engine, delay)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestComputerMoveAfterDelay(t *testing.T) {
	is := is.New(t)
	const delay = 30 * time.Millisecond
	s := newComputerSession(t, delay)

	side, ok := s.ComputerSide()
	is.True(ok)
	is.Equal(side, board.CirclePlayer)
	is.True(!s.ComputerTurn())

	is.NoErr(s.Play(4))
	is.True(s.ComputerTurn())
	is.True(errors.Is(s.Play(0), ErrNotYourTurn))

	started := time.Now()
	move, err := s.ComputerMove(context.Background())
	is.NoErr(err)
	is.True(time.Since(started) >= delay)
	is.True(move >= 0 && move < 9 && move != 4)
	is.Equal(s.Board().At(move), board.Circle)
	is.Equal(s.Turn(), board.CrossPlayer)

	// Takes back the computer's reply and the person's move
	is.NoErr(s.Undo())
	is.Equal(len(s.History()), 0)
	is.Equal(s.Turn(), board.CrossPlayer)
}

func TestComputerMoveCancelled(t *testing.T) {
	is := is.New(t)
	s := newComputerSession(t, 50*time.Millisecond)
	is.NoErr(s.Play(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ComputerMove(ctx)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(s.History(), []int{0})
	is.True(s.ComputerTurn())

	move, err := s.ComputerMove(context.Background())
	is.NoErr(err)
	is.Equal(s.History(), []int{0, move})
}

func TestSessionRulesMismatch(t *testing.T) {
	is := is.New(t)
	engine, err := mcts.New(board.Rules{Size: 4, WinLength: 3}, nil, mcts.DefaultOptions())
	is.NoErr(err)

	_, err = NewSession(tttRules, engine, 0)
	is.True(errors.Is(err, mcts.ErrRulesMismatch))
}

func TestParseCoords(t *testing.T) {
	is := is.New(t)

	idx, err := ParseCoords(tttRules, "1 1")
	is.NoErr(err)
	is.Equal(idx, 0)

	idx, err = ParseCoords(tttRules, " 3,2 ")
	is.NoErr(err)
	is.Equal(idx, 5)

	_, err = ParseCoords(tttRules, "0 1")
	is.True(errors.Is(err, board.ErrOutOfRange))
	_, err = ParseCoords(tttRules, "a b")
	is.True(errors.Is(err, ErrBadCoords))
	_, err = ParseCoords(tttRules, "1")
	is.True(errors.Is(err, ErrBadCoords))
}
