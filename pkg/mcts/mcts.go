package mcts

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

var (
	ErrBoardFull       = errors.New("mcts: board is full")
	ErrGameOver        = errors.New("mcts: previous move already won the game")
	ErrRulesMismatch   = errors.New("mcts: board rules differ from the engine's")
	ErrInvalidOptions  = errors.New("mcts: invalid options")
	ErrInvalidLimits   = errors.New("mcts: invalid limits")
	ErrInvalidPrevious = errors.New("mcts: invalid previous move")
)

// Options fixed at construction
type Options struct {
	// The automated player, the search always picks a move for this side
	Player           board.Player
	Mode             SearchMode
	Selection        SelectionPolicy
	BestChild        BestChildPolicy
	ExplorationParam float64
	Seed             uint64
}

// Hybrid search with UCT selection, playing circle (the person moves first)
func DefaultOptions() Options {
	return Options{
		Player:           board.CirclePlayer,
		Mode:             ModeHybrid,
		Selection:        SelectUCT,
		BestChild:        BestChildMeanScore,
		ExplorationParam: DefaultExplorationParam,
		Seed:             DefaultSeed,
	}
}

func (o Options) Validate() error {
	if !o.Player.Valid() {
		return fmt.Errorf("%w: player %v", ErrInvalidOptions, o.Player)
	}
	if o.Mode < ModeMinimax || o.Mode > ModeHybrid {
		return fmt.Errorf("%w: mode %v", ErrInvalidOptions, o.Mode)
	}
	if o.Selection != SelectRandom && o.Selection != SelectUCT {
		return fmt.Errorf("%w: selection %v", ErrInvalidOptions, o.Selection)
	}
	if o.BestChild != BestChildMeanScore && o.BestChild != BestChildMostVisits {
		return fmt.Errorf("%w: best child policy %d", ErrInvalidOptions, o.BestChild)
	}
	if o.ExplorationParam < 0 {
		return fmt.Errorf("%w: exploration parameter %f", ErrInvalidOptions, o.ExplorationParam)
	}
	return nil
}

// MCTS picks moves for the automated player. The random generator is seeded once
// here, so a sequence of decisions is reproducible for a fixed seed and history.
// Not safe for concurrent use: run at most one decision at a time per instance
type MCTS struct {
	listener *StatsListener
	rules    board.Rules
	limits   *Limits
	opts     Options
	rng      *rand.Rand
}

// Create new engine, limits may be nil to use DefaultLimits
func New(rules board.Rules, limits *Limits, opts Options) (*MCTS, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if limits == nil {
		limits = DefaultLimits()
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	listener := NewStatsListener()
	return &MCTS{
		listener: &listener,
		rules:    rules,
		limits:   limits.Clone(),
		opts:     opts,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (mcts *MCTS) Rules() board.Rules {
	return mcts.rules
}

func (mcts *MCTS) Limits() *Limits {
	return mcts.limits.Clone()
}

func (mcts *MCTS) Options() Options {
	return mcts.opts
}

func (mcts *MCTS) StatsListener() *StatsListener {
	return mcts.listener
}

func (mcts *MCTS) SetListener(listener StatsListener) {
	*mcts.listener = listener
}

func (mcts *MCTS) ResetListener() {
	mcts.listener.OnCycle(nil).OnEngage(nil).OnProbe(nil).OnStop(nil)
}

// Statistics of a root child after the search
type ChildStats struct {
	Move   int
	Visits int
	Score  int
	Mean   float64
}

type SearchResult struct {
	Move       int
	Mode       SearchMode
	Trials     int
	StopReason StopReason
	Probe      ProbeResult
	Size       int // number of created nodes, root included
	MaxDepth   int
	Children   []ChildStats
	Elapsed    time.Duration
}

func (r SearchResult) String() string {
	str := fmt.Sprintf("SearchResult={Move=%d, Mode=%v, Trials=%d, Stop=%v, Probe=%v, Size=%d, MaxDepth=%d, Elapsed=%v",
		r.Move, r.Mode, r.Trials, r.StopReason, r.Probe.Status, r.Size, r.MaxDepth, r.Elapsed)
	if len(r.Children) > 0 {
		parts := make([]string, 0, len(r.Children))
		for _, c := range r.Children {
			parts = append(parts, fmt.Sprintf("%d:%d/%d", c.Move, c.Score, c.Visits))
		}
		str += ", Children=[" + strings.Join(parts, " ") + "]"
	}
	return str + "}"
}

// DecideMove returns the cell the automated player should occupy on b,
// previousMove is the last move played (board.NoMove if none).
// On a full board it returns board.NoMove with ErrBoardFull
func (mcts *MCTS) DecideMove(b *board.Board, previousMove int) (int, error) {
	result, err := mcts.Search(b, previousMove)
	return result.Move, err
}

// Search is DecideMove with the search statistics
func (mcts *MCTS) Search(b *board.Board, previousMove int) (SearchResult, error) {
	result := SearchResult{Move: board.NoMove, Mode: mcts.opts.Mode}

	if err := mcts.validate(b, previousMove); err != nil {
		return result, err
	}

	s := mcts.newSearch(b, previousMove)
	switch mcts.opts.Mode {
	case ModeMinimax:
		result.Move = s.runMinimax()
	default:
		result.Move = s.runTrials()
	}

	if mcts.listener.onStop != nil {
		mcts.listener.onStop(toListenerStats(s))
	}

	result.Trials = int(s.limiter.Trials())
	result.StopReason = s.limiter.StopReason()
	result.Probe = s.probe
	result.Size = s.size
	result.MaxDepth = s.maxdepth
	result.Elapsed = time.Since(s.start)
	result.Children = make([]ChildStats, len(s.root.Children))
	for i := range s.root.Children {
		child := &s.root.Children[i]
		result.Children[i] = ChildStats{
			Move:   child.Move,
			Visits: int(child.N()),
			Score:  int(child.Score()),
			Mean:   child.Mean(),
		}
	}

	log.Debug().
		Str("mode", mcts.opts.Mode.String()).
		Str("player", mcts.opts.Player.String()).
		Int("move", result.Move).
		Int("trials", result.Trials).
		Str("stop", result.StopReason.String()).
		Str("probe", result.Probe.Status.String()).
		Int("size", result.Size).
		Dur("elapsed", result.Elapsed).
		Msg("search finished")

	return result, nil
}

func (mcts *MCTS) validate(b *board.Board, previousMove int) error {
	if b.Rules() != mcts.rules {
		return fmt.Errorf("%w: got %v, want %v", ErrRulesMismatch, b.Rules(), mcts.rules)
	}
	if previousMove != board.NoMove {
		if err := board.CheckMove(b, previousMove); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPrevious, err)
		}
	}
	if b.IsFull() {
		return ErrBoardFull
	}
	if previousMove != board.NoMove && b.IsWinningMove(previousMove) {
		return ErrGameOver
	}
	return nil
}

func (mcts *MCTS) newSearch(b *board.Board, previousMove int) *search {
	cells := mcts.rules.Cells()
	s := &search{
		root:            newRootNode(b, mcts.opts.Player, previousMove),
		player:          mcts.opts.Player,
		limits:          mcts.limits,
		limiter:         NewLimiter(mcts.limits),
		listener:        mcts.listener,
		rng:             mcts.rng,
		selection:       mcts.opts.Selection,
		bestChildPolicy: mcts.opts.BestChild,
		exploration:     mcts.opts.ExplorationParam,
		hybrid:          mcts.opts.Mode == ModeHybrid,
		treeDepth:       min(mcts.limits.TreeDepth, cells),
		minimaxDepth:    min(mcts.limits.MinimaxDepth, cells),
		probe:           ProbeResult{Status: NotEngaged, Move: board.NoMove},
		minimaxMove:     board.NoMove,
		size:            1,
		start:           time.Now(),
		scratch:         b.Clone(),
		buf:             make([]int, 0, cells),
	}
	s.limiter.Reset()
	return s
}
