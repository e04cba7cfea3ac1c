package bench

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

/*
Arena benchmark subpackage, plays a series of games between two
engine configurations on the same rules.
*/

// Player is one side of the arena. Options.Player and Options.Seed are
// overwritten for every game
type Player struct {
	Name    string
	Limits  *mcts.Limits
	Options mcts.Options
}

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	Rules    board.Rules
	NGames   uint
	NThreads uint
	Seed     uint64
	ctx      context.Context
	plies    atomic.Uint64
	finished atomic.Uint32
}

func NewVersusArena(rules board.Rules, p1, p2 Player) *VersusArena {
	return &VersusArena{
		Player1:  p1,
		Player2:  p2,
		Rules:    rules,
		NGames:   100,
		NThreads: 2,
		Seed:     mcts.DefaultSeed,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames, nThreads uint, seed uint64) {
	va.NGames = nGames
	va.NThreads = nThreads
	va.Seed = seed
}

// Run plays all games on a pool of NThreads workers and blocks until they finish.
// Game i always gets the same seed and player 1 moves first in even games, so the
// results don't depend on the number of workers. The first error (or the
// context's cancellation) stops every worker
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = &DefaultListener{}
	}
	if err := va.Rules.Validate(); err != nil {
		return VersusSummaryInfo{}, err
	}

	va.VersusArenaStats = VersusArenaStats{}
	va.plies.Store(0)
	va.finished.Store(0)
	listener.OnStart()

	nThreads := int(max(1, min(va.NThreads, va.NGames)))
	g, ctx := errgroup.WithContext(va.ctx)
	for id := range nThreads {
		// Every worker gets its own listener
		l := listener.Clone()
		l.SetRow(id)
		g.Go(func() error {
			return va.worker(ctx, id, nThreads, l)
		})
	}

	err := g.Wait()
	summary := va.summary(nThreads)
	listener.Summary(summary)
	listener.OnEnd()
	return summary, err
}

func (va *VersusArena) summary(workers int) VersusSummaryInfo {
	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          workers,
		Seed:             va.Seed,
		Rules:            va.Rules,
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
	}
	if summary.TotalGames > 0 {
		summary.AvgGameLength = float64(va.plies.Load()) / float64(summary.TotalGames)
	}
	return summary
}

func (va *VersusArena) worker(ctx context.Context, id, nThreads int, listener ListenerLike) error {
	local := VersusArenaStats{}
	nGames := int(va.NGames)

	for i := id; i < nGames; i += nThreads {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := va.playGame(ctx, id, i, listener)
		if err != nil {
			return err
		}
		local.record(info.Result, GameOutcome{
			IsDraw:         info.Result == VersusDraw,
			FirstPlayerWon: (info.Result == VersusPl1Win) == info.P1First,
		})
	}

	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: va.Total(),
		P1Wins:        local.P1Wins(),
		P2Wins:        local.P2Wins(),
		Draws:         local.Draws(),
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	})
	return nil
}

// Seed of the game with given index, a splitmix64 step over the arena seed
func GameSeed(arenaSeed uint64, index int) uint64 {
	z := arenaSeed + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (va *VersusArena) newEngine(p Player, side board.Player, seed uint64) (*mcts.MCTS, error) {
	opts := p.Options
	opts.Player = side
	opts.Seed = seed
	engine, err := mcts.New(va.Rules, p.Limits, opts)
	if err != nil {
		return nil, fmt.Errorf("bench: player %q: %w", p.Name, err)
	}
	return engine, nil
}

func (va *VersusArena) playGame(ctx context.Context, workerID, index int, listener ListenerLike) (VersusWorkerInfo, error) {
	seed := GameSeed(va.Seed, index)
	p1First := index%2 == 0

	info := VersusWorkerInfo{
		WorkerID:  workerID,
		GameID:    uuid.NewString(),
		GameIndex: index,
		GameSeed:  seed,
		NGames:    int(va.NGames),
		Moves:     make([]int, 0, va.Rules.Cells()),
		P1First:   p1First,
		P1Name:    va.Player1.Name,
		P2Name:    va.Player2.Name,
	}

	p1, err := va.newEngine(va.Player1, lo.Ternary(p1First, board.CrossPlayer, board.CirclePlayer), seed)
	if err != nil {
		return info, err
	}
	p2, err := va.newEngine(va.Player2, lo.Ternary(p1First, board.CirclePlayer, board.CrossPlayer), ^seed)
	if err != nil {
		return info, err
	}
	engines := map[board.Player]*mcts.MCTS{
		p1.Options().Player: p1,
		p2.Options().Player: p2,
	}

	gamePos, err := board.New(va.Rules)
	if err != nil {
		return info, err
	}
	listener.OnGameStart(info)

	turn := board.CrossPlayer
	last := board.NoMove
	for {
		if err := ctx.Err(); err != nil {
			return info, err
		}

		move, err := engines[turn].DecideMove(gamePos, last)
		if err != nil {
			return info, fmt.Errorf("bench: game %s ply %d: %w", info.GameID, len(info.Moves), err)
		}
		if err := gamePos.Play(move, turn); err != nil {
			return info, fmt.Errorf("bench: game %s: engine played %d: %w", info.GameID, move, err)
		}

		last = move
		info.Moves = append(info.Moves, move)
		info.GameMoveNum = len(info.Moves)
		listener.OnMoveMade(info)

		if _, over := board.Terminal(gamePos, last); over {
			break
		}
		turn = turn.Opponent()
	}

	outcome := computeOutcome(gamePos, last)
	info.Result = toAgentResult(outcome, p1First)
	va.record(info.Result, outcome)
	va.plies.Add(uint64(len(info.Moves)))

	info.FinishedGames = int(va.finished.Add(1))
	info.P1Wins = va.P1Wins()
	info.P2Wins = va.P2Wins()
	info.Draws = va.Draws()
	listener.OnFinishedGame(info)
	return info, nil
}
