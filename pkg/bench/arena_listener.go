package bench

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogListener reports finished games and the summary through zerolog,
// the row is the worker id
type LogListener struct {
	DefaultListener
	logger  zerolog.Logger
	verbose bool
}

func NewLogListener(verbose bool) *LogListener {
	return &LogListener{logger: log.Logger, verbose: verbose}
}

func (l *LogListener) WithLogger(logger zerolog.Logger) *LogListener {
	l.logger = logger
	return l
}

func (l *LogListener) OnStart() {
	l.logger.Info().Msg("arena started")
}

func (l *LogListener) OnMoveMade(info VersusWorkerInfo) {
	if !l.verbose {
		return
	}
	l.logger.Debug().
		Int("worker", l.row).
		Str("game", info.GameID).
		Int("ply", info.GameMoveNum).
		Int("move", info.Moves[len(info.Moves)-1]).
		Msg("move")
}

func (l *LogListener) OnFinishedGame(info VersusWorkerInfo) {
	l.logger.Info().
		Int("worker", l.row).
		Str("game", info.GameID).
		Uint64("seed", info.GameSeed).
		Bool("p1_first", info.P1First).
		Str("winner", info.Result.String()).
		Int("length", info.GameMoveNum).
		Msgf("game %d/%d finished", info.FinishedGames, info.NGames)
}

func (l *LogListener) OnFinishedWork(info VersusWorkerInfo) {
	l.logger.Debug().
		Int("worker", l.row).
		Int("games", info.NGames).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker done")
}

func (l *LogListener) Summary(summary VersusSummaryInfo) {
	l.logger.Info().
		Int("games", summary.TotalGames).
		Str("p1", summary.P1Name).
		Int("p1_wins", summary.P1Wins).
		Str("p2", summary.P2Name).
		Int("p2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Msg("arena summary")
}

func (l *LogListener) Clone() ListenerLike {
	return &LogListener{
		DefaultListener: DefaultListener{row: l.row},
		logger:          l.logger,
		verbose:         l.verbose,
	}
}
