package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gomoku.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, board.DefaultRules(), cfg.Rules())
	assert.Equal(t, mcts.DefaultLimits(), cfg.Limits())
	assert.Equal(t, 500*time.Millisecond, cfg.Game.MoveDelay)
	assert.True(t, cfg.Game.VsComputer)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, mcts.DefaultOptions(), opts)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
board:
  size: 7
  win_length: 4
search:
  mode: minimax
  selection: random
  best_child: visits
  player: cross
  minimax_depth: 3
  seed: 99
game:
  move_delay: 250ms
arena:
  games: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, board.Rules{Size: 7, WinLength: 4}, cfg.Rules())
	assert.Equal(t, 3, cfg.Limits().MinimaxDepth)
	assert.Equal(t, mcts.DefaultTrials, cfg.Limits().Trials)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.MoveDelay)
	assert.Equal(t, uint(8), cfg.Arena.Games)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, mcts.ModeMinimax, opts.Mode)
	assert.Equal(t, mcts.SelectRandom, opts.Selection)
	assert.Equal(t, mcts.BestChildMostVisits, opts.BestChild)
	assert.Equal(t, board.CrossPlayer, opts.Player)
	assert.Equal(t, uint64(99), opts.Seed)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "search:\n  trials: 100\n")
	t.Setenv("GOMOKU_SEARCH_TRIALS", "1234")
	t.Setenv("GOMOKU_BOARD_SIZE", "11")
	t.Setenv("GOMOKU_GAME_MOVE_DELAY", "0s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234), cfg.Search.Trials)
	assert.Equal(t, 11, cfg.Board.Size)
	assert.Equal(t, time.Duration(0), cfg.Game.MoveDelay)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"win length", "board:\n  size: 5\n  win_length: 6\n", board.ErrInvalidRules},
		{"trials", "search:\n  trials: 0\n", mcts.ErrInvalidLimits},
		{"mode", "search:\n  mode: alphabeta\n", mcts.ErrInvalidOptions},
		{"player", "search:\n  player: triangle\n", board.ErrInvalidPlayer},
		{"arena", "arena:\n  opponent: random\n", mcts.ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveSeed(t *testing.T) {
	cfg := Default()
	cfg.Search.Seed = 0
	seed := cfg.ResolveSeed()
	assert.NotZero(t, seed)
	assert.Equal(t, seed, cfg.Search.Seed)

	cfg.Search.Seed = 5
	assert.Equal(t, uint64(5), cfg.ResolveSeed())
}

func TestSetupLogging(t *testing.T) {
	logger, level := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	}()

	var buf bytes.Buffer
	SetupLoggingTo(&buf, LogConfig{Level: "warn"})
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
