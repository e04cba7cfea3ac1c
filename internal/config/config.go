// Package config loads the settings shared by the binaries: built-in
// defaults, an optional YAML file and GOMOKU_* environment variables,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"lukechampine.com/frand"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

const EnvPrefix = "GOMOKU"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type BoardConfig struct {
	Size      int `mapstructure:"size"`
	WinLength int `mapstructure:"win_length"`
}

type SearchConfig struct {
	Mode         string  `mapstructure:"mode"`
	Selection    string  `mapstructure:"selection"`
	BestChild    string  `mapstructure:"best_child"`
	Player       string  `mapstructure:"player"`
	Trials       uint32  `mapstructure:"trials"`
	ProbeDepth   int     `mapstructure:"probe_depth"`
	TreeDepth    int     `mapstructure:"tree_depth"`
	MinimaxDepth int     `mapstructure:"minimax_depth"`
	Exploration  float64 `mapstructure:"exploration"`
	// 0 draws a fresh seed on every start
	Seed uint64 `mapstructure:"seed"`
}

type GameConfig struct {
	// Visible pause before the computer's move is placed
	MoveDelay time.Duration `mapstructure:"move_delay"`
	// Play against the computer, otherwise two people share the terminal
	VsComputer bool `mapstructure:"vs_computer"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type ArenaConfig struct {
	Games    uint   `mapstructure:"games"`
	Workers  uint   `mapstructure:"workers"`
	Opponent string `mapstructure:"opponent"` // search mode of player 2
	Trials   uint32 `mapstructure:"opponent_trials"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type Config struct {
	Board  BoardConfig  `mapstructure:"board"`
	Search SearchConfig `mapstructure:"search"`
	Game   GameConfig   `mapstructure:"game"`
	Server ServerConfig `mapstructure:"server"`
	Arena  ArenaConfig  `mapstructure:"arena"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board.size", board.DefaultSize)
	v.SetDefault("board.win_length", board.DefaultWinLength)

	v.SetDefault("search.mode", mcts.ModeHybrid.String())
	v.SetDefault("search.selection", mcts.SelectUCT.String())
	v.SetDefault("search.best_child", "mean")
	v.SetDefault("search.player", board.CirclePlayer.String())
	v.SetDefault("search.trials", mcts.DefaultTrials)
	v.SetDefault("search.probe_depth", mcts.DefaultProbeDepth)
	v.SetDefault("search.tree_depth", mcts.DefaultDepthLimit)
	v.SetDefault("search.minimax_depth", mcts.DefaultDepthLimit)
	v.SetDefault("search.exploration", mcts.DefaultExplorationParam)
	v.SetDefault("search.seed", mcts.DefaultSeed)

	v.SetDefault("game.move_delay", 500*time.Millisecond)
	v.SetDefault("game.vs_computer", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", time.Minute)

	v.SetDefault("arena.games", 20)
	v.SetDefault("arena.workers", 2)
	v.SetDefault("arena.opponent", mcts.ModeMCTS.String())
	v.SetDefault("arena.opponent_trials", mcts.DefaultTrials)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
}

// Default configuration, no file and no environment
func Default() *Config {
	cfg, err := load(viper.New(), "")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration, path may be empty to skip the file.
// Environment variables use the GOMOKU prefix and '_' instead of '.',
// e.g. GOMOKU_SEARCH_TRIALS
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section that converts to engine settings
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Limits().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Options(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := mcts.ParseSearchMode(c.Arena.Opponent); err != nil {
		return fmt.Errorf("%w: arena: %w", ErrInvalidConfig, err)
	}
	if c.Game.MoveDelay < 0 {
		return fmt.Errorf("%w: negative move delay %v", ErrInvalidConfig, c.Game.MoveDelay)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Rules() board.Rules {
	return board.Rules{Size: c.Board.Size, WinLength: c.Board.WinLength}
}

func (c *Config) Limits() *mcts.Limits {
	return mcts.DefaultLimits().
		SetTrials(c.Search.Trials).
		SetProbeDepth(c.Search.ProbeDepth).
		SetTreeDepth(c.Search.TreeDepth).
		SetMinimaxDepth(c.Search.MinimaxDepth)
}

// Options of the automated player, with the seed as configured (see ResolveSeed)
func (c *Config) Options() (mcts.Options, error) {
	opts := mcts.DefaultOptions()

	player, err := board.ParsePlayer(c.Search.Player)
	if err != nil {
		return opts, err
	}
	mode, err := mcts.ParseSearchMode(c.Search.Mode)
	if err != nil {
		return opts, err
	}
	selection, err := mcts.ParseSelectionPolicy(c.Search.Selection)
	if err != nil {
		return opts, err
	}
	bestChild, err := parseBestChild(c.Search.BestChild)
	if err != nil {
		return opts, err
	}

	opts.Player = player
	opts.Mode = mode
	opts.Selection = selection
	opts.BestChild = bestChild
	opts.ExplorationParam = c.Search.Exploration
	opts.Seed = c.Search.Seed
	return opts, opts.Validate()
}

func parseBestChild(s string) (mcts.BestChildPolicy, error) {
	switch s {
	case "mean":
		return mcts.BestChildMeanScore, nil
	case "visits":
		return mcts.BestChildMostVisits, nil
	}
	return 0, fmt.Errorf("%w: unknown best child policy %q", mcts.ErrInvalidOptions, s)
}

// ResolveSeed replaces a zero seed with a fresh random one and logs
// the seed in use, so the run can be repeated
func (c *Config) ResolveSeed() uint64 {
	if c.Search.Seed == 0 {
		c.Search.Seed = frand.Uint64n(math.MaxUint64) + 1
		log.Info().Uint64("seed", c.Search.Seed).Msg("drew a fresh seed")
	} else {
		log.Debug().Uint64("seed", c.Search.Seed).Msg("using configured seed")
	}
	return c.Search.Seed
}

// SetupLogging configures the global zerolog logger
func SetupLogging(c LogConfig) {
	SetupLoggingTo(os.Stderr, c)
}

func SetupLoggingTo(w io.Writer, c LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
