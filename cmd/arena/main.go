package main

/*

Arena: the configured engine (player 1) against another search mode (player 2).
Prints a YAML summary on stdout, progress goes to the log.

*/

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/IlikeChooros/go-gomoku/internal/config"
	"github.com/IlikeChooros/go-gomoku/pkg/bench"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	games := pflag.UintP("games", "n", 0, "number of games, overrides arena.games")
	workers := pflag.UintP("workers", "w", 0, "number of workers, overrides arena.workers")
	verbose := pflag.BoolP("verbose", "v", false, "log every move")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	config.SetupLogging(cfg.Log)
	seed := cfg.ResolveSeed()
	if *games > 0 {
		cfg.Arena.Games = *games
	}
	if *workers > 0 {
		cfg.Arena.Workers = *workers
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal().Err(err).Msg("engine options")
	}
	opponentMode, err := mcts.ParseSearchMode(cfg.Arena.Opponent)
	if err != nil {
		log.Fatal().Err(err).Msg("arena opponent")
	}
	opponent := opts
	opponent.Mode = opponentMode

	p1 := bench.Player{Name: opts.Mode.String(), Limits: cfg.Limits(), Options: opts}
	p2 := bench.Player{
		Name:    opponentMode.String() + "-opponent",
		Limits:  cfg.Limits().SetTrials(cfg.Arena.Trials),
		Options: opponent,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	arena := bench.NewVersusArena(cfg.Rules(), p1, p2).WithContext(ctx)
	arena.Setup(cfg.Arena.Games, cfg.Arena.Workers, seed)

	summary, err := arena.Run(bench.NewLogListener(*verbose))
	if werr := summary.WriteYAML(os.Stdout); werr != nil {
		log.Error().Err(werr).Msg("writing summary")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("arena")
	}
}
