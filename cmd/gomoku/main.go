package main

/*

Terminal gomoku, the person plays cross and moves first, the computer answers
after a short delay. Enter moves as 'column row', both 1-based.

Commands: undo, new, quit, help

*/

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/IlikeChooros/go-gomoku/internal/config"
	"github.com/IlikeChooros/go-gomoku/internal/game"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

const help = `Commands:
  <column> <row>   place a stone, e.g. '5 5'
  undo             take back the last move (and the computer's reply)
  new              start a new game
  quit             leave
`

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	twoPlayers := pflag.Bool("two-players", false, "two people share the terminal")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.SetupLogging(cfg.Log)
	cfg.ResolveSeed()

	var engine game.Engine
	if cfg.Game.VsComputer && !*twoPlayers {
		opts, err := cfg.Options()
		if err != nil {
			log.Fatal().Err(err).Msg("engine options")
		}
		mctsEngine, err := mcts.New(cfg.Rules(), cfg.Limits(), opts)
		if err != nil {
			log.Fatal().Err(err).Msg("creating engine")
		}
		engine = mctsEngine
	}

	session, err := game.NewSession(cfg.Rules(), engine, cfg.Game.MoveDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("creating session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, session, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("game")
	}
}

func run(ctx context.Context, session *game.Session, in io.Reader, out io.Writer) error {
	r := newRenderer(out)
	scanner := bufio.NewScanner(in)
	message := "Type 'help' for the commands."

	for {
		if session.ComputerTurn() {
			fmt.Fprintln(out, "Computer is thinking...")
			move, err := session.ComputerMove(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Still the computer's turn, asking again would fail the same way
				if session.ComputerTurn() {
					fmt.Fprintf(out, "Computer failed: %v\n", err)
					return fmt.Errorf("computer move: %w", err)
				}
				message = err.Error()
			} else {
				x, y := session.Board().Coords(move)
				message = fmt.Sprintf("Computer played %d %d", x+1, y+1)
			}
		}

		r.clear()
		r.board(out, session.Board(), session.LastMove())
		r.status(out, session)
		if message != "" {
			fmt.Fprintln(out, message)
			message = ""
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
		case "quit", "exit", "q":
			return nil
		case "help", "h", "?":
			message = help
		case "new":
			session.Reset()
		case "undo", "u":
			if err := session.Undo(); err != nil {
				message = err.Error()
			}
		default:
			idx, err := game.ParseCoords(session.Rules(), line)
			if err == nil {
				err = session.Play(idx)
			}
			if err != nil {
				message = err.Error()
			}
		}
	}
}
