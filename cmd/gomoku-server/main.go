package main

/*

HTTP move server, see internal/server for the routes

*/

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/IlikeChooros/go-gomoku/internal/config"
	"github.com/IlikeChooros/go-gomoku/internal/server"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	addr := pflag.String("addr", "", "listen address, overrides server.addr")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	config.SetupLogging(cfg.Log)
	cfg.ResolveSeed()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal().Err(err).Msg("engine options")
	}
	srv, err := server.New(cfg.Rules(), cfg.Limits(), opts)
	if err != nil {
		log.Fatal().Err(err).Msg("creating server")
	}
	httpServer := srv.HTTPServer(cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("rules", cfg.Rules().String()).
			Str("mode", opts.Mode.String()).
			Uint64("seed", opts.Seed).
			Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serving")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}
