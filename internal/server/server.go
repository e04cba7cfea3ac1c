// Package server exposes the move decision and the line check over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey int

const requestIDKey ctxKey = iota

// Server builds a fresh engine for every request from the same settings,
// so equal requests get equal answers
type Server struct {
	rules  board.Rules
	limits *mcts.Limits
	opts   mcts.Options
	router chi.Router
}

// New validates the engine settings and wires the routes, limits may be nil
func New(rules board.Rules, limits *mcts.Limits, opts mcts.Options) (*Server, error) {
	if limits == nil {
		limits = mcts.DefaultLimits()
	}
	// Fail on startup rather than on the first request
	if _, err := mcts.New(rules, limits, opts); err != nil {
		return nil, err
	}

	s := &Server{rules: rules, limits: limits.Clone(), opts: opts}
	r := chi.NewRouter()
	r.Use(requestID, requestLogger, middleware.Recoverer)
	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/move", s.move)
		r.Post("/win", s.win)
	})
	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTP server with given timeouts
func (s *Server) HTTPServer(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info().
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(started)).
			Msg("request")
	})
}
