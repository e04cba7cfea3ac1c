package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
	"github.com/IlikeChooros/go-gomoku/pkg/mcts"
)

// Request body limit, a 100x100 board with whitespace fits easily
const maxBodyBytes = 1 << 16

type moveRequest struct {
	// Rows of '.', 'X' and 'O', whitespace ignored
	Board string `json:"board"`
	// Last move played, -1 or absent if none
	PreviousMove *int `json:"previous_move,omitempty"`
}

type moveResponse struct {
	Move       int    `json:"move"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Player     string `json:"player"`
	Mode       string `json:"mode"`
	Trials     int    `json:"trials"`
	StopReason string `json:"stop_reason"`
	Probe      string `json:"probe"`
	RequestID  string `json:"request_id"`
}

type winRequest struct {
	Board string `json:"board"`
	Move  int    `json:"move"`
}

type winResponse struct {
	Winning   bool   `json:"winning"`
	RequestID string `json:"request_id"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Move      int    `json:"move"`
	RequestID string `json:"request_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Move:      board.NoMove,
		RequestID: RequestID(r.Context()),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

// Maps engine errors to HTTP statuses: a finished game is a conflict,
// anything else the caller sent is a bad request
func statusOf(err error) int {
	switch {
	case errors.Is(err, mcts.ErrBoardFull), errors.Is(err, mcts.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mcts.ErrInvalidPrevious), errors.Is(err, mcts.ErrRulesMismatch),
		errors.Is(err, board.ErrInvalidCell), errors.Is(err, board.ErrSizeMismatch),
		errors.Is(err, board.ErrOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"rules":  s.rules.String(),
		"mode":   s.opts.Mode.String(),
	})
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	b, err := board.Parse(s.rules, req.Board)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}
	previous := board.NoMove
	if req.PreviousMove != nil {
		previous = *req.PreviousMove
	}

	engine, err := mcts.New(s.rules, s.limits, s.opts)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	result, err := engine.Search(b, previous)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}

	x, y := b.Coords(result.Move)
	writeJSON(w, http.StatusOK, moveResponse{
		Move:       result.Move,
		X:          x,
		Y:          y,
		Player:     s.opts.Player.String(),
		Mode:       result.Mode.String(),
		Trials:     result.Trials,
		StopReason: result.StopReason.String(),
		Probe:      result.Probe.Status.String(),
		RequestID:  RequestID(r.Context()),
	})
}

func (s *Server) win(w http.ResponseWriter, r *http.Request) {
	var req winRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	b, err := board.Parse(s.rules, req.Board)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}
	if !b.InRange(req.Move) {
		err := fmt.Errorf("%w: %d on a %v board", board.ErrOutOfRange, req.Move, s.rules)
		writeError(w, r, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, winResponse{
		Winning:   b.IsWinningMove(req.Move),
		RequestID: RequestID(r.Context()),
	})
}
