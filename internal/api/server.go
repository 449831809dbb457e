// Package api exposes the engine over HTTP and WebSocket.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/engine"
)

// Server serves best-move queries and interactive games.
type Server struct {
	engine *engine.Engine
	router chi.Router
}

type bestMoveRequest struct {
	Board string `json:"board"`
	Piece string `json:"piece"`
}

type moveResponse struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outcome string `json:"outcome"`
}

type analyzeResponse struct {
	Moves []moveResponse `json:"moves"`
}

type cacheEntryDTO struct {
	Key     uint32 `json:"key"`
	Board   string `json:"board"`
	Mover   string `json:"mover"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outcome string `json:"outcome"`
}

type cacheResponse struct {
	Size    int             `json:"size"`
	HitRate float64         `json:"hit_rate"`
	Entries []cacheEntryDTO `json:"entries,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a server sharing eng (and its cache) across requests.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{engine: eng}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/best-move", s.handleBestMove)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/cache", s.handleCache)
	r.Get("/ws/play", s.handlePlay)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) decodePosition(w http.ResponseWriter, r *http.Request) (board.Board, board.Piece, bool) {
	var req bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return board.Board{}, board.Blank, false
	}
	b, err := board.Parse(req.Board)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return board.Board{}, board.Blank, false
	}
	piece := b.SideToMove()
	if req.Piece != "" {
		piece, err = board.ParsePiece(req.Piece)
		if err != nil || piece == board.Blank {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "piece must be X or O"})
			return board.Board{}, board.Blank, false
		}
	}
	return b, piece, true
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	b, piece, ok := s.decodePosition(w, r)
	if !ok {
		return
	}
	res, found := s.engine.BestMove(b, piece)
	if !found {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "no legal move"})
		return
	}
	writeJSON(w, http.StatusOK, toMoveResponse(res))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	b, piece, ok := s.decodePosition(w, r)
	if !ok {
		return
	}
	resp := analyzeResponse{Moves: []moveResponse{}}
	for _, res := range s.engine.Analyze(b, piece) {
		resp.Moves = append(resp.Moves, toMoveResponse(res))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCache(w http.ResponseWriter, r *http.Request) {
	cache := s.engine.Cache()
	resp := cacheResponse{
		Size:    cache.Len(),
		HitRate: cache.HitRate(),
	}
	if r.URL.Query().Get("entries") == "1" {
		for _, e := range cache.Snapshot() {
			resp.Entries = append(resp.Entries, cacheEntryDTO{
				Key:     e.Key,
				Board:   board.Decode(e.Key).String(),
				Mover:   e.Mover.String(),
				Row:     e.Move.Row,
				Col:     e.Move.Col,
				Outcome: e.Outcome.String(),
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func toMoveResponse(res engine.Result) moveResponse {
	return moveResponse{Row: res.Move.Row, Col: res.Move.Col, Outcome: res.Outcome.String()}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// requestLogger logs each request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("component", "api").
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
