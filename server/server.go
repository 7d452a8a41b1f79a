// Package server hosts play sessions over HTTP and websockets. A session
// pairs a game with a search bot; humans post moves, the bot answers, and
// watchers follow along over a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"gambit/game"
	"gambit/searcher"
)

type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	nextID   int
}

// session is one hosted game. The bot seat says which side the bot plays;
// Nobody means the bot only answers analysis requests.
type session struct {
	id      string
	variant string
	match   match
	bot     game.Player
	moves   []string
	hub     *Hub
}

func New() *Server {
	return &Server{
		sessions: make(map[string]*session),
		nextID:   1,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/games", s.handleCreate)
	r.Get("/api/games/{id}", s.handleState)
	r.Post("/api/games/{id}/moves", s.handleMove)
	r.Post("/api/games/{id}/analysis", s.handleAnalysis)
	r.Get("/api/games/{id}/watch", s.handleWatch)

	return r
}

// Run serves until interrupted, then drains open connections.
func (s *Server) Run(cfg Config) error {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msgf("listening on %s", cfg.Addr)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err, ok := <-errCh:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Msgf("graceful shutdown failed: %v", err)
		_ = srv.Close()
	}
	return runErr
}

type createRequest struct {
	Variant     string  `json:"variant"`
	Bot         string  `json:"bot,omitempty"`
	Iterations  int     `json:"iterations,omitempty"`
	Exploration float64 `json:"exploration,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
}

type boardPayload struct {
	Cells  []string `json:"cells"`
	Owners []string `json:"owners,omitempty"`
	Forced string   `json:"forced,omitempty"`
	Turn   string   `json:"turn,omitempty"`
	Status string   `json:"status"`
	Winner string   `json:"winner,omitempty"`
}

type statePayload struct {
	ID      string   `json:"id"`
	Variant string   `json:"variant"`
	Bot     string   `json:"bot,omitempty"`
	Moves   []string `json:"moves"`
	boardPayload
}

type moveRequest struct {
	Move string `json:"move"`
}

type moveResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	BotMove string       `json:"bot_move,omitempty"`
	State   statePayload `json:"state"`
}

type moveStat struct {
	Move   string `json:"move"`
	Visits int    `json:"visits"`
}

type analysisResponse struct {
	Moves []moveStat `json:"moves"`
	Total int        `json:"total"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	newMatch, ok := variants[req.Variant]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown variant %q", req.Variant)})
		return
	}
	bot, err := botSeat(req.Bot)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{
		id:      fmt.Sprintf("g%d", s.nextID),
		variant: req.Variant,
		match:   newMatch(searchOptions(req)...),
		bot:     bot,
		moves:   []string{},
		hub:     NewHub(),
	}
	s.nextID++
	s.sessions[sess.id] = sess
	log.Info().Msgf("created game %s (%s)", sess.id, sess.variant)

	// A bot on the first seat opens right away.
	if sess.botTurn() {
		if _, err := sess.playBot(); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusCreated, sess.state())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chi.URLParam(r, "id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such game"})
		return
	}
	writeJSON(w, http.StatusOK, sess.state())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chi.URLParam(r, "id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such game"})
		return
	}
	if sess.match.Ended() {
		writeJSON(w, http.StatusBadRequest, moveResponse{Error: "game is over", State: sess.state()})
		return
	}

	move, err := sess.match.Play(req.Move)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, moveResponse{Error: err.Error(), State: sess.state()})
		return
	}
	sess.moves = append(sess.moves, move)
	sess.hub.Broadcast(sess.state())
	log.Info().Msgf("game %s: %s", sess.id, move)

	response := moveResponse{Success: true}
	if sess.botTurn() {
		botMove, err := sess.playBot()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		response.BotMove = botMove
	}
	response.State = sess.state()
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chi.URLParam(r, "id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such game"})
		return
	}

	stats, err := sess.match.Analyse()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	total := 0
	for _, stat := range stats {
		total += stat.Visits
	}
	writeJSON(w, http.StatusOK, analysisResponse{Moves: stats, Total: total})
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess, ok := s.sessions[chi.URLParam(r, "id")]
	var initial statePayload
	if ok {
		initial = sess.state()
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such game"})
		return
	}
	serveWatch(sess.hub, initial, w, r)
}

func (sess *session) state() statePayload {
	return statePayload{
		ID:           sess.id,
		Variant:      sess.variant,
		Bot:          seatName(sess.bot),
		Moves:        sess.moves,
		boardPayload: sess.match.Snapshot(),
	}
}

func (sess *session) botTurn() bool {
	return sess.bot != game.Nobody && !sess.match.Ended() && sess.match.CurrentPlayer() == sess.bot
}

func (sess *session) playBot() (string, error) {
	move, err := sess.match.BotMove()
	if err != nil {
		return "", err
	}
	sess.moves = append(sess.moves, move)
	sess.hub.Broadcast(sess.state())
	log.Info().Msgf("game %s: bot plays %s", sess.id, move)
	return move, nil
}

func botSeat(input string) (game.Player, error) {
	switch input {
	case "", "player2":
		return game.P2, nil
	case "player1":
		return game.P1, nil
	case "none":
		return game.Nobody, nil
	}
	return game.Nobody, fmt.Errorf("unknown bot seat %q", input)
}

func seatName(p game.Player) string {
	if p == game.Nobody {
		return ""
	}
	return p.String()
}

func searchOptions(req createRequest) []searcher.Option {
	options := []searcher.Option{}

	if req.Iterations > 0 {
		options = append(options, searcher.WithIterations(req.Iterations))
	}
	if req.Exploration > 0 {
		options = append(options, searcher.WithExploration(req.Exploration))
	}
	if req.Seed > 0 {
		options = append(options, searcher.WithSeed(req.Seed))
	}

	return options
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
