// Package web hosts the game over HTTP: websocket play sessions, a JSON
// leaderboard and a health check. The server runs the simulation; browsers
// send flaps and viewport sizes and draw the frames they get back.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"github.com/FUCKiro/flappyseal-app/internal/games/seal"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

// Board is the read side of the score store.
type Board interface {
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
}

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate for every session.
	TickRate int

	// OriginPatterns lists hosts allowed to open websockets from another
	// origin. Same-origin requests are always allowed.
	OriginPatterns []string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
	}
}

// Server is the HTTP host.
type Server struct {
	config   Config
	game     config.SealConfig
	sink     seal.ScoreSink
	board    Board
	verifier *identity.Verifier
	logger   *log.Logger
	http     *http.Server
	now      func() time.Time

	// sessions tracks websocket handlers, which Shutdown does not wait for.
	sessions sync.WaitGroup
}

// NewServer creates a server. A nil verifier means every player is
// anonymous; a nil board disables the leaderboard endpoint.
func NewServer(cfg Config, game config.SealConfig, sink seal.ScoreSink, board Board, verifier *identity.Verifier, logger *log.Logger) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	s := &Server{
		config:   cfg,
		game:     game,
		sink:     sink,
		board:    board,
		verifier: verifier,
		logger:   logger.WithPrefix("web"),
		now:      time.Now,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /ws", s.handlePlay)
	return mux
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled. Play sessions are tied
// to ctx; it returns only after every session has ended and handed its
// score to the sink.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("web server listening", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if err = s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed", "err", err)
		err = s.http.Close()
	}
	s.waitSessions(shutdownCtx)
	s.logger.Info("server shutdown complete")
	return err
}

func (s *Server) waitSessions(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("play sessions still open after shutdown timeout")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

type leaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type leaderboardResponse struct {
	Entries  []leaderboardEntry `json:"entries"`
	ResetsAt time.Time          `json:"resets_at"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		http.Error(w, "leaderboard disabled", http.StatusNotFound)
		return
	}

	n := s.game.Leaderboard.Size
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 100 {
			http.Error(w, "n must be between 1 and 100", http.StatusBadRequest)
			return
		}
		n = v
	}

	entries, err := s.board.TopScores(r.Context(), n)
	if err != nil {
		s.logger.Error("cannot load leaderboard", "err", err)
		http.Error(w, "cannot load leaderboard", http.StatusInternalServerError)
		return
	}

	resp := leaderboardResponse{
		Entries:  make([]leaderboardEntry, len(entries)),
		ResetsAt: leaderboard.NextReset(s.now()),
	}
	for i, e := range entries {
		resp.Entries[i] = leaderboardEntry{Rank: i + 1, Name: e.DisplayName, Score: e.Score}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("cannot write leaderboard", "err", err)
	}
}
