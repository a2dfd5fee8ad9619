package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FUCKiro/flappyseal-app/internal/core"
	"github.com/FUCKiro/flappyseal-app/internal/games/seal"
)

const writeTimeout = 5 * time.Second

// session is one browser playing one machine.
type session struct {
	id      uuid.UUID
	conn    *websocket.Conn
	machine *seal.Machine
	rate    int
	logger  *log.Logger

	// changed is signalled after a transition so the writer sends a frame
	// even when the machine is not ticking.
	changed chan struct{}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	s.sessions.Add(1)
	defer s.sessions.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.config.OriginPatterns,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	machine, err := seal.New(s.game,
		seal.WithIdentity(s.identify(r)),
		seal.WithScoreSink(s.sink),
	)
	if err != nil {
		s.logger.Error("cannot create game", "err", err)
		conn.Close(websocket.StatusInternalError, "game unavailable")
		return
	}

	sess := &session{
		id:      uuid.New(),
		conn:    conn,
		machine: machine,
		rate:    s.config.TickRate,
		changed: make(chan struct{}, 1),
	}
	sess.logger = s.logger.With("session", sess.id)
	sess.logger.Info("session started", "remote", r.RemoteAddr)

	err = sess.run(r.Context())

	// A run cut short by a disconnect still counts.
	machine.End()
	if err != nil {
		sess.logger.Warn("session ended with error", "err", err)
		conn.Close(websocket.StatusInternalError, "session error")
		return
	}
	sess.logger.Info("session ended", "score", machine.Snapshot().Score)
	conn.Close(websocket.StatusNormalClosure, "")
}

// run pumps client input and server ticks until either side stops.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return s.readLoop(ctx)
	})
	eg.Go(func() error {
		return s.tickLoop(ctx)
	})
	return eg.Wait()
}

func (s *session) readLoop(ctx context.Context) error {
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if isClosed(ctx, err) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := s.writeError(ctx, "malformed message"); err != nil {
				return err
			}
			continue
		}

		if err := s.apply(ctx, msg); err != nil {
			return err
		}
	}
}

// apply feeds one client message to the machine. Only write failures are
// returned; rejected input is reported to the client.
func (s *session) apply(ctx context.Context, msg clientMessage) error {
	switch msg.Type {
	case "jump":
		outcome, err := s.machine.Jump()
		if err != nil {
			return s.writeError(ctx, err.Error())
		}
		s.logger.Debug("flap", "source", core.SourceRemote, "outcome", outcome)
		if outcome == seal.OutcomeStarted || outcome == seal.OutcomeRestarted {
			s.notify()
		}
	case "resize":
		if err := s.machine.SetBounds(seal.Bounds{Width: msg.Width, Height: msg.Height}); err != nil {
			return s.writeError(ctx, err.Error())
		}
		s.notify()
	default:
		return s.writeError(ctx, fmt.Sprintf("unknown message type %q", msg.Type))
	}
	return nil
}

func (s *session) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// tickLoop advances the machine at the session rate. A time.Ticker drops
// ticks the loop is too slow to take, so steps never overlap.
func (s *session) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.rate))
	defer ticker.Stop()

	if err := s.writeFrame(ctx, s.machine.Snapshot()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.changed:
			if err := s.writeFrame(ctx, s.machine.Snapshot()); err != nil {
				return err
			}
		case <-ticker.C:
			if s.machine.State() != seal.Running {
				continue
			}
			if err := s.writeFrame(ctx, s.machine.Tick()); err != nil {
				return err
			}
		}
	}
}

func (s *session) writeFrame(ctx context.Context, snap seal.Snapshot) error {
	return s.write(ctx, newFrame(snap))
}

func (s *session) writeError(ctx context.Context, msg string) error {
	return s.write(ctx, errorFrame{Type: "error", Message: msg})
}

func (s *session) write(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		if isClosed(ctx, err) {
			return nil
		}
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// isClosed reports whether err is an orderly end of the session rather
// than a failure.
func isClosed(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
