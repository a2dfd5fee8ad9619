// Package leaderboard connects finished games to the score store: an
// asynchronous submitter for the game's score sink and the weekly reset.
package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"

	"github.com/FUCKiro/flappyseal-app/internal/identity"
)

// Saver persists a player's best score.
type Saver interface {
	SaveBest(ctx context.Context, userID, displayName string, score int) (bool, error)
}

// Submitter saves scores in the background. It never blocks the caller
// and never reports failures back; they are logged.
type Submitter struct {
	store   Saver
	logger  *log.Logger
	timeout time.Duration

	// pending counts running saves. Wait may overlap with Submit.
	mu      sync.Mutex
	idle    *sync.Cond
	pending int
}

// NewSubmitter creates a Submitter. A zero timeout means no deadline.
func NewSubmitter(store Saver, logger *log.Logger, timeout time.Duration) *Submitter {
	s := &Submitter{
		store:   store,
		logger:  logger.WithPrefix("leaderboard"),
		timeout: timeout,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Submit saves the score for who in a new goroutine.
func (s *Submitter) Submit(score int, who identity.Identity) {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	go s.save(score, who)
}

func (s *Submitter) save(score int, who identity.Identity) {
	defer s.done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("score submission panicked", "user", who.ID, "panic", r)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("user", who.ID)
				scope.SetTag("component", "submitter")
			})
			hub.Recover(fmt.Errorf("submit %d for %s: %v", score, who.ID, r))
			hub.Flush(5 * time.Second)
		}
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	changed, err := s.store.SaveBest(ctx, who.ID, who.DisplayName, score)
	if err != nil {
		s.logger.Warn("score submission failed", "user", who.ID, "score", score, "err", err)
		return
	}
	if changed {
		s.logger.Info("new personal best", "user", who.DisplayName, "score", score)
	} else {
		s.logger.Debug("score below personal best", "user", who.DisplayName, "score", score)
	}
}

func (s *Submitter) done() {
	s.mu.Lock()
	s.pending--
	if s.pending == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

// Wait blocks until no submission is pending. It is safe to call while
// other goroutines keep submitting.
func (s *Submitter) Wait() {
	s.mu.Lock()
	for s.pending > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}
