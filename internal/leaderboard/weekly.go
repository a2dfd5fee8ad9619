package leaderboard

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// WeekStart returns the most recent Monday 00:00 UTC at or before t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	sinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, time.UTC)
}

// NextReset returns the Monday 00:00 UTC after t.
func NextReset(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// Purger removes scores from the store.
type Purger interface {
	PurgeBefore(ctx context.Context, t time.Time) (int64, error)
	ClearAll(ctx context.Context) (int64, error)
}

// Resetter empties the leaderboard every Monday 00:00 UTC.
type Resetter struct {
	store  Purger
	logger *log.Logger
	now    func() time.Time
	after  func(time.Duration) <-chan time.Time
}

// NewResetter creates a Resetter using the wall clock.
func NewResetter(store Purger, logger *log.Logger) *Resetter {
	return &Resetter{
		store:  store,
		logger: logger.WithPrefix("weekly-reset"),
		now:    time.Now,
		after:  time.After,
	}
}

// Run drops scores left over from previous weeks, then clears the store at
// each weekly boundary until ctx is cancelled.
func (r *Resetter) Run(ctx context.Context) error {
	if err := r.PurgeStale(ctx); err != nil {
		r.logger.Warn("stale purge failed", "err", err)
	}

	last := r.now()
	for {
		next := NextReset(last)
		r.logger.Info("next reset scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return nil
		case <-r.after(next.Sub(r.now())):
		}

		n, err := r.store.ClearAll(ctx)
		if err != nil {
			r.logger.Error("weekly reset failed", "err", err)
		} else {
			r.logger.Info("leaderboard reset", "deleted", n)
		}
		last = next
	}
}

// PurgeStale deletes scores achieved before the start of the current week.
func (r *Resetter) PurgeStale(ctx context.Context) error {
	cutoff := WeekStart(r.now())
	n, err := r.store.PurgeBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		r.logger.Info("purged stale scores", "deleted", n, "before", cutoff.Format(time.RFC3339))
	}
	return nil
}
