package leaderboard

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FUCKiro/flappyseal-app/internal/identity"
	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type saverFunc func(ctx context.Context, userID, name string, score int) (bool, error)

func (f saverFunc) SaveBest(ctx context.Context, userID, name string, score int) (bool, error) {
	return f(ctx, userID, name, score)
}

func TestSubmitterSavesToStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var out syncBuffer
	s := NewSubmitter(store, log.New(&out), time.Second)

	who := identity.Identity{ID: "u1", DisplayName: "Seal", EmailVerified: true}
	s.Submit(7, who)
	s.Submit(3, who)
	s.Wait()

	e, ok, err := store.BestFor(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("BestFor() = %v, %v", ok, err)
	}
	if e.Score != 7 || e.DisplayName != "Seal" {
		t.Errorf("stored %+v, expected Seal with 7", e)
	}
	if !strings.Contains(out.String(), "new personal best") {
		t.Errorf("expected a personal best log line, got %q", out.String())
	}
}

func TestSubmitterLogsFailures(t *testing.T) {
	var out syncBuffer
	failing := saverFunc(func(context.Context, string, string, int) (bool, error) {
		return false, errors.New("disk full")
	})
	s := NewSubmitter(failing, log.New(&out), time.Second)

	s.Submit(5, identity.Identity{ID: "u2"})
	s.Wait()

	if got := out.String(); !strings.Contains(got, "score submission failed") || !strings.Contains(got, "disk full") {
		t.Errorf("expected failure to be logged, got %q", got)
	}
}

func TestSubmitterRecoversPanics(t *testing.T) {
	var out syncBuffer
	panicking := saverFunc(func(context.Context, string, string, int) (bool, error) {
		panic("boom")
	})
	s := NewSubmitter(panicking, log.New(&out), 0)

	s.Submit(5, identity.Identity{ID: "u3"})
	s.Wait()

	if !strings.Contains(out.String(), "score submission panicked") {
		t.Errorf("expected panic to be logged, got %q", out.String())
	}
}

func TestSubmitterAppliesTimeout(t *testing.T) {
	var out syncBuffer
	slow := saverFunc(func(ctx context.Context, _, _ string, _ int) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	})
	s := NewSubmitter(slow, log.New(&out), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Submit(1, identity.Identity{ID: "u4"})
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not time out")
	}
	if !strings.Contains(out.String(), "deadline exceeded") {
		t.Errorf("expected deadline error in log, got %q", out.String())
	}
}

func TestSubmitDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	blocked := saverFunc(func(context.Context, string, string, int) (bool, error) {
		<-release
		return true, nil
	})
	s := NewSubmitter(blocked, log.New(&syncBuffer{}), 0)

	start := time.Now()
	s.Submit(1, identity.Identity{ID: "u5"})
	if time.Since(start) > time.Second {
		t.Error("Submit() blocked on the store")
	}
	close(release)
	s.Wait()
}
