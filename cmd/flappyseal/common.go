package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/FUCKiro/flappyseal-app/internal/config"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

// services are the pieces every game host shares.
type services struct {
	game      config.SealConfig
	store     *storage.Store
	submitter *leaderboard.Submitter
}

func openServices(l *log.Logger) (*services, error) {
	game, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}

	return &services{
		game:      game,
		store:     store,
		submitter: leaderboard.NewSubmitter(store, l, game.Leaderboard.SubmitTimeout),
	}, nil
}

// Close waits for pending score submissions, then closes the store.
func (s *services) Close() error {
	s.submitter.Wait()
	return s.store.Close()
}

// verifierFromEnv returns nil when no secret is configured.
func verifierFromEnv(getenv func(string) string) (*identity.Verifier, error) {
	secret := getenv(envSecret)
	if secret == "" {
		return nil, nil
	}
	return identity.NewVerifier([]byte(secret))
}
