package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/FUCKiro/flappyseal-app/internal/core"
	"github.com/FUCKiro/flappyseal-app/internal/identity"
	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/platform/tui"
)

var flagToken string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W/Click  - Flap (also starts and restarts)
  Q/Ctrl+C          - Quit

Scores are saved when you play with a verified player token:
  export FLAPPYSEAL_SECRET=...
  export FLAPPYSEAL_TOKEN=$(flappyseal token me --name "Seal Fan")

Logs go to ~/.flappyseal/play.log so they do not disturb the game.

Examples:
  flappyseal play
  flappyseal play --seed 42
  flappyseal play --config ./my-seal.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagToken, "token", "", "Player token (default: $FLAPPYSEAL_TOKEN)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	fileLogger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := openServices(fileLogger)
	if err != nil {
		return err
	}
	defer svc.Close()

	// Local play has no background resetter; drop last week's scores now.
	if err := leaderboard.NewResetter(svc.store, fileLogger).PurgeStale(cmd.Context()); err != nil {
		fileLogger.Warn("cannot purge stale scores", "err", err)
	}

	provider, err := playerFromEnv(os.Getenv, fileLogger)
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}

	return tui.Run(svc.game, tui.Options{
		Runtime:  rt,
		Identity: provider,
		Sink:     svc.submitter,
		Board:    svc.store,
		Logger:   fileLogger,
	})
}

// playerFromEnv resolves the local player from --token or the environment.
func playerFromEnv(getenv func(string) string, l *log.Logger) (identity.Provider, error) {
	token := flagToken
	if token == "" {
		token = getenv(envToken)
	}
	if token == "" {
		return identity.Anonymous{}, nil
	}

	verifier, err := verifierFromEnv(getenv)
	if err != nil {
		return nil, err
	}
	if verifier == nil {
		l.Warn("player token given without " + envSecret + "; playing anonymously")
		return identity.Anonymous{}, nil
	}
	if _, err := verifier.Verify(token); err != nil {
		l.Warn("player token rejected; playing anonymously", "err", err)
	}
	return identity.NewTokenProvider(verifier, token), nil
}

func playLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".flappyseal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "play.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open play log: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyseal",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }, nil
}
