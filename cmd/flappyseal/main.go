// flappyseal is a one-button arcade game: keep the seal between the ice.
//
// Usage:
//
//	flappyseal play             - Play in this terminal
//	flappyseal serve            - Start SSH server for remote play
//	flappyseal web              - Start HTTP/websocket server for browsers
//	flappyseal scores           - Show this week's leaderboard
//	flappyseal reset            - Clear the leaderboard now
//	flappyseal token <user-id>  - Mint a player token
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappyseal/scores.db)
//	--config <path>       - Game tuning YAML
//	--log-level <level>   - debug, info, warn or error
//	--sentry-dsn <dsn>    - Report panics to Sentry
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

const (
	envSecret = "FLAPPYSEAL_SECRET"
	envToken  = "FLAPPYSEAL_TOKEN"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLogLevel  string
	flagSentryDSN string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyseal",
	Short: "Flappy Seal - a one-button arcade game for terminals and browsers",
	Long: `Flappy Seal is a one-button arcade game. Flap to keep the seal in the
air and slip through the gaps between the ice. Every gap passed scores
a point; verified players get their best score on the weekly leaderboard.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start HTTP/websocket server for browsers
  scores   - Show this week's leaderboard
  reset    - Clear the leaderboard now
  token    - Mint a player token

Examples:
  flappyseal play
  flappyseal serve --ssh :2222
  flappyseal web --addr :8080
  flappyseal scores -n 20`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if flagSentryDSN != "" {
			sentry.Flush(2 * time.Second)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappyseal/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSentryDSN, "sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for panic reports")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tokenCmd)
}

// setup configures logging and crash reporting for every subcommand.
func setup(*cobra.Command, []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "flappyseal",
		Level:           level,
	})

	if flagSentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: flagSentryDSN}); err != nil {
			return fmt.Errorf("cannot initialise sentry: %w", err)
		}
		logger.Debug("sentry enabled")
	}
	return nil
}
