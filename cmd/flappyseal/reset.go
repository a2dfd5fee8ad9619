package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the leaderboard now",
	Long: `Remove every score from the leaderboard without waiting for the weekly
reset.

Examples:
  flappyseal reset --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm clearing all scores")
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagResetYes {
		return fmt.Errorf("refusing to clear scores without --yes")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	n, err := store.ClearAll(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("leaderboard cleared", "removed", n)
	return nil
}
