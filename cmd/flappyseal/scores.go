package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/platform/tui"
	"github.com/FUCKiro/flappyseal-app/internal/storage"
)

var (
	flagScoresN    int
	flagScoresUser string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show this week's leaderboard",
	Long: `Display the weekly top scores. The leaderboard is cleared every Monday
00:00 UTC.

Examples:
  flappyseal scores
  flappyseal scores -n 20
  flappyseal scores --user 3f1c...`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresN, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresUser, "user", "", "Show one player's best instead")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := leaderboard.NewResetter(store, logger).PurgeStale(ctx); err != nil {
		return err
	}

	if flagScoresUser != "" {
		entry, ok, err := store.BestFor(ctx, flagScoresUser)
		if err != nil {
			return fmt.Errorf("retrieving score: %w", err)
		}
		if !ok {
			fmt.Printf("No score this week for %s.\n", flagScoresUser)
			return nil
		}
		fmt.Printf("%s: %d (%s)\n", entry.DisplayName, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	}

	entries, err := store.TopScores(ctx, flagScoresN)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	players, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting players: %w", err)
	}

	fmt.Println(tui.RenderLeaderboard(entries, flagScoresN, time.Now()))
	fmt.Printf("\n%d player(s) on the board this week.\n", players)
	return nil
}
