package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FUCKiro/flappyseal-app/internal/identity"
)

var (
	flagTokenName       string
	flagTokenUnverified bool
	flagTokenTTL        time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a player token",
	Long: `Sign a player token with $FLAPPYSEAL_SECRET. The token is accepted by
"flappyseal play" ($FLAPPYSEAL_TOKEN) and by the web server.

Examples:
  flappyseal token alice --name "Alice"
  flappyseal token bob --unverified --ttl 1h`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagTokenName, "name", "", "Display name (default: the user ID)")
	tokenCmd.Flags().BoolVar(&flagTokenUnverified, "unverified", false, "Mark the e-mail as unverified")
	tokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", 30*24*time.Hour, "Token lifetime (0 = never expires)")
}

func runToken(_ *cobra.Command, args []string) error {
	issuer, err := identity.NewIssuer([]byte(os.Getenv(envSecret)), flagTokenTTL)
	if err != nil {
		return fmt.Errorf("%s: %w", envSecret, err)
	}

	token, err := issuer.Issue(identity.Identity{
		ID:            args[0],
		DisplayName:   flagTokenName,
		EmailVerified: !flagTokenUnverified,
	})
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
