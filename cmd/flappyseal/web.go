package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/platform/web"
)

var (
	flagWebAddr string
	flagOrigins []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/websocket server",
	Long: `Start an HTTP server for browser clients.

Endpoints:
  GET /healthz          - Liveness probe
  GET /api/leaderboard  - This week's top scores as JSON (?n=10)
  GET /ws               - Websocket play session

Clients send {"type":"jump"} and {"type":"resize","width":W,"height":H};
the server runs the game and streams JSON frames back.

Players are identified by a token signed with $FLAPPYSEAL_SECRET, sent as
"Authorization: Bearer <token>" or "?token=<token>". Without a secret
everyone plays anonymously.

Examples:
  flappyseal web
  flappyseal web --addr :9000 --origin example.com`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Extra origins allowed to open websockets")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	verifier, err := verifierFromEnv(os.Getenv)
	if err != nil {
		return err
	}
	if verifier == nil {
		logger.Warn(envSecret + " not set; all players are anonymous")
	}

	cfg := web.Config{
		Address:        flagWebAddr,
		TickRate:       flagFPS,
		OriginPatterns: flagOrigins,
	}
	server := web.NewServer(cfg, svc.game, svc.submitter, svc.store, verifier, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return server.Serve(ctx) })
	eg.Go(func() error { return leaderboard.NewResetter(svc.store, logger).Run(ctx) })
	return eg.Wait()
}
