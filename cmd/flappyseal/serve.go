package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/FUCKiro/flappyseal-app/internal/leaderboard"
	"github.com/FUCKiro/flappyseal-app/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All sessions share the weekly
leaderboard, which is cleared every Monday 00:00 UTC.

Players who log in with a public key are verified and their scores are
saved under a stable ID derived from the key. Anyone else may play as a
guest, but guest scores are not saved.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappyseal/host_key

Examples:
  flappyseal serve                           # Listen on :23234 with auto-generated key
  flappyseal serve --ssh :2222               # Listen on port 2222
  flappyseal serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	cfg := tui.DefaultSSHServerConfig()
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	cfg.HostKeyPath = flagHostKey
	cfg.TickRate = flagFPS
	server, err := tui.NewSSHServer(cfg, svc.game, svc.submitter, svc.store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return server.Serve(ctx) })
	eg.Go(func() error { return leaderboard.NewResetter(svc.store, logger).Run(ctx) })

	logger.Info("connect with: ssh localhost -p " + portOf(server.Addr()))
	return eg.Wait()
}

// portOf returns the port part of a listen address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
