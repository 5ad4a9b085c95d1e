package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-timestep/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demos over SSH",
	Long: `Serve the demo picker over SSH. Every connection gets its own
session; all sessions record into the same run log.

The host key is read from --host-key, or generated on first start at
~/.timestep/host_key. Clients need a terminal (ssh -t).

Examples:
  timestep serve
  timestep serve --ssh :2222 --idle-timeout 5m
  timestep serve --host-key ./host_key --db ./runs.db`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file, generated when missing")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect sessions idle for this long")
}

func runServe(cmd *cobra.Command, _ []string) {
	if err := applyDemoFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		FrameRate:   flagFPS,
		Logger:      newLogger(os.Stderr, "timestep-ssh"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving demos over SSH on %s (ssh localhost -p %s), Ctrl+C stops\n",
		server.Addr(), portOf(server.Addr()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// portOf extracts the port from host:port, or returns addr unchanged.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
