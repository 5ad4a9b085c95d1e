package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

// shutdownGrace bounds how long open sessions get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig configures NewSSHServer.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath is created on first start when missing.
	// Empty means ~/.timestep/host_key.
	HostKeyPath string

	DBPath      string // run log shared by every session
	IdleTimeout time.Duration
	FrameRate   int // presentation rate handed to each session

	Logger *log.Logger // nil logs to stderr
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.timestep/runs.db",
		IdleTimeout: 30 * time.Minute,
		FrameRate:   60,
	}
}

// SSHServer hands every SSH connection its own menu session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server without listening yet. A run log that
// cannot be opened only disables recording.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	srv := &SSHServer{config: cfg, logger: cfg.Logger}
	if srv.logger == nil {
		srv.logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "timestep-ssh"})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("run log disabled", "path", cfg.DBPath, "error", err)
		srv.store = nil
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.startSession),
			activeterm.Middleware(),
			srv.logSessions,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return srv, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".timestep", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// startSession sizes a SessionModel to the client's terminal.
func (s *SSHServer) startSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		FrameRate: s.config.FrameRate,
		Seed:      time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		start := time.Now()
		l.Info("session opened")
		next(sess)
		l.Info("session closed", "after", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe accepts connections until ctx is cancelled or the listener
// fails, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		s.closeStore()
		if err != nil {
			return fmt.Errorf("tui: SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown waits up to shutdownGrace for sessions, then closes the run log.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) Addr() string { return s.config.Address }

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}
