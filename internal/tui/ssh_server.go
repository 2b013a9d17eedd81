package tui

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/rs/zerolog/log"
	gossh "golang.org/x/crypto/ssh"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.wordle/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// ModelFactory builds the model for one SSH connection.
type ModelFactory func(ctx context.Context, player string, r *lipgloss.Renderer) (*Model, error)

// SSHServer wraps a Wish SSH server. Each connection plays its own session.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	factory ModelFactory
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, factory ModelFactory) (*SSHServer, error) {
	srv := &SSHServer{config: cfg, factory: factory}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".wordle", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Any key identifies a player; keyless clients play as guests.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithKeyboardInteractiveAuth(func(ssh.Context, gossh.KeyboardInteractiveChallenge) bool { return true }),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// PlayerID derives a stable player id from the client's key. Keyless
// clients cannot prove who they are, so each connection gets a one-off
// guest id and its stats are never merged with another's.
func PlayerID(key ssh.PublicKey, user string) string {
	if key != nil {
		return "ssh:" + strings.TrimPrefix(gossh.FingerprintSHA256(key), "SHA256:")
	}
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "guest:" + user + "-" + hex.EncodeToString(b)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sess.Pty(); !ok {
		wish.Fatalln(sess, "wordle needs a terminal: connect with ssh -t")
		return nil, nil
	}

	player := PlayerID(sess.PublicKey(), sess.User())
	m, err := s.factory(sess.Context(), player, bubbletea.MakeRenderer(sess))
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("create model")
		wish.Fatalln(sess, "could not start a game:", err)
		return nil, nil
	}
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		log.Info().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Msg("ssh session started")
		next(sess)
		log.Info().Str("user", sess.User()).Dur("duration", time.Since(start)).Msg("ssh session ended")
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	log.Info().Str("address", s.config.Address).Msg("starting SSH server")

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down SSH server")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(sctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
