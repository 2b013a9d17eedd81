package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
	"github.com/JonJui02/wordle-automated-deployment/internal/tui"
)

var (
	flagSSHAddr    string
	flagSSHHostKey string
	flagSSHDaily   bool
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start an SSH server for remote terminal play",
	Long: `Serve the terminal game over SSH. Every connection plays its own game;
stats are kept per public key; keyless clients play as one-off guests.

Examples:
  wordle ssh
  wordle ssh --addr :2222
  ssh -p 23234 localhost`,
	RunE: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "addr", "", "Listen address (overrides SSH_ADDR)")
	sshCmd.Flags().StringVar(&flagSSHHostKey, "host-key", "", "Host key path (default ~/.wordle/host_key)")
	sshCmd.Flags().BoolVar(&flagSSHDaily, "daily", false, "Serve the word of the day")
}

func runSSH(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = cfg.Server.SSHAddr
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	sshCfg.HostKeyPath = flagSSHHostKey

	srv, err := tui.NewSSHServer(sshCfg, func(ctx context.Context, player string, r *lipgloss.Renderer) (*tui.Model, error) {
		ledger := stats.PlayerLedger{Store: a.stats, Player: player}
		return tui.New(tui.Options{
			Game:     a.gameOptions(ledger, flagSSHDaily),
			Stats:    a.stats,
			Player:   player,
			Label:    a.label(flagSSHDaily),
			Context:  ctx,
			Renderer: r,
		})
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
