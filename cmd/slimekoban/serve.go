package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slimekoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the slimekoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with a level menu. Records are stored
per-server (all users share the same table, keyed by SSH user name).

Host key handling:
  - If --host-key or server.host_key is set, uses that key file
  - Otherwise, auto-generates a key at ~/.slimekoban/host_key

Examples:
  slimekoban serve                           # Listen on the configured address
  slimekoban serve --ssh :2222               # Listen on port 2222
  slimekoban serve --host-key ./my_host_key  # Use specific host key
  slimekoban serve --db postgres://user@db/slimekoban

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), defaults to server.host/port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	gameOpts, err := gameOptions(cfg, src, 0)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, true)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	addr := flagSSHAddr
	if addr == "" {
		addr = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = cfg.Server.HostKey
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: hostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameOpts,
		Store:       store,
		TickRate:    cfg.TickRate,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	_, port, _ := net.SplitHostPort(addr)
	fmt.Printf("Starting slimekoban SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
