package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/platform/httpapi"
	"github.com/vovakirdan/quick-skirmish/internal/platform/tui"
	"github.com/vovakirdan/quick-skirmish/internal/session"
	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagSessionTTL  time.Duration
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start servers that let remote players play Quick Skirmish.

The SSH server gives each connection its own menu, difficulty picker and
match history. The HTTP server exposes game sessions as a JSON API under
/api/sessions. Both record finished matches in the shared database.

Pass an empty address to disable a server; at least one must listen.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skirmish/host_key

Examples:
  skirmish serve                          # SSH on :23234, HTTP on :8080
  skirmish serve --http ""                # SSH only
  skirmish serve --ssh "" --http :9000    # HTTP only
  skirmish serve --session-ttl 10m        # Drop idle HTTP games sooner

Users can connect with:
  ssh localhost -p 23234
  curl -X POST localhost:8080/api/sessions`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting SSH users (0 = 30)")
	serveCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", session.DefaultTTL, "Idle time before an HTTP game session is dropped")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	gameCfg, err := config.LoadSkirmish(flagServeConfig)
	if err != nil {
		return err
	}
	skirmish.SetConfigPath(flagServeConfig)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	var shutdowns []func(context.Context) error

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		if flagIdleTimeout > 0 {
			sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		}

		sshServer, err := tui.NewSSHServer(sshCfg, store, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
		go func() { errCh <- sshServer.ListenAndServe() }()
		shutdowns = append(shutdowns, sshServer.Shutdown)
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshServer.Addr()))
	}

	if flagHTTPAddr != "" {
		manager := session.NewManager(session.Options{
			Config: gameCfg,
			TTL:    flagSessionTTL,
			Saver:  store,
			Logger: logger.WithPrefix("sessions"),
		})
		manager.Start(ctx)
		defer manager.Stop()

		gin.SetMode(ginMode(logger.GetLevel()))
		httpServer := httpapi.NewServer(flagHTTPAddr, manager, logger.WithPrefix("http"))
		go func() {
			if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}()
		shutdowns = append(shutdowns, httpServer.Shutdown)
	}

	fmt.Println("Press Ctrl+C to stop")

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error("Server failed", "err", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown incomplete", "err", err)
		}
	}
	return serveErr
}

// ginMode keeps gin's debug output, including its route dump, for debug logging only.
func ginMode(level log.Level) string {
	if level <= log.DebugLevel {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
