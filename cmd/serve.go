package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radiorecon/internal/handlers"
	"radiorecon/internal/logger"
	"radiorecon/internal/server"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the operator API and periodic scan-then-attack cycles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.SigningKey == "" {
			return errors.New("auth.signing_key must be set to serve the API")
		}

		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				log.Errorw("failed to close resources", "err", cerr)
			}
		}()

		// context for background goroutines
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := a.services.Init(ctx, a.wifi); err != nil {
			// Cycles keep running; each scan reports the inactive radio.
			log.Errorw("wlan init failed", "err", err)
		}
		cycleDone := make(chan struct{})
		go func() {
			defer close(cycleDone)
			a.services.CycleRunner.Run(ctx, cfg.Interval)
		}()

		srv := &server.Server{}
		runHTTPServer(srv, cfg.Port, cfg.CORSOrigins, handlers.NewHandler(a.services, log), log)
		notifyReady(cfg.NotifyReady, log)

		waitForShutdown(cancel, srv, log)
		log.Infow("waiting for the running cycle to finish")
		<-cycleDone
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP listen port")
	serveCmd.Flags().Duration("interval", 0, "time between cycles")
	bindFlags(serveCmd, map[string]string{"port": "port", "cycle.interval": "interval"})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, origins []string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes(), origins); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// notifyReady tells systemd the service is up when running as a notify unit.
func notifyReady(enabled bool, log *logger.Logger) {
	if !enabled {
		return
	}
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warnw("sd_notify failed", "err", err)
		return
	}
	log.Debugw("sd_notify", "sent", sent)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
