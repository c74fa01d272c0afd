package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftmail/driftmail/internal/config"
	"github.com/driftmail/driftmail/internal/smtpd"
	"github.com/driftmail/driftmail/internal/store"
	"github.com/driftmail/driftmail/internal/web"
)

var configPath string

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SMTP receiver, HTTP API, and cleanup loop until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger(cfg.Logging.Level)
		st := store.New()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go st.RunCleanup(ctx, cfg.TTLDuration(), cfg.CleanupIntervalDuration(), log)

		smtpServer := smtpd.NewServer(&smtpd.Backend{
			Store:  st,
			Domain: cfg.SMTP.Domain,
			Log:    log,
		}, cfg.SMTP.Listen, cfg.SMTP.MaxMessageSize)

		api := web.New(st, cfg.SMTP.Domain, log, cfg.HTTP.RateLimit, cfg.RateWindowDuration())
		httpServer := &http.Server{
			Addr:    cfg.HTTP.Listen,
			Handler: api.Handler(),
		}

		errCh := make(chan error, 2)
		go func() {
			log.Info("smtp listening", "addr", cfg.SMTP.Listen, "domain", cfg.SMTP.Domain)
			errCh <- smtpServer.ListenAndServe()
		}()
		go func() {
			log.Info("http listening", "addr", cfg.HTTP.Listen)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
			log.Info("shutting down")
		case err := <-errCh:
			stop()
			log.Error("server failed", "error", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = smtpServer.Close()
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
