package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/campaignkit/internal/pipeline"
	"github.com/ppiankov/campaignkit/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveAddr     string
	serveLogLevel string
	serveNoCache  bool
)

const shutdownGrace = 10 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the draft engine over HTTP",
	Long: `Serve exposes the engine as a JSON API for the campaign builder UI:

  POST /v1/drafts    submission body -> report with drafts and readiness
  POST /v1/parse     submission body -> extracted answers and detected platforms
  POST /v1/allocate  submission body -> budget split per platform
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

Bodies are either JSON ({"body": "...", "selection": {...}}) or raw text with
the platform selection in ?platforms=meta,google.

Example:
  campaignkit serve
  campaignkit serve --addr :9090 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable the result cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveLogLevel != "" {
		cfg.Server.LogLevel = serveLogLevel
	}
	if serveNoCache {
		cfg.Cache.Enabled = false
	}
	if err := resolveAPIKey(&cfg.LLM); err != nil {
		return err
	}

	logger := newLogger(cfg.Server.LogLevel, verbose, true, os.Stdout)
	slog.SetDefault(logger)

	srv := server.New(pipeline.NewPipeline(cfg, logger), cfg, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.Server.Addr),
			slog.Bool("cache", cfg.Cache.Enabled),
			slog.String("llm", cfg.LLM.Provider))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
