package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/handlers"
	"github.com/myfans/settlement/internal/ledger"
	"github.com/myfans/settlement/internal/ratelimit"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the settlement API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info("starting settlement api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"horizon", cfg.Ledger.HorizonURL,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", "error", err)
			return err
		}
	}

	clock := clockwork.NewRealClock()
	ledgerClient := ledger.NewClient(cfg.Ledger.HorizonURL, cfg.Ledger.Timeout, logger)
	monitor := ledger.NewMonitor(ledgerClient, cfg.Ledger.ProbeInterval, cfg.Ledger.Timeout, clock, logger)
	go monitor.Run(ctx)

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if cfg.Redis.URL != "" {
		client, err := ratelimit.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", "error", err)
		} else {
			defer client.Close()
			limiter = ratelimit.NewRedisLimiter(client, cfg.Redis.Prefix, cfg.Checkout.FanRateLimit, cfg.Checkout.FanRateLimitWindow)
		}
	}

	publisher := events.NewPublisher(&cfg.Events, logger)
	defer publisher.Close()

	router, err := handlers.NewRouter(database, cfg, handlers.Dependencies{
		Ledger:    ledgerClient,
		Network:   monitor,
		Publisher: publisher,
		Limiter:   limiter,
		Clock:     clock,
	}, logger)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serveErr:
		logger.Error("server failed", "error", err)
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
