// Package main provides the entry point for the scheduled backtest daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/optionsim/internal/backtest"
	"github.com/yourusername/optionsim/internal/config"
	"github.com/yourusername/optionsim/internal/health"
	"github.com/yourusername/optionsim/internal/logger"
	"github.com/yourusername/optionsim/internal/marketdata"
	"github.com/yourusername/optionsim/internal/metrics"
	"github.com/yourusername/optionsim/internal/priceseries"
	"github.com/yourusername/optionsim/internal/scheduler"
	"github.com/yourusername/optionsim/internal/service"
	"github.com/yourusername/optionsim/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	runOnce    bool
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&runOnce, "once", false, "Run the watchlist once and exit instead of scheduling")
}

var rootCmd = &cobra.Command{
	Use:   "backtestd",
	Short: "Run scheduled options strategy backtests over a watchlist",
	Long:  `Runs the configured watchlist of asset and strategy pairs on a cron schedule, exporting a JSON report per entry and exposing health and metrics endpoints.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(loaded, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(loaded); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

func runDaemon() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"entries":     len(cfg.Watchlist),
	}).Info("Backtest daemon starting")

	quoteClient, provider := buildProvider()
	loader := priceseries.NewLoader(provider, appLog)
	registry := strategy.DefaultRegistry(appLog)

	engine, err := backtest.NewEngine(loader, registry, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create engine")
	}

	runner, err := service.NewBatchRunner(loader, engine, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create batch runner")
	}

	if runOnce {
		batch := runner.RunWatchlist(ctx, cfg)
		appLog.Infof("Watchlist run completed: %s", batch.String())
		return
	}

	metricsServer := startMetricsServer()

	sched := scheduler.NewScheduler(runner, appLog)
	cronExpr := cfg.Schedule.WatchlistCron
	if cronExpr == "" {
		cronExpr = "0 6 * * *"
	}
	if err := sched.ScheduleWatchlist(cronExpr, cfg); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule watchlist job")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		Provider:    quoteClient,
		Schedule:    sched,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	appLog.WithField("next_run", sched.GetNextRun()).Info("Backtest daemon started")

	<-sigChan
	appLog.Info("Shutdown signal received")

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Failed to stop scheduler")
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Failed to stop metrics server")
		}
	}

	appLog.Info("Backtest daemon stopped")
}

func buildProvider() (*marketdata.Client, marketdata.Provider) {
	httpCfg := marketdata.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.MarketData.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MarketData.MaxRetries
	httpCfg.RateLimit = cfg.MarketData.RateLimitPerSec
	httpCfg.CircuitBreakerMax = cfg.MarketData.CircuitBreakerMax

	httpClient := marketdata.NewRateLimitedHTTPClient(httpCfg, appLog)
	quoteClient := marketdata.NewClient(httpClient, cfg.MarketData.BaseURL, cfg.MarketData.Token, appLog)

	var provider marketdata.Provider = quoteClient
	if cfg.MarketData.CacheTTLSeconds > 0 {
		provider = marketdata.NewCachedProvider(provider, time.Duration(cfg.MarketData.CacheTTLSeconds)*time.Second)
	}
	return quoteClient, provider
}

func startMetricsServer() *http.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}

	metrics.InitRegistry()
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()

	return server
}
