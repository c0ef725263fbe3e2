// Package main provides the entry point for the one-shot backtest CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/backtest"
	"github.com/yourusername/optionsim/internal/config"
	"github.com/yourusername/optionsim/internal/logger"
	"github.com/yourusername/optionsim/internal/marketdata"
	"github.com/yourusername/optionsim/internal/priceseries"
	"github.com/yourusername/optionsim/internal/service"
	"github.com/yourusername/optionsim/internal/strategy"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		symbol       = flag.String("symbol", "", "Asset symbol to backtest (required)")
		strategyName = flag.String("strategy", "buy & hold stock", "Catalog strategy display name")
		startDate    = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate      = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		capital      = flag.Float64("capital", 0, "Override initial capital")
		output       = flag.String("output", "", "Override report output directory")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel)

	if *symbol == "" {
		appLog.Fatal("A symbol is required, e.g. -symbol AAPL")
	}
	if *output != "" {
		cfg.Backtest.OutputPath = *output
	}

	runner := buildRunner(cfg, appLog)

	entry := config.WatchlistEntry{
		Symbol:         *symbol,
		StrategyName:   *strategyName,
		StartDate:      *startDate,
		EndDate:        *endDate,
		InitialCapital: *capital,
	}

	appLog.WithFields(logrus.Fields{
		"symbol":   entry.Symbol,
		"strategy": entry.StrategyName,
	}).Info("Starting backtest")

	report, err := runner.RunEntry(ctx, cfg, entry)
	if err != nil {
		appLog.WithError(err).Fatal("Backtest failed")
	}

	fmt.Print(backtest.GenerateConsoleReport(report))
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildRunner(cfg *config.Config, appLog *logrus.Logger) *service.BatchRunner {
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
	return runner
}
