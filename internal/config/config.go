// Package config provides configuration management for the optionsim engine.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	MarketData MarketDataConfig `mapstructure:"market_data" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Watchlist  []WatchlistEntry `mapstructure:"watchlist" validate:"dive"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Health     HealthConfig     `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// MarketDataConfig represents the external quote provider configuration
type MarketDataConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	Token             string  `mapstructure:"token"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSec   float64 `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// BacktestConfig represents default backtest run parameters
type BacktestConfig struct {
	StartDate      string  `mapstructure:"start_date" validate:"required,dateformat"`
	EndDate        string  `mapstructure:"end_date" validate:"required,dateformat"`
	InitialCapital float64 `mapstructure:"initial_capital" validate:"required,gt=0"`
	OutputPath     string  `mapstructure:"output_path" validate:"required"`
}

// WatchlistEntry is one scheduled backtest: an asset paired with a catalog
// strategy over the default or an overridden window
type WatchlistEntry struct {
	Symbol         string  `mapstructure:"symbol" validate:"required"`
	StrategyName   string  `mapstructure:"strategy_name" validate:"required"`
	StartDate      string  `mapstructure:"start_date" validate:"omitempty,dateformat"`
	EndDate        string  `mapstructure:"end_date" validate:"omitempty,dateformat"`
	InitialCapital float64 `mapstructure:"initial_capital" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents the batch scheduling configuration
type ScheduleConfig struct {
	WatchlistCron string `mapstructure:"watchlist_cron"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health endpoint configuration
type HealthConfig struct {
	Port string `mapstructure:"port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
