package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "prodplan.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "prodplan"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "prodplan"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Feed defaults
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = "https://rest.fnar.net"
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Feed.RateLimit.Requests == 0 {
		cfg.Feed.RateLimit.Requests = 2
	}
	if cfg.Feed.RateLimit.Burst == 0 {
		cfg.Feed.RateLimit.Burst = 5
	}
	if cfg.Feed.Retry.MaxAttempts == 0 {
		cfg.Feed.Retry.MaxAttempts = 3
	}
	if cfg.Feed.Retry.BackoffBase == 0 {
		cfg.Feed.Retry.BackoffBase = 1 * time.Second
	}

	// Data defaults
	if cfg.Data.RecipeCSV == "" {
		cfg.Data.RecipeCSV = "data/recipes.csv"
	}
	if cfg.Data.PriceJSON == "" {
		cfg.Data.PriceJSON = "data/prices.json"
	}

	// Resolver defaults
	if cfg.Resolver.MaxDepth == 0 {
		cfg.Resolver.MaxDepth = 12
	}
	if cfg.Resolver.ExploreDepth == 0 {
		cfg.Resolver.ExploreDepth = 2
	}
	if cfg.Resolver.KeepRootChildren == 0 {
		cfg.Resolver.KeepRootChildren = 4
	}
	if cfg.Resolver.KeepDeepChildren == 0 {
		cfg.Resolver.KeepDeepChildren = 2
	}
	if cfg.Resolver.MaxScenariosPerRow == 0 {
		cfg.Resolver.MaxScenariosPerRow = 1024
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
