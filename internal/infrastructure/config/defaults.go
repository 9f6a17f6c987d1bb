package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./saves/research.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "research"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "research_queue"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Research defaults
	if cfg.Research.CatalogPath == "" {
		cfg.Research.CatalogPath = "./configs/catalog.yaml"
	}
	if cfg.Research.SessionID == "" {
		cfg.Research.SessionID = "default"
	}
	if cfg.Research.ProgressRate == 0 {
		cfg.Research.ProgressRate = 1
	}
	if cfg.Research.FastResearchMultiplier == 0 {
		cfg.Research.FastResearchMultiplier = 500
	}

	// Simulation defaults
	if cfg.Simulation.WorkPerTick == 0 {
		cfg.Simulation.WorkPerTick = 1
	}
	if cfg.Simulation.MaxTicks == 0 {
		cfg.Simulation.MaxTicks = 10000
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Session defaults
	if cfg.Session.LockFile == "" {
		cfg.Session.LockFile = "./saves/research-queue.pid"
	}
}
