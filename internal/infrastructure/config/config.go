package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Research   ResearchConfig   `mapstructure:"research"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Session    SessionConfig    `mapstructure:"session"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/research-queue")
	}

	v.SetEnvPrefix("RQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	// DATABASE_URL is honoured without the RQ_ prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers every known key so AutomaticEnv can resolve them
// during Unmarshal even when no config file mentions the key.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"database.type", "database.url", "database.path", "database.host", "database.port",
		"database.user", "database.password", "database.name", "database.sslmode",
		"logging.level", "logging.format", "logging.output", "logging.file_path",
		"logging.include_caller", "logging.include_stacktrace", "logging.persist",
		"research.catalog_path", "research.session_id", "research.progress_rate",
		"research.fast_research", "research.fast_research_multiplier",
		"simulation.ticks_per_second", "simulation.work_per_tick", "simulation.max_ticks",
		"metrics.enabled", "metrics.host", "metrics.port", "metrics.path",
		"session.lock_file",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns a configuration populated only with defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
