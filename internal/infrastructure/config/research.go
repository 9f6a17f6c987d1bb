package config

// ResearchConfig holds research queue and host settings
type ResearchConfig struct {
	// Path to the YAML project catalog
	CatalogPath string `mapstructure:"catalog_path" validate:"required"`

	// Session (save slot) used when none is given on the command line
	SessionID string `mapstructure:"session_id" validate:"required,max=64"`

	// Global research speed factor applied to every advance
	ProgressRate float64 `mapstructure:"progress_rate" validate:"gt=0"`

	// Debug fast-research mode
	FastResearch bool `mapstructure:"fast_research"`

	// Multiplier applied while fast research is enabled
	FastResearchMultiplier float64 `mapstructure:"fast_research_multiplier" validate:"gt=0"`
}

// SimulationConfig holds tick driver settings
type SimulationConfig struct {
	// Ticks per second, 0 runs unpaced
	TicksPerSecond float64 `mapstructure:"ticks_per_second" validate:"min=0"`

	// Base work points applied per tick
	WorkPerTick float64 `mapstructure:"work_per_tick" validate:"gt=0"`

	// Upper bound when no tick count is given
	MaxTicks int `mapstructure:"max_ticks" validate:"min=1"`
}

// SessionConfig holds single-writer session settings
type SessionConfig struct {
	// Lock file guarding a save slot against concurrent writers
	LockFile string `mapstructure:"lock_file" validate:"required"`
}
