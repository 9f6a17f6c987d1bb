package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Include caller information (file:line)
	IncludeCaller bool `mapstructure:"include_caller"`

	// Include stack traces for errors
	IncludeStacktrace bool `mapstructure:"include_stacktrace"`

	// Persist session logs to the database alongside the console output
	Persist bool `mapstructure:"persist"`
}
