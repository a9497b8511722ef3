// Package config defines the voicefx run configuration and its YAML loader.
package config

import "runtime"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}

	return false
}

// Config is the run configuration. Fields absent from a loaded file keep
// their Default values.
type Config struct {
	// LogDir holds the daily log files. Empty disables file logging.
	LogDir string `yaml:"log_dir"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// RetentionDays is the age after which files in LogDir are swept.
	// Zero disables the sweep.
	RetentionDays int `yaml:"retention_days"`

	// Workers bounds how many batch requests render concurrently.
	Workers int `yaml:"workers"`

	// BitDepth is the PCM bit depth of written files: 8, 16, 24 or 32.
	BitDepth int `yaml:"bit_depth"`

	// OutputDir, when set, receives derived output files instead of the
	// input file's directory.
	OutputDir string `yaml:"output_dir"`

	// PresetsFile replaces the embedded preset table.
	PresetsFile string `yaml:"presets_file"`

	// ParallelBranches evaluates mix bus branches concurrently.
	ParallelBranches bool `yaml:"parallel_branches"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogDir:           "logs",
		LogLevel:         LogInfo,
		RetentionDays:    7,
		Workers:          runtime.GOMAXPROCS(0),
		BitDepth:         16,
		ParallelBranches: true,
	}
}
