package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path over Default and validates
// the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over Default and validates
// the result. An empty document yields Default.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = Default().Workers
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("retention_days %d must not be negative", cfg.RetentionDays))
	}

	if cfg.RetentionDays > 0 && cfg.LogDir == "" {
		errs = append(errs, errors.New("retention_days requires log_dir"))
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", cfg.Workers))
	}

	switch cfg.BitDepth {
	case 0, 8, 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("bit_depth %d is invalid; valid values: 8, 16, 24, 32", cfg.BitDepth))
	}

	if cfg.OutputDir != "" {
		if info, err := os.Stat(cfg.OutputDir); err != nil {
			errs = append(errs, fmt.Errorf("output_dir %q: %w", cfg.OutputDir, err))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Errorf("output_dir %q is not a directory", cfg.OutputDir))
		}
	}

	return errors.Join(errs...)
}
