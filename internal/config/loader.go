package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STRATUS_CONFIG is set
//  3. env (prefix STRATUS_)
//
// Configuration errors are fatal at startup, before any processing.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("STRATUS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: STRATUS_TRAIN_SPLIT, STRATUS_HISTORY_DAYS, ...
	// Map env keys like STRATUS_TRAIN_SPLIT -> train_split (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("STRATUS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "stratus_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that would abort or silently
// produce an empty training set.
func (c *Config) Validate() error {
	if c.TrainSplit <= 0 || c.TrainSplit >= 1 {
		return fmt.Errorf("%w: train_split %v must be inside (0, 1)", ErrInvalidConfig, c.TrainSplit)
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("%w: history_days %d must be positive", ErrInvalidConfig, c.HistoryDays)
	}
	if c.PredictionDays <= 0 {
		return fmt.Errorf("%w: prediction_days %d must be positive", ErrInvalidConfig, c.PredictionDays)
	}
	if c.SamplesPerDay <= 0 {
		return fmt.Errorf("%w: samples_per_day %d must be positive", ErrInvalidConfig, c.SamplesPerDay)
	}
	// A sampling density that does not divide the day evenly can
	// never fill a whole-day window exactly, so no example would
	// ever validate. Reject it up front.
	interval := c.SampleInterval()
	if (hoursPerDay*time.Hour)%interval != 0 ||
		c.HistoryLength()%interval != 0 ||
		c.PredictionLength()%interval != 0 {
		return fmt.Errorf("%w: samples_per_day %d does not divide the configured windows evenly",
			ErrInvalidConfig, c.SamplesPerDay)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers %d must be positive", ErrInvalidConfig, c.Workers)
	}
	return nil
}
