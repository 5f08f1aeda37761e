// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Default pipeline configuration constants.
const (
	defaultHistoryDays    = 7
	defaultPredictionDays = 2
	defaultSamplesPerDay  = 4
	defaultTrainSplit     = 0.85
	defaultSeed           = 42
	defaultWorkers        = 1

	hoursPerDay = 24
)

// Config contains pipeline configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// HistoryDays is the history window length in days.
	HistoryDays int `koanf:"history_days"`

	// PredictionDays is the future window length in days.
	PredictionDays int `koanf:"prediction_days"`

	// SamplesPerDay is the expected sampling density of the feed.
	// With 6-hour averaged samples this is 4.
	SamplesPerDay int `koanf:"samples_per_day"`

	// TrainSplit is the fraction of valid examples assigned to the
	// training set; the rest go to validation.
	TrainSplit float64 `koanf:"train_split"`

	// Seed seeds the split shuffle for reproducible partitions.
	Seed int64 `koanf:"seed"`

	// Workers sets how many goroutines build examples concurrently.
	Workers int `koanf:"workers"`

	// MetricsAddr, if set, serves Prometheus metrics during the run,
	// e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		HistoryDays:    defaultHistoryDays,
		PredictionDays: defaultPredictionDays,
		SamplesPerDay:  defaultSamplesPerDay,
		TrainSplit:     defaultTrainSplit,
		Seed:           defaultSeed,
		Workers:        defaultWorkers,
	}
}

// HistoryLength returns the history window length as a duration.
func (c *Config) HistoryLength() time.Duration {
	return time.Duration(c.HistoryDays) * hoursPerDay * time.Hour
}

// PredictionLength returns the future window length as a duration.
func (c *Config) PredictionLength() time.Duration {
	return time.Duration(c.PredictionDays) * hoursPerDay * time.Hour
}

// SampleInterval returns the expected spacing between feed samples.
func (c *Config) SampleInterval() time.Duration {
	return hoursPerDay * time.Hour / time.Duration(c.SamplesPerDay)
}
