package dataset

import (
	"math/rand"

	"github.com/okian/stratus/pkg/logger"
)

// CollectorOption applies a configuration option to the Collector.
type CollectorOption func(*Collector)

// WithWorkers sets the number of goroutines building examples.
// Values below 1 keep the collector sequential.
func WithWorkers(count int) CollectorOption {
	return func(c *Collector) {
		if count > 0 {
			c.workers = count
		}
	}
}

// WithCollectorLogger sets a custom logger for the collector.
func WithCollectorLogger(l logger.Logger) CollectorOption {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// SplitterOption applies a configuration option to the Splitter.
type SplitterOption func(*Splitter)

// WithSeed seeds the splitter's random source. The same seed over the
// same example sequence reproduces the same partition.
func WithSeed(seed int64) SplitterOption {
	return func(sp *Splitter) {
		sp.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducibility matters here, not crypto strength
	}
}

// WithRand sets the splitter's random source directly.
func WithRand(rng *rand.Rand) SplitterOption {
	return func(sp *Splitter) {
		if rng != nil {
			sp.rng = rng
		}
	}
}

// WithSplitterLogger sets a custom logger for the splitter.
func WithSplitterLogger(l logger.Logger) SplitterOption {
	return func(sp *Splitter) {
		if l != nil {
			sp.logger = l
		}
	}
}
