package service

import (
	"time"

	"github.com/okian/stratus/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithHistoryLength sets the history window length.
func WithHistoryLength(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.historyLength = d
		}
	}
}

// WithPredictionLength sets the future window length.
func WithPredictionLength(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.predictionLength = d
		}
	}
}

// WithSampleInterval sets the expected spacing between feed samples.
func WithSampleInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sampleInterval = d
		}
	}
}

// WithTrainSplit sets the training-set ratio.
func WithTrainSplit(ratio float64) Option {
	return func(s *Service) {
		s.trainSplit = ratio
	}
}

// WithSeed seeds the split shuffle.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithWorkers sets the number of example-building goroutines.
func WithWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workers = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
