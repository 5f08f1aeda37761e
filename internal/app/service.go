// Package service drives the training-set construction pipeline:
// raw feed -> calibrated sorted series -> windowed examples ->
// train/validation split.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stratus/internal/adapters/feed"
	"github.com/okian/stratus/internal/domain/dataset"
	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/internal/domain/series"
	"github.com/okian/stratus/internal/domain/window"
	"github.com/okian/stratus/pkg/logger"
)

// Default pipeline configuration constants.
const (
	defaultHistoryLength    = 7 * 24 * time.Hour
	defaultPredictionLength = 2 * 24 * time.Hour
	defaultSampleInterval   = 6 * time.Hour
	defaultTrainSplit       = 0.85
	defaultSeed             = 42
	defaultWorkers          = 1
)

// Service runs the pipeline over one decoded feed. It holds only
// configuration; every Run is independent.
type Service struct {
	historyLength    time.Duration
	predictionLength time.Duration
	sampleInterval   time.Duration
	trainSplit       float64
	seed             int64
	workers          int

	logger logger.Logger
}

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Series is the calibrated, sorted measurement series, for CSV
	// export or inspection.
	Series *series.Series

	// Train and Validation are the two disjoint example sets.
	Train      []model.Example
	Validation []model.Example

	// Counters for the end-of-run report.
	SamplesRead    int
	SamplesSkipped int
	Valid          int
	Invalid        int
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		historyLength:    defaultHistoryLength,
		predictionLength: defaultPredictionLength,
		sampleInterval:   defaultSampleInterval,
		trainSplit:       defaultTrainSplit,
		seed:             defaultSeed,
		workers:          defaultWorkers,
		logger:           logger.Get().Named("pipeline"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes the pipeline over the decoded feed and returns the
// split datasets. Window configuration errors fail before any
// processing; per-example validity failures are dropped and counted,
// never fatal.
func (s *Service) Run(ctx context.Context, f *feed.Feed) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger
	start := time.Now()

	log.Info(ctx, "starting pipeline run",
		logger.String("run_id", runID),
		logger.Time("feed_start", f.Start),
		logger.Time("feed_end", f.End),
		logger.Int("samples", len(f.Samples)),
	)

	builder, err := window.NewBuilder(s.historyLength, s.predictionLength)
	if err != nil {
		return nil, err
	}
	validator, err := window.NewValidator(s.historyLength, s.predictionLength, s.sampleInterval)
	if err != nil {
		return nil, err
	}
	splitter, err := dataset.NewSplitter(s.trainSplit,
		dataset.WithSeed(s.seed),
		dataset.WithSplitterLogger(log.Named("splitter")),
	)
	if err != nil {
		return nil, err
	}

	ser := series.FromRaw(f.Samples)

	collector := dataset.NewCollector(builder, validator,
		dataset.WithWorkers(s.workers),
		dataset.WithCollectorLogger(log.Named("collector")),
	)
	valid := collector.Collect(ctx, ser)

	train, validation := splitter.Split(ctx, valid)

	res := &Result{
		RunID:          runID,
		Series:         ser,
		Train:          train,
		Validation:     validation,
		SamplesRead:    len(f.Samples),
		SamplesSkipped: f.Skipped,
		Valid:          len(valid),
		Invalid:        ser.Len() - len(valid),
	}

	log.Info(ctx, "pipeline run finished",
		logger.String("run_id", runID),
		logger.Int("samples_read", res.SamplesRead),
		logger.Int("samples_skipped", res.SamplesSkipped),
		logger.Int("valid_examples", res.Valid),
		logger.Int("invalid_examples", res.Invalid),
		logger.Int("train", len(res.Train)),
		logger.Int("validation", len(res.Validation)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}
