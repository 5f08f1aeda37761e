// Package dataset turns a measurement series into supervised-learning
// examples and partitions them into train/validation splits.
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/internal/domain/series"
	"github.com/okian/stratus/internal/domain/window"
	"github.com/okian/stratus/pkg/logger"
	"github.com/okian/stratus/pkg/metrics"
)

// Collector builds one candidate example per measurement and keeps
// the ones whose windows are complete.
type Collector struct {
	builder   *window.Builder
	validator *window.Validator
	workers   int
	logger    logger.Logger
}

// NewCollector creates a collector over the given window builder and
// validator.
func NewCollector(builder *window.Builder, validator *window.Validator, opts ...CollectorOption) *Collector {
	c := &Collector{
		builder:   builder,
		validator: validator,
		workers:   1,
		logger:    logger.Get().Named("collector"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect walks the series in ascending timestamp order and returns
// the valid examples, in series order. Measurements near the series
// boundaries fail the validity check by construction and are dropped
// with a warning; that is expected, not an error.
//
// Each example is built from a read-only view of the series, so with
// more than one worker the anchors are processed concurrently. The
// output order is ascending regardless of worker count.
func (c *Collector) Collect(ctx context.Context, s *series.Series) []model.Example {
	start := time.Now()
	defer func() {
		metrics.RecordCollectDuration(float64(time.Since(start).Milliseconds()))
	}()

	entries := s.Entries()
	candidates := make([]*model.Example, len(entries))

	build := func(i int) {
		ex := c.buildExample(s, entries[i])
		if err := c.validator.Check(ex); err != nil {
			metrics.RecordExampleInvalid()
			c.logger.Warn(ctx, "dropping example with incomplete window",
				logger.Time("anchor", ex.Actual.Timestamp),
				logger.Error(err),
			)
			return
		}
		metrics.RecordExampleValid()
		candidates[i] = &ex
	}

	if c.workers <= 1 || len(entries) < c.workers {
		for i := range entries {
			build(i)
		}
	} else {
		var wg sync.WaitGroup
		next := make(chan int)
		for w := 0; w < c.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range next {
					build(i)
				}
			}()
		}
		for i := range entries {
			next <- i
		}
		close(next)
		wg.Wait()
	}

	// Compact in series order.
	valid := make([]model.Example, 0, len(candidates))
	for _, ex := range candidates {
		if ex != nil {
			valid = append(valid, *ex)
		}
	}

	c.logger.Info(ctx, "collected examples",
		logger.Int("measurements", len(entries)),
		logger.Int("valid", len(valid)),
		logger.Int("invalid", len(entries)-len(valid)),
	)

	return valid
}

// buildExample slices the history and future windows for one anchor.
func (c *Collector) buildExample(s *series.Series, anchor model.Measurement) model.Example {
	histStart, histEnd := c.builder.HistoryBounds(anchor)
	futStart, futEnd := c.builder.FutureBounds(anchor)

	return model.Example{
		Actual:  anchor,
		History: s.EntriesBetween(histStart, histEnd),
		Future:  s.EntriesBetween(futStart, futEnd),
	}
}
