// Package window derives the history and future time bounds for an
// anchor measurement and checks window completeness against the
// expected sampling density.
package window

import (
	"fmt"
	"time"

	"github.com/okian/stratus/internal/domain/model"
)

// Epsilon is the smallest representable time unit in the source feed.
// It is subtracted from / added to the anchor timestamp so the anchor
// itself can never land in its own history or future window.
const Epsilon = time.Second

// Builder computes window bounds for a fixed history and prediction
// length. Both bounds of each window are inclusive, matching the
// series range-query contract.
type Builder struct {
	historyLength    time.Duration
	predictionLength time.Duration
}

// NewBuilder validates the configured lengths and returns a Builder.
func NewBuilder(historyLength, predictionLength time.Duration) (*Builder, error) {
	if historyLength <= 0 {
		return nil, fmt.Errorf("history length %v: %w", historyLength, ErrInvalidWindowLength)
	}
	if predictionLength <= 0 {
		return nil, fmt.Errorf("prediction length %v: %w", predictionLength, ErrInvalidWindowLength)
	}
	return &Builder{
		historyLength:    historyLength,
		predictionLength: predictionLength,
	}, nil
}

// HistoryBounds returns the inclusive bounds of the history window
// for the given anchor: [ts - history, ts - epsilon].
func (b *Builder) HistoryBounds(m model.Measurement) (start, end time.Time) {
	return m.Timestamp.Add(-b.historyLength), m.Timestamp.Add(-Epsilon)
}

// FutureBounds returns the inclusive bounds of the future window for
// the given anchor: [ts + epsilon, ts + prediction].
func (b *Builder) FutureBounds(m model.Measurement) (start, end time.Time) {
	return m.Timestamp.Add(Epsilon), m.Timestamp.Add(b.predictionLength)
}

// HistoryLength returns the configured history window length.
func (b *Builder) HistoryLength() time.Duration { return b.historyLength }

// PredictionLength returns the configured prediction window length.
func (b *Builder) PredictionLength() time.Duration { return b.predictionLength }

// Validator checks that an example's windows hold exactly the number
// of samples the feed's sampling resolution implies.
type Validator struct {
	expectedHistory int
	expectedFuture  int
}

// NewValidator derives the expected per-window sample counts from the
// window lengths and the feed's sample interval (one sample expected
// per interval). Lengths that are not exact multiples of the interval
// would invalidate every example, so they are rejected up front
// instead of silently producing an empty training set.
func NewValidator(historyLength, predictionLength, sampleInterval time.Duration) (*Validator, error) {
	if sampleInterval <= 0 {
		return nil, fmt.Errorf("sample interval %v: %w", sampleInterval, ErrInvalidResolution)
	}
	if historyLength <= 0 || predictionLength <= 0 {
		return nil, fmt.Errorf("window lengths %v/%v: %w", historyLength, predictionLength, ErrInvalidWindowLength)
	}
	if historyLength%sampleInterval != 0 {
		return nil, fmt.Errorf("history length %v is not a multiple of sample interval %v: %w",
			historyLength, sampleInterval, ErrInvalidResolution)
	}
	if predictionLength%sampleInterval != 0 {
		return nil, fmt.Errorf("prediction length %v is not a multiple of sample interval %v: %w",
			predictionLength, sampleInterval, ErrInvalidResolution)
	}

	return &Validator{
		expectedHistory: int(historyLength / sampleInterval),
		expectedFuture:  int(predictionLength / sampleInterval),
	}, nil
}

// Check returns nil if the example's windows are complete, or an
// error wrapping ErrIncompleteWindow that names the observed and
// expected counts.
func (v *Validator) Check(ex model.Example) error {
	if len(ex.History) != v.expectedHistory {
		return fmt.Errorf("history window has %d of %d samples: %w",
			len(ex.History), v.expectedHistory, ErrIncompleteWindow)
	}
	if len(ex.Future) != v.expectedFuture {
		return fmt.Errorf("future window has %d of %d samples: %w",
			len(ex.Future), v.expectedFuture, ErrIncompleteWindow)
	}
	return nil
}

// ExpectedHistory returns the required history sample count.
func (v *Validator) ExpectedHistory() int { return v.expectedHistory }

// ExpectedFuture returns the required future sample count.
func (v *Validator) ExpectedFuture() int { return v.expectedFuture }
