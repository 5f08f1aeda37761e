package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/pkg/logger"
	"github.com/okian/stratus/pkg/metrics"
)

// Default splitter configuration constants.
const (
	defaultTrainRatio = 0.85
	defaultRandomSeed = 42
)

// Splitter partitions valid examples into disjoint train and
// validation sets. The shuffle source is injectable so a fixed seed
// reproduces the exact partition.
type Splitter struct {
	ratio float64
	rng   *rand.Rand

	logger logger.Logger
}

// NewSplitter validates the train ratio and returns a Splitter.
// Ratios of exactly 0 or 1 are allowed and yield an empty train or
// validation set respectively.
func NewSplitter(ratio float64, opts ...SplitterOption) (*Splitter, error) {
	if ratio < 0 || ratio > 1 || math.IsNaN(ratio) {
		return nil, fmt.Errorf("train ratio %v: %w", ratio, ErrInvalidRatio)
	}

	sp := &Splitter{
		ratio:  ratio,
		rng:    rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible splits
		logger: logger.Get().Named("splitter"),
	}

	for _, opt := range opts {
		opt(sp)
	}

	return sp, nil
}

// Split shuffles the examples uniformly and cuts at
// floor(len * ratio): the first part is the training set, the rest is
// the validation set. Every input example lands in exactly one set.
// The input slice is not modified.
func (sp *Splitter) Split(ctx context.Context, examples []model.Example) (train, validation []model.Example) {
	shuffled := make([]model.Example, len(examples))
	copy(shuffled, examples)
	sp.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(math.Floor(float64(len(shuffled)) * sp.ratio))
	train = shuffled[:cut]
	validation = shuffled[cut:]

	metrics.UpdateSplitSizes(len(train), len(validation))

	if len(examples) > 0 && len(train) == 0 {
		sp.logger.Warn(ctx, "training set is empty", logger.Float64("ratio", sp.ratio))
	}
	if len(examples) > 0 && len(validation) == 0 {
		sp.logger.Warn(ctx, "validation set is empty", logger.Float64("ratio", sp.ratio))
	}

	return train, validation
}
