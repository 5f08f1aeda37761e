// Package training loads serialized datasets for the model-training
// step. No training happens yet; the loader exists so the trainer CLI
// can validate what the pipeline produced.
package training

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/stratus/internal/adapters/export"
	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/pkg/logger"
)

// LoadFile reads a dataset JSON file written by the pipeline. A
// missing or malformed file is fatal; an empty dataset is reported as
// ErrEmptyDataset since there is nothing to train on.
func LoadFile(ctx context.Context, path string) ([]model.Example, error) {
	log := logger.Get().Named("training")
	log.Info(ctx, "reading training data", logger.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data %s: %w", path, err)
	}
	defer f.Close()

	examples, err := export.ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("load training data %s: %w", path, err)
	}

	log.Info(ctx, "read training data", logger.Int("examples", len(examples)))

	if len(examples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}
	return examples, nil
}
