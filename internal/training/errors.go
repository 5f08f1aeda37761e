package training

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyDataset = errors.New("no training examples in dataset")
)
