package purpleair

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrAPIStatus        = errors.New("unexpected api status")
	ErrRetriesExhausted = errors.New("retries exhausted")
)
