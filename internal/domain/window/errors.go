package window

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidWindowLength = errors.New("invalid window length")
	ErrInvalidResolution   = errors.New("invalid sampling resolution")
	ErrIncompleteWindow    = errors.New("incomplete window")
)
