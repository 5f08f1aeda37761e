package feed

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedFeed   = errors.New("malformed feed envelope")
	ErrMalformedSample = errors.New("malformed sample row")
)
