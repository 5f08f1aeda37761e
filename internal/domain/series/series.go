// Package series holds an ordered collection of calibrated
// measurements and answers closed-interval range queries over it.
package series

import (
	"sort"
	"time"

	"github.com/okian/stratus/internal/domain/calibrate"
	"github.com/okian/stratus/internal/domain/model"
)

// Series is an immutable sequence of measurements, non-decreasing by
// timestamp. Duplicate timestamps are allowed and keep their input
// order across runs.
type Series struct {
	entries []model.Measurement
}

// FromRaw calibrates every raw sample and sorts the result ascending
// by timestamp. The sort is stable so duplicate timestamps never
// reorder between runs.
func FromRaw(samples []model.RawSample) *Series {
	entries := make([]model.Measurement, 0, len(samples))
	for _, raw := range samples {
		entries = append(entries, calibrate.Measurement(raw))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return &Series{entries: entries}
}

// FromMeasurements builds a series from already-calibrated
// measurements. Callers own the calibration contract; the slice is
// copied and stable-sorted the same way as FromRaw.
func FromMeasurements(measurements []model.Measurement) *Series {
	entries := make([]model.Measurement, len(measurements))
	copy(entries, measurements)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return &Series{entries: entries}
}

// Len returns the number of measurements in the series.
func (s *Series) Len() int {
	return len(s.entries)
}

// Entries returns the ordered measurements. The returned slice is
// shared; callers must not mutate it.
func (s *Series) Entries() []model.Measurement {
	return s.entries
}

// EntriesBetween returns all measurements with
// start <= timestamp <= end, ascending. Both bounds are inclusive.
// An inverted interval (start after end) yields an empty result.
func (s *Series) EntriesBetween(start, end time.Time) []model.Measurement {
	if start.After(end) {
		return nil
	}

	// Binary search for the first entry at or after start.
	lo := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Timestamp.Before(start)
	})
	// First entry strictly after end.
	hi := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Timestamp.After(end)
	})

	if lo >= hi {
		return nil
	}
	return s.entries[lo:hi]
}
