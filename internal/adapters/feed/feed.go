// Package feed decodes the raw JSON envelope produced by the sensor
// scraper into raw samples for the pipeline.
//
// The envelope looks like:
//
//	{
//	  "start_timestamp": 1700000000,
//	  "end_timestamp":   1700600000,
//	  "fields": ["humidity", "temperature", "pressure"],
//	  "data": [[1700000100, 52.0, 81.5, 1009.8], ...]
//	}
//
// Each data row is (unix timestamp, raw humidity %, raw temperature
// degF, pressure mbar). The envelope timestamps and field list are
// informational only and are surfaced for logging.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/pkg/logger"
	"github.com/okian/stratus/pkg/metrics"
)

// sampleArity is the required number of columns per data row.
const sampleArity = 4

// envelope mirrors the scraper's on-disk JSON shape. Rows are kept
// raw so one malformed row cannot fail the whole decode.
type envelope struct {
	StartTimestamp int64             `json:"start_timestamp"`
	EndTimestamp   int64             `json:"end_timestamp"`
	Fields         []string          `json:"fields"`
	Data           []json.RawMessage `json:"data"`
}

// Feed is a decoded raw feed: the samples plus the envelope metadata.
type Feed struct {
	Start   time.Time
	End     time.Time
	Fields  []string
	Samples []model.RawSample

	// Skipped counts malformed rows dropped during decoding.
	Skipped int
}

// ReadFile decodes a feed from a file on disk. A missing or
// unreadable file is fatal to the run.
func ReadFile(ctx context.Context, path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", path, err)
	}
	defer f.Close()

	return Decode(ctx, f)
}

// Decode decodes a feed from a reader. Malformed envelope structure
// is fatal; a malformed individual row is skipped with a warning and
// counted in Feed.Skipped.
func Decode(ctx context.Context, r io.Reader) (*Feed, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode feed: %w: %v", ErrMalformedFeed, err)
	}

	log := logger.Get().Named("feed")

	out := &Feed{
		Start:  time.Unix(env.StartTimestamp, 0),
		End:    time.Unix(env.EndTimestamp, 0),
		Fields: env.Fields,
	}
	out.Samples = make([]model.RawSample, 0, len(env.Data))

	for i, raw := range env.Data {
		sample, err := decodeRow(raw)
		if err != nil {
			out.Skipped++
			metrics.RecordSampleSkipped()
			log.Warn(ctx, "skipping malformed sample row",
				logger.Int("row", i),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordSampleRead()
		out.Samples = append(out.Samples, sample)
	}

	log.Info(ctx, "decoded raw feed",
		logger.Time("start", out.Start),
		logger.Time("end", out.End),
		logger.Any("fields", out.Fields),
		logger.Int("samples", len(out.Samples)),
		logger.Int("skipped", out.Skipped),
	)

	return out, nil
}

// decodeRow parses one data row into a raw sample.
func decodeRow(raw json.RawMessage) (model.RawSample, error) {
	var row []float64
	if err := json.Unmarshal(raw, &row); err != nil {
		return model.RawSample{}, fmt.Errorf("%w: %v", ErrMalformedSample, err)
	}
	if len(row) != sampleArity {
		return model.RawSample{}, fmt.Errorf("%w: got %d columns, want %d", ErrMalformedSample, len(row), sampleArity)
	}

	return model.RawSample{
		Timestamp:   time.Unix(int64(row[0]), 0),
		Humidity:    row[1],
		Temperature: row[2],
		Pressure:    row[3],
	}, nil
}
