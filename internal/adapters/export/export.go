// Package export serializes calibrated measurements and training
// examples for archival and downstream training.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/okian/stratus/internal/domain/model"
)

// timeLayout renders timestamps in a sortable ISO-8601 form, matching
// the CSV and dataset formats.
const timeLayout = time.RFC3339

// csvHeader is the fixed column order of the measurement CSV.
var csvHeader = []string{"timestamp", "humidity", "temperature", "pressure"} //nolint:gochecknoglobals // fixed schema

// WriteCSV writes measurements as CSV with a header row, one row per
// measurement, in the order given (ascending for a series).
func WriteCSV(w io.Writer, measurements []model.Measurement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range measurements {
		row := []string{
			m.Timestamp.Format(timeLayout),
			formatFloat(m.Humidity),
			formatFloat(m.Temperature),
			formatFloat(m.Pressure),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the measurement CSV to a file, replacing any
// existing content.
func WriteCSVFile(path string, measurements []model.Measurement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, measurements); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// measurementRecord is the JSON shape of one measurement.
type measurementRecord struct {
	Timestamp   string  `json:"timestamp"`
	Humidity    float64 `json:"humidity"`
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
}

// exampleRecord is the JSON shape of one training example.
type exampleRecord struct {
	Actual  measurementRecord   `json:"actual"`
	History []measurementRecord `json:"history"`
	Future  []measurementRecord `json:"future"`
}

func toRecord(m model.Measurement) measurementRecord {
	return measurementRecord{
		Timestamp:   m.Timestamp.Format(timeLayout),
		Humidity:    m.Humidity,
		Temperature: m.Temperature,
		Pressure:    m.Pressure,
	}
}

func toRecords(ms []model.Measurement) []measurementRecord {
	out := make([]measurementRecord, len(ms))
	for i, m := range ms {
		out[i] = toRecord(m)
	}
	return out
}

func fromRecord(r measurementRecord) (model.Measurement, error) {
	ts, err := time.Parse(timeLayout, r.Timestamp)
	if err != nil {
		return model.Measurement{}, fmt.Errorf("parse timestamp %q: %w", r.Timestamp, err)
	}
	return model.Measurement{
		Timestamp:   ts,
		Humidity:    r.Humidity,
		Temperature: r.Temperature,
		Pressure:    r.Pressure,
	}, nil
}

// WriteDataset writes training examples as a JSON array of
// {actual, history, future} records.
func WriteDataset(w io.Writer, examples []model.Example) error {
	records := make([]exampleRecord, len(examples))
	for i, ex := range examples {
		records[i] = exampleRecord{
			Actual:  toRecord(ex.Actual),
			History: toRecords(ex.History),
			Future:  toRecords(ex.Future),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// WriteDatasetFile writes a dataset JSON file, replacing any existing
// content.
func WriteDatasetFile(path string, examples []model.Example) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteDataset(f, examples); err != nil {
		return err
	}
	return f.Close()
}

// ReadDataset decodes a dataset previously written by WriteDataset.
func ReadDataset(r io.Reader) ([]model.Example, error) {
	var records []exampleRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	examples := make([]model.Example, len(records))
	for i, rec := range records {
		actual, err := fromRecord(rec.Actual)
		if err != nil {
			return nil, err
		}
		history := make([]model.Measurement, len(rec.History))
		for j, hr := range rec.History {
			if history[j], err = fromRecord(hr); err != nil {
				return nil, err
			}
		}
		future := make([]model.Measurement, len(rec.Future))
		for j, fr := range rec.Future {
			if future[j], err = fromRecord(fr); err != nil {
				return nil, err
			}
		}
		examples[i] = model.Example{Actual: actual, History: history, Future: future}
	}
	return examples, nil
}
