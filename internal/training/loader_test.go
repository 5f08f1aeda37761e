package training_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/stratus/internal/adapters/export"
	"github.com/okian/stratus/internal/domain/model"
	"github.com/okian/stratus/internal/training"
	"github.com/okian/stratus/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a dataset written by the pipeline", t, func() {
		base := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
		examples := []model.Example{
			{
				Actual:  model.Measurement{Timestamp: base, Humidity: 54, Temperature: 20, Pressure: 1000},
				History: []model.Measurement{{Timestamp: base.Add(-time.Hour), Humidity: 53, Temperature: 19, Pressure: 999}},
				Future:  []model.Measurement{{Timestamp: base.Add(time.Hour), Humidity: 55, Temperature: 21, Pressure: 1001}},
			},
		}

		dir := t.TempDir()
		path := filepath.Join(dir, "train.json")
		So(export.WriteDatasetFile(path, examples), ShouldBeNil)

		Convey("When loading it", func() {
			got, err := training.LoadFile(ctx, path)

			Convey("Then every example is restored", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Actual.Timestamp, ShouldEqual, base)
				So(got[0].History, ShouldHaveLength, 1)
				So(got[0].Future, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given an empty dataset", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "empty.json")
		So(export.WriteDatasetFile(path, nil), ShouldBeNil)

		Convey("Then loading reports there is nothing to train on", func() {
			_, err := training.LoadFile(ctx, path)
			So(errors.Is(err, training.ErrEmptyDataset), ShouldBeTrue)
		})
	})

	Convey("Given a missing dataset file", t, func() {
		Convey("Then loading fails with a clear diagnostic", func() {
			_, err := training.LoadFile(ctx, "/does/not/exist.json")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "/does/not/exist.json")
		})
	})

	Convey("Given a file that is not a dataset", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "garbage.json")
		So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)

		Convey("Then loading fails instead of silently continuing", func() {
			_, err := training.LoadFile(ctx, path)
			So(err, ShouldNotBeNil)
		})
	})
}
