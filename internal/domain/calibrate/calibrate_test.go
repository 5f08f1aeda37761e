package calibrate_test

import (
	"testing"
	"time"

	"github.com/okian/stratus/internal/domain/calibrate"
	"github.com/okian/stratus/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCelsius(t *testing.T) {
	Convey("Given a raw Fahrenheit reading of 80", t, func() {
		raw := 80.0

		Convey("Then the self-heating bias is removed before conversion", func() {
			// (80 - 32 - 8) / 1.8
			So(calibrate.Celsius(raw), ShouldAlmostEqual, 40.0/1.8, 1e-9)
		})

		Convey("And repeated calls are deterministic", func() {
			first := calibrate.Celsius(raw)
			for i := 0; i < 10; i++ {
				So(calibrate.Celsius(raw), ShouldEqual, first)
			}
		})
	})

	Convey("Given a raw reading of 40F", t, func() {
		Convey("Then the corrected ambient is exactly freezing", func() {
			So(calibrate.Celsius(40.0), ShouldAlmostEqual, 0.0, 1e-9)
		})
	})
}

func TestHumidity(t *testing.T) {
	Convey("Given a raw humidity reading of 50%", t, func() {
		Convey("Then the low bias is corrected upward by 4 points", func() {
			So(calibrate.Humidity(50.0), ShouldEqual, 54.0)
		})
	})

	Convey("Given calibration is applied twice", t, func() {
		once := calibrate.Humidity(50.0)
		twice := calibrate.Humidity(once)

		Convey("Then the result drifts, which is why it must run exactly once", func() {
			So(twice, ShouldEqual, 58.0)
			So(twice, ShouldNotEqual, once)
		})
	})
}

func TestMeasurement(t *testing.T) {
	Convey("Given a raw sample", t, func() {
		ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		raw := model.RawSample{
			Timestamp:   ts,
			Humidity:    50.0,
			Temperature: 80.0,
			Pressure:    1000.0,
		}

		Convey("When calibrating it", func() {
			m := calibrate.Measurement(raw)

			Convey("Then humidity and temperature are corrected", func() {
				So(m.Humidity, ShouldEqual, 54.0)
				So(m.Temperature, ShouldAlmostEqual, 40.0/1.8, 1e-9)
			})

			Convey("And timestamp and pressure pass through unchanged", func() {
				So(m.Timestamp, ShouldEqual, ts)
				So(m.Pressure, ShouldEqual, 1000.0)
			})
		})
	})
}
