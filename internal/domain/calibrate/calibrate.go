// Package calibrate corrects known sensor biases on raw readings.
//
// Both corrections are pure and deterministic but NOT idempotent:
// they must be applied exactly once per raw sample. Running them a
// second time shifts already-calibrated values and corrupts the data.
package calibrate

import "github.com/okian/stratus/internal/domain/model"

// Bias constants, per the sensor vendor's calibration notes.
const (
	// The sensor's internal temperature reads ~8F above ambient due
	// to self-heating.
	selfHeatingOffsetF = 8.0
	// The humidity sensor reads ~4% below ambient conditions.
	humidityOffsetPct = 4.0

	fahrenheitFreezing   = 32.0
	fahrenheitPerCelsius = 1.8
)

// Celsius removes the self-heating bias from a raw Fahrenheit reading
// and converts it to Celsius.
func Celsius(rawFahrenheit float64) float64 {
	return (rawFahrenheit - fahrenheitFreezing - selfHeatingOffsetF) / fahrenheitPerCelsius
}

// Humidity corrects the low bias on a raw relative-humidity reading.
func Humidity(rawPercent float64) float64 {
	return rawPercent + humidityOffsetPct
}

// Measurement calibrates one raw sample into a Measurement. Pressure
// needs no correction and is carried through unchanged.
func Measurement(raw model.RawSample) model.Measurement {
	return model.Measurement{
		Timestamp:   raw.Timestamp,
		Humidity:    Humidity(raw.Humidity),
		Temperature: Celsius(raw.Temperature),
		Pressure:    raw.Pressure,
	}
}
