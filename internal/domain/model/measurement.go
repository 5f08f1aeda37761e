// Package model contains domain models passed between layers.
package model

import "time"

// RawSample is a single uncalibrated reading as delivered by the
// sensor feed: unix timestamp, relative humidity in percent,
// temperature in Fahrenheit, pressure in millibars.
type RawSample struct {
	Timestamp   time.Time
	Humidity    float64
	Temperature float64
	Pressure    float64
}

// Measurement is a calibrated reading. Immutable once created:
// humidity is bias-corrected relative humidity in percent,
// temperature is in Celsius, pressure is in millibars.
type Measurement struct {
	Timestamp   time.Time
	Humidity    float64
	Temperature float64
	Pressure    float64
}

// Example is one supervised-learning example: the anchor measurement
// being predicted, the measurements strictly before it inside the
// history window, and the measurements strictly after it inside the
// prediction window. History and Future are ascending by timestamp.
type Example struct {
	Actual  Measurement
	History []Measurement
	Future  []Measurement
}
