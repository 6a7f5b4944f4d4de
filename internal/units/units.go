// Package units provides speed unit conversions and decimal rounding
// shared by the API layer and the scenario generator.
package units

import "math"

// kmhPerMPS is the exact factor between km/h and m/s.
const kmhPerMPS = 3.6

// KMHToMPS converts kilometers per hour to meters per second.
func KMHToMPS(kmh float64) float64 {
	return kmh / kmhPerMPS
}

// MPSToKMH converts meters per second to kilometers per hour.
func MPSToKMH(mps float64) float64 {
	return mps * kmhPerMPS
}

// RoundTo rounds v to the given number of decimal places, half away from
// zero. Infinities pass through unchanged.
func RoundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
