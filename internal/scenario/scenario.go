// Package scenario generates randomized two-vehicle test scenarios for the
// collision estimator. Speeds are drawn in km/h and reported alongside
// their m/s equivalents; generation never invokes the estimator itself.
package scenario

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/collision.report/internal/units"
)

// Highway-speed band for generated scenarios, km/h.
const (
	SpeedMinKMH = 60
	SpeedMaxKMH = 120
)

// Scenario is a pair of randomized vehicle speeds. The km/h values are
// rounded to one decimal; the m/s values are converted from the unrounded
// draws and then rounded, so the two fields can differ by up to one
// rounding step.
type Scenario struct {
	SpeedAKMH float64 `json:"speed_a"`
	SpeedBKMH float64 `json:"speed_b"`
	SpeedAMPS float64 `json:"speed_a_ms"`
	SpeedBMPS float64 `json:"speed_b_ms"`
}

// Generate draws a scenario from src.
func Generate(src rand.Source) Scenario {
	band := distuv.Uniform{Min: SpeedMinKMH, Max: SpeedMaxKMH, Src: src}
	speedA := band.Rand()
	speedB := band.Rand()

	return Scenario{
		SpeedAKMH: units.RoundTo(speedA, 1),
		SpeedBKMH: units.RoundTo(speedB, 1),
		SpeedAMPS: units.RoundTo(units.KMHToMPS(speedA), 1),
		SpeedBMPS: units.RoundTo(units.KMHToMPS(speedB), 1),
	}
}
