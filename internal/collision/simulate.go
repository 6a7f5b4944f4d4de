package collision

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Outcome texts.
const (
	OutcomeSafePassage = "Safe passage"
	OutcomeCloseCall   = "Close call - collision avoided"
	OutcomeCollision   = "COLLISION OCCURRED"
)

// Clearance bands in meters for the simulated minimum separation.
const (
	safeClearanceMin = 50
	safeClearanceMax = 100

	closeCallClearanceMin = 5
	closeCallClearanceMax = 20
)

// Outcome is the result of one simulated avoidance attempt.
type Outcome struct {
	CollisionAvoided bool    `json:"collision_avoided"`
	MinDistance      float64 `json:"min_distance"`
	Outcome          string  `json:"outcome"`
}

// SuccessProbability returns the chance that an imminent-collision maneuver
// succeeds for the given TTC. More reaction time raises the probability
// linearly, capped at 0.95 so some residual risk always remains.
func SuccessProbability(ttc float64) float64 {
	return math.Min(0.95, 0.7+ttc/20)
}

// Simulate draws one probabilistic outcome for the given advice. Safe
// advice always passes with a wide clearance; imminent advice succeeds
// with SuccessProbability of the advised TTC, leaving either a close-call
// clearance or a collision at zero separation.
//
// All draws come from src, so a seeded source makes the simulation
// reproducible. The vehicle states are accepted for signature parity with
// the other operations but do not influence the current model.
func Simulate(carA, carB Vehicle, advice Advice, src rand.Source) Outcome {
	if advice.Status == StatusSafe {
		return Outcome{
			CollisionAvoided: true,
			MinDistance:      uniform(safeClearanceMin, safeClearanceMax, src),
			Outcome:          OutcomeSafePassage,
		}
	}

	var ttc float64
	if advice.TTC != nil {
		ttc = *advice.TTC
	}

	if uniform(0, 1, src) < SuccessProbability(ttc) {
		return Outcome{
			CollisionAvoided: true,
			MinDistance:      uniform(closeCallClearanceMin, closeCallClearanceMax, src),
			Outcome:          OutcomeCloseCall,
		}
	}
	return Outcome{
		CollisionAvoided: false,
		MinDistance:      0,
		Outcome:          OutcomeCollision,
	}
}

// uniform draws from U[min, max) using the provided source.
func uniform(min, max float64, src rand.Source) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: src}.Rand()
}
