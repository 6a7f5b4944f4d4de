package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/banshee-data/collision.report/internal/collision"
	"github.com/banshee-data/collision.report/internal/httputil"
	"github.com/banshee-data/collision.report/internal/scenario"
	"github.com/banshee-data/collision.report/internal/units"
)

// defaultPositionB places vehicle B 500m down the track when the request
// omits it. The value mirrors the trigger distance but is independent of
// it; the upstream API hardcodes 500 here.
const defaultPositionB = 500

// collisionRequest is the POST /calculate-collision body. Pointer fields
// let omitted values fall back to their defaults; values themselves are
// accepted unvalidated (negative speeds and positions flow through the
// arithmetic unchanged, matching the upstream behavior).
type collisionRequest struct {
	SpeedA    *float64 `json:"speed_a"`
	PositionA *float64 `json:"position_a"`
	SpeedB    *float64 `json:"speed_b"`
	PositionB *float64 `json:"position_b"`
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// ttcValue serializes a TTC as a number rounded to two decimals, or as the
// string "Infinity" when the vehicles never meet. Bare Infinity is not
// valid JSON, so the string form stands in for it.
type ttcValue float64

func (v ttcValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(units.RoundTo(f, 2))
}

// collisionResponse is the full assessment returned to the caller.
type collisionResponse struct {
	Distance         float64           `json:"distance"`
	TTC              ttcValue          `json:"ttc"`
	AvoidanceAdvice  collision.Advice  `json:"avoidance_advice"`
	SimulationResult collision.Outcome `json:"simulation_result"`
	CarA             collision.Vehicle `json:"car_a"`
	CarB             collision.Vehicle `json:"car_b"`
}

// handleCalculateCollision runs the three estimator operations in
// sequence: distance/speeds to TTC, TTC to advice, advice to simulated
// outcome.
func (s *Server) handleCalculateCollision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req collisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	carA := collision.Vehicle{
		Speed:    orDefault(req.SpeedA, 0),
		Position: orDefault(req.PositionA, 0),
	}
	carB := collision.Vehicle{
		Speed:    orDefault(req.SpeedB, 0),
		Position: orDefault(req.PositionB, defaultPositionB),
	}

	distance := collision.Distance(carA, carB)
	ttc := collision.TTC(distance, carA.Speed, carB.Speed)
	advice := s.cfg.PlanAvoidance(carA, carB, ttc)
	outcome := collision.Simulate(carA, carB, advice, s.src)

	httputil.WriteJSONOK(w, collisionResponse{
		Distance:         units.RoundTo(distance, 2),
		TTC:              ttcValue(ttc),
		AvoidanceAdvice:  advice,
		SimulationResult: outcome,
		CarA:             carA,
		CarB:             carB,
	})
}

// handleRandomScenario returns a randomized pair of vehicle speeds for
// exercising the calculator. It does not invoke the estimator.
func (s *Server) handleRandomScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, scenario.Generate(s.src))
}
