// Command ttc runs one collision assessment from the command line and
// prints it as JSON. Useful for exercising the estimator without the web
// server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/banshee-data/collision.report/internal/collision"
	"github.com/banshee-data/collision.report/internal/units"
)

var (
	speedA    = flag.Float64("speed-a", 0, "Vehicle A speed (m/s)")
	positionA = flag.Float64("position-a", 0, "Vehicle A position (m)")
	speedB    = flag.Float64("speed-b", 0, "Vehicle B speed (m/s)")
	positionB = flag.Float64("position-b", 500, "Vehicle B position (m)")
	seed      = flag.Uint64("seed", 0, "Seed for the simulation random source (0 = entropy)")
)

func main() {
	flag.Parse()

	carA := collision.Vehicle{Speed: *speedA, Position: *positionA}
	carB := collision.Vehicle{Speed: *speedB, Position: *positionB}

	cfg := collision.DefaultConfig()
	src := collision.NewLockedSource(*seed)

	distance := collision.Distance(carA, carB)
	ttc := collision.TTC(distance, carA.Speed, carB.Speed)
	advice := cfg.PlanAvoidance(carA, carB, ttc)
	outcome := collision.Simulate(carA, carB, advice, src)

	// encoding/json rejects bare infinities, so the never-collide case is
	// reported as the string "Infinity", as the web API does.
	var ttcOut interface{} = units.RoundTo(ttc, 2)
	if math.IsInf(ttc, 1) {
		ttcOut = "Infinity"
	}

	assessment := struct {
		Distance         float64           `json:"distance"`
		TTC              interface{}       `json:"ttc"`
		AvoidanceAdvice  collision.Advice  `json:"avoidance_advice"`
		SimulationResult collision.Outcome `json:"simulation_result"`
	}{units.RoundTo(distance, 2), ttcOut, advice, outcome}

	out, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal assessment: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
