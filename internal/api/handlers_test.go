package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/collision.report/internal/collision"
	"github.com/banshee-data/collision.report/internal/testutil"
)

// decodedResponse mirrors collisionResponse with a loose TTC field, since
// the wire value is either a number or the string "Infinity".
type decodedResponse struct {
	Distance         float64           `json:"distance"`
	TTC              interface{}       `json:"ttc"`
	AvoidanceAdvice  collision.Advice  `json:"avoidance_advice"`
	SimulationResult collision.Outcome `json:"simulation_result"`
	CarA             collision.Vehicle `json:"car_a"`
	CarB             collision.Vehicle `json:"car_b"`
}

func newTestServer(seed uint64) *Server {
	return NewServer(collision.DefaultConfig(), collision.NewLockedSource(seed))
}

func postCollision(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, decodedResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculate-collision", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleCalculateCollision(w, req)

	var resp decodedResponse
	if w.Code == http.StatusOK {
		testutil.DecodeJSON(t, w, &resp)
	}
	return w, resp
}

func TestCalculateCollision_Defaults(t *testing.T) {
	s := newTestServer(1)

	w, resp := postCollision(t, s, `{}`)

	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Equal(t, 500.0, resp.Distance)
	assert.Equal(t, "Infinity", resp.TTC)
	assert.Equal(t, collision.StatusSafe, resp.AvoidanceAdvice.Status)
	assert.Equal(t, collision.AlertNone, resp.AvoidanceAdvice.AlertLevel)
	assert.Equal(t, collision.Vehicle{Speed: 0, Position: 0}, resp.CarA)
	assert.Equal(t, collision.Vehicle{Speed: 0, Position: 500}, resp.CarB)
	assert.True(t, resp.SimulationResult.CollisionAvoided)
	assert.Equal(t, collision.OutcomeSafePassage, resp.SimulationResult.Outcome)
}

func TestCalculateCollision_EmptyBodyDefaults(t *testing.T) {
	s := newTestServer(1)

	w, resp := postCollision(t, s, ``)

	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Equal(t, 500.0, resp.Distance)
	assert.Equal(t, "Infinity", resp.TTC)
}

func TestCalculateCollision_SafeAboveThreshold(t *testing.T) {
	s := newTestServer(2)

	// 500m at 30 m/s closing: ttc ≈ 16.67s, above the 10s threshold.
	w, resp := postCollision(t, s, `{"speed_a": 30, "position_a": 0, "speed_b": 0, "position_b": 500}`)

	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Equal(t, 16.67, resp.TTC)
	assert.Equal(t, collision.StatusSafe, resp.AvoidanceAdvice.Status)
	assert.Equal(t, collision.SafeAdvisory, resp.AvoidanceAdvice.Advisory)
}

func TestCalculateCollision_CriticalImminent(t *testing.T) {
	s := newTestServer(3)

	// 100m at 40 m/s closing: ttc = 2.5s.
	w, resp := postCollision(t, s, `{"speed_a": 20, "position_a": 0, "speed_b": 20, "position_b": 100}`)

	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Equal(t, 100.0, resp.Distance)
	assert.Equal(t, 2.5, resp.TTC)

	advice := resp.AvoidanceAdvice
	assert.Equal(t, collision.StatusCollisionImminent, advice.Status)
	assert.Equal(t, collision.AlertCritical, advice.AlertLevel)
	require.NotNil(t, advice.TTC)
	assert.Equal(t, 2.5, *advice.TTC)
	require.Len(t, advice.Maneuvers, 3)
	assert.Equal(t, collision.ManeuverBothSlowDown, advice.Maneuvers[0])
	require.NotNil(t, advice.SafeManeuverApplied)
	assert.True(t, *advice.SafeManeuverApplied)
}

func TestCalculateCollision_CriticalBoundary(t *testing.T) {
	s := newTestServer(4)

	// 200m at 40 m/s closing: ttc = 5.0s exactly, still critical.
	_, resp := postCollision(t, s, `{"speed_a": 30, "position_a": 0, "speed_b": 10, "position_b": 200}`)

	assert.Equal(t, 5.0, resp.TTC)
	assert.Equal(t, collision.AlertCritical, resp.AvoidanceAdvice.AlertLevel)
}

func TestCalculateCollision_FasterBDesignated(t *testing.T) {
	s := newTestServer(5)

	_, resp := postCollision(t, s, `{"speed_a": 10, "position_a": 0, "speed_b": 15, "position_b": 100}`)

	maneuvers := resp.AvoidanceAdvice.Maneuvers
	require.Len(t, maneuvers, 3)
	assert.Equal(t, collision.ManeuverBSteerLeft, maneuvers[1])
	assert.Equal(t, collision.ManeuverAHoldCourse, maneuvers[2])
}

func TestCalculateCollision_NegativeValuesPassThrough(t *testing.T) {
	s := newTestServer(6)

	// Negative speeds are accepted unvalidated; a non-positive closing
	// speed still reports Infinity.
	w, resp := postCollision(t, s, `{"speed_a": 10, "speed_b": -10, "position_b": 100}`)

	testutil.AssertStatusCode(t, w.Code, http.StatusOK)
	assert.Equal(t, "Infinity", resp.TTC)
	assert.Equal(t, collision.StatusSafe, resp.AvoidanceAdvice.Status)
}

func TestCalculateCollision_MalformedJSON(t *testing.T) {
	s := newTestServer(7)

	w, _ := postCollision(t, s, `{"speed_a": `)

	testutil.AssertStatusCode(t, w.Code, http.StatusBadRequest)
}

func TestCalculateCollision_MethodNotAllowed(t *testing.T) {
	s := newTestServer(8)

	req := httptest.NewRequest(http.MethodGet, "/calculate-collision", nil)
	w := httptest.NewRecorder()
	s.handleCalculateCollision(w, req)

	testutil.AssertStatusCode(t, w.Code, http.StatusMethodNotAllowed)
}

func TestGenerateRandomScenario(t *testing.T) {
	s := newTestServer(9)

	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/generate-random-scenario", nil)
		w := httptest.NewRecorder()
		s.handleRandomScenario(w, req)

		testutil.AssertStatusCode(t, w.Code, http.StatusOK)

		var body map[string]float64
		testutil.DecodeJSON(t, w, &body)

		for _, key := range []string{"speed_a", "speed_b"} {
			v := body[key]
			if v < 60 || v > 120 {
				t.Fatalf("%s = %v outside [60, 120]", key, v)
			}
		}
		assert.InDelta(t, body["speed_a"]/3.6, body["speed_a_ms"], 0.1)
		assert.InDelta(t, body["speed_b"]/3.6, body["speed_b_ms"], 0.1)
	}
}

func TestGenerateRandomScenario_MethodNotAllowed(t *testing.T) {
	s := newTestServer(10)

	req := httptest.NewRequest(http.MethodPost, "/generate-random-scenario", nil)
	w := httptest.NewRecorder()
	s.handleRandomScenario(w, req)

	testutil.AssertStatusCode(t, w.Code, http.StatusMethodNotAllowed)
}
