// Package collision implements the collision estimator: time-to-collision
// from closing speed, an avoidance maneuver recommendation, and a
// probabilistic outcome simulation. All operations are pure functions of
// their inputs; the simulation additionally consumes an injected random
// source.
package collision

import (
	"math"

	"github.com/banshee-data/collision.report/internal/units"
)

// Status labels whether the assessment calls for evasive action.
type Status string

const (
	StatusSafe              Status = "safe"
	StatusCollisionImminent Status = "collision_imminent"
)

// AlertLevel is the urgency tier derived from the TTC thresholds.
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// Maneuver instruction texts. The slow-down instruction always leads the
// maneuver list; the steer/hold pair follows depending on which vehicle is
// designated to act.
const (
	ManeuverBothSlowDown = "Both vehicles reduce speed immediately"
	ManeuverASteerRight  = "Vehicle A: Steer right onto shoulder"
	ManeuverAHoldCourse  = "Vehicle A: Maintain course, prepare to brake"
	ManeuverBSteerLeft   = "Vehicle B: Steer left onto shoulder"
	ManeuverBHoldCourse  = "Vehicle B: Maintain course, prepare to brake"
)

// SafeAdvisory is the advisory text returned when no action is required.
const SafeAdvisory = "Maintain safe distance"

// criticalAlertTTC is the TTC in seconds at or below which the alert level
// escalates from warning to critical.
const criticalAlertTTC = 5

// Config holds the estimator thresholds. It is an immutable value passed
// into each operation rather than package state, so concurrent requests
// share nothing mutable.
type Config struct {
	// CriticalTTC is the threshold in seconds below which a collision is
	// considered imminent.
	CriticalTTC float64

	// TriggerDistance is the nominal engagement range in meters. It is
	// loaded and reported but not read by any computation; see the
	// /api/config handler.
	TriggerDistance float64
}

// DefaultConfig returns the estimator thresholds used when no config file
// is supplied.
func DefaultConfig() Config {
	return Config{
		CriticalTTC:     10,
		TriggerDistance: 500,
	}
}

// Vehicle is the kinematic state of one vehicle on the shared axis.
// Speed is a velocity magnitude in consistent units (m/s by convention);
// Position is a 1-D coordinate in meters.
type Vehicle struct {
	Speed    float64 `json:"speed"`
	Position float64 `json:"position"`
}

// Distance returns the separation between two vehicles on the shared axis.
func Distance(carA, carB Vehicle) float64 {
	return math.Abs(carB.Position - carA.Position)
}

// TTC returns the projected time-to-collision in seconds, assuming both
// vehicles close at constant speed. A non-positive closing speed means the
// vehicles never meet, reported as +Inf.
func TTC(distance, speedA, speedB float64) float64 {
	closing := speedA + speedB
	if closing <= 0 {
		return math.Inf(1)
	}
	return distance / closing
}

// Advice is the recommended response to a computed TTC. TTC and
// SafeManeuverApplied are present only on the collision_imminent branch.
type Advice struct {
	Status              Status     `json:"status"`
	AlertLevel          AlertLevel `json:"alert_level"`
	Advisory            string     `json:"advice,omitempty"`
	TTC                 *float64   `json:"ttc,omitempty"`
	Maneuvers           []string   `json:"maneuvers,omitempty"`
	SafeManeuverApplied *bool      `json:"safe_maneuver_applied,omitempty"`
}

// PlanAvoidance decides the avoidance strategy for the given TTC.
//
// Above the critical threshold the advice is a bare "safe" advisory. Below
// it, both vehicles are told to slow down and the faster vehicle is
// designated to steer onto the shoulder (ties go to vehicle A); the other
// holds course. The reported TTC is rounded to two decimals.
func (c Config) PlanAvoidance(carA, carB Vehicle, ttc float64) Advice {
	if ttc > c.CriticalTTC {
		return Advice{
			Status:     StatusSafe,
			AlertLevel: AlertNone,
			Advisory:   SafeAdvisory,
		}
	}

	alert := AlertWarning
	if ttc <= criticalAlertTTC {
		alert = AlertCritical
	}

	maneuvers := []string{ManeuverBothSlowDown}
	if carA.Speed >= carB.Speed {
		maneuvers = append(maneuvers, ManeuverASteerRight, ManeuverBHoldCourse)
	} else {
		maneuvers = append(maneuvers, ManeuverBSteerLeft, ManeuverAHoldCourse)
	}

	rounded := units.RoundTo(ttc, 2)
	applied := true
	return Advice{
		Status:              StatusCollisionImminent,
		AlertLevel:          alert,
		TTC:                 &rounded,
		Maneuvers:           maneuvers,
		SafeManeuverApplied: &applied,
	}
}
