package timesheet

import (
	"time-clock/internal/models"
)

// GateDecision is the answer for one candidate punch. A denial is a normal
// result, not an error.
type GateDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// EvaluateGate decides whether candidate may be recorded given the punches
// already on file for the employee's current local day. Only set membership
// of types matters, so one full cycle per day is allowed.
func EvaluateGate(today []models.Punch, candidate models.PunchType) GateDecision {
	seen := typesSeen(today)

	if seen[candidate] {
		return GateDecision{Reason: candidate.Label() + " already recorded today"}
	}
	if candidate != models.PunchClockIn && !seen[models.PunchClockIn] {
		return GateDecision{Reason: "You must clock in first"}
	}
	if candidate == models.PunchLunchIn && !seen[models.PunchLunchOut] {
		return GateDecision{Reason: "You must go to lunch first"}
	}
	return GateDecision{Allowed: true}
}

// Action is one punch button as shown to a user.
type Action struct {
	Type    models.PunchType `json:"type"`
	Label   string           `json:"label"`
	Enabled bool             `json:"enabled"`
	Reason  string           `json:"reason,omitempty"`
}

// AvailableActions projects the gate onto the four buttons, each one
// evaluated through EvaluateGate.
func AvailableActions(today []models.Punch) []Action {
	actions := make([]Action, 0, len(models.PunchTypes))
	for _, t := range models.PunchTypes {
		d := EvaluateGate(today, t)
		actions = append(actions, Action{
			Type:    t,
			Label:   t.Label(),
			Enabled: d.Allowed,
			Reason:  d.Reason,
		})
	}
	return actions
}

func typesSeen(punches []models.Punch) map[models.PunchType]bool {
	seen := make(map[models.PunchType]bool, 4)
	for _, p := range punches {
		seen[p.PunchType] = true
	}
	return seen
}
