package entity

import "time"

// Window is an externally declared demand interval: the number of people
// (headcount) required to be on duty somewhere within [StartMin, EndMin) on
// Day, for Role, plus optional per-skill sub-demand.
//
// Invariants: EndMin > StartMin. Overnight windows are split on load into
// two same-role sibling windows suffixed "__D0"/"__D1" by internal/csvio;
// by the time a Window reaches internal/segment it never spans midnight.
type Window struct {
	ID       WindowID
	Day      time.Time
	StartMin int
	EndMin   int
	Role     Role
	Demand   int
	Skills   map[Skill]int
}

// DurationMinutes returns EndMin - StartMin.
func (w Window) DurationMinutes() int {
	return w.EndMin - w.StartMin
}
