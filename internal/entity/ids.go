// Package entity contains the domain models for the scheduling engine:
// employees, shifts, windows, time-off, availability, preferences and
// overtime costs. Entities are loaded once by internal/csvio and treated as
// immutable for the remainder of a build/solve/extract cycle.
package entity

import "github.com/google/uuid"

// EmployeeID identifies an employee, taken verbatim from the employees CSV.
type EmployeeID string

// ShiftID identifies a shift, taken verbatim from the shifts CSV.
type ShiftID string

// WindowID identifies a demand window, taken verbatim from the windows CSV.
type WindowID string

// Role identifies a qualification/staffing role (e.g. "Nurse", "Technologist").
type Role string

// Skill identifies a named competency an employee may hold and a shift or
// window may require.
type Skill string

// RunID identifies one build/solve/extract invocation, used by the run
// store and job queue to correlate persisted results with their inputs.
type RunID uuid.UUID

// NewRunID generates a fresh RunID.
func NewRunID() RunID {
	return RunID(uuid.New())
}

func (r RunID) String() string {
	return uuid.UUID(r).String()
}

// ParseRunID parses a canonical UUID string into a RunID.
func ParseRunID(s string) (RunID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, err
	}
	return RunID(u), nil
}
