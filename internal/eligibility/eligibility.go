// Package eligibility computes the admissible (employee, shift) relation
// per spec §4.2: can_assign = qual_ok AND is_available AND NOT timeoff_block.
package eligibility

import (
	"github.com/schedcu/scheduler/internal/entity"
)

// Pair is one (employee, shift) eligibility determination, including the
// diagnostic flags that produced it.
type Pair struct {
	EmployeeID  entity.EmployeeID
	ShiftID     entity.ShiftID
	QualOK      bool
	IsAvailable bool
	TimeOffBlock bool
	CanAssign   bool
}

// Table is the full eligibility relation plus its diagnostic flags, keyed
// by (employee, shift).
type Table struct {
	byPair map[key]Pair
}

type key struct {
	Employee entity.EmployeeID
	Shift    entity.ShiftID
}

// Build computes the eligibility table for every (employee, shift) pair
// that is either qualification-compatible or has an explicit availability
// row (so that disqualified-but-declared pairs remain visible for
// diagnostics, per spec §4.2's "retained with can_assign = 0").
func Build(
	employees []entity.Employee,
	shifts []entity.NormalizedShift,
	availability []entity.Availability,
	timeOff []entity.TimeOff,
) *Table {
	availByPair := make(map[key]bool, len(availability))
	for _, a := range availability {
		availByPair[key{a.EmployeeID, a.ShiftID}] = a.IsAvailable
	}

	timeOffByEmployee := make(map[entity.EmployeeID][]entity.TimeOff)
	for _, t := range timeOff {
		timeOffByEmployee[t.EmployeeID] = append(timeOffByEmployee[t.EmployeeID], t)
	}

	table := &Table{byPair: make(map[key]Pair)}

	for _, e := range employees {
		for _, s := range shifts {
			k := key{e.ID, s.ID}
			_, declared := availByPair[k]

			qualOK := e.HasRole(s.Role)
			if !qualOK && !declared {
				// Not qualified and never mentioned in availability: omit
				// entirely, there is nothing to diagnose.
				continue
			}

			isAvailable := true
			if v, ok := availByPair[k]; ok {
				isAvailable = v
			}

			blocked := false
			for _, t := range timeOffByEmployee[e.ID] {
				if t.Overlaps(s.StartDT, s.EndDT) {
					blocked = true
					break
				}
			}

			table.byPair[k] = Pair{
				EmployeeID:   e.ID,
				ShiftID:      s.ID,
				QualOK:       qualOK,
				IsAvailable:  isAvailable,
				TimeOffBlock: blocked,
				CanAssign:    qualOK && isAvailable && !blocked,
			}
		}
	}

	return table
}

// CanAssign reports whether (employee, shift) is admissible. Pairs never
// recorded (unqualified and undeclared) are inadmissible.
func (t *Table) CanAssign(employee entity.EmployeeID, shift entity.ShiftID) bool {
	p, ok := t.byPair[key{employee, shift}]
	return ok && p.CanAssign
}

// EligibleEmployees returns the employees admissible for shift, in
// insertion order of the employees slice passed to Build (stable,
// deterministic).
func (t *Table) EligibleEmployees(shift entity.ShiftID, employees []entity.Employee) []entity.EmployeeID {
	var out []entity.EmployeeID
	for _, e := range employees {
		if t.CanAssign(e.ID, shift) {
			out = append(out, e.ID)
		}
	}
	return out
}

// EligibleShifts returns the shifts admissible for employee, in the order
// given by shifts.
func (t *Table) EligibleShifts(employee entity.EmployeeID, shifts []entity.NormalizedShift) []entity.ShiftID {
	var out []entity.ShiftID
	for _, s := range shifts {
		if t.CanAssign(employee, s.ID) {
			out = append(out, s.ID)
		}
	}
	return out
}

// Pairs returns every recorded (employee, shift) diagnostic entry,
// including inadmissible ones, for reporting.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.byPair))
	for _, p := range t.byPair {
		out = append(out, p)
	}
	return out
}
