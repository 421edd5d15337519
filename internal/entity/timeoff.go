package entity

import "time"

// TimeOff is a declared unavailability interval for an employee on a given
// day. Absent StartMin/EndMin default to the whole day (0..1440).
type TimeOff struct {
	EmployeeID EmployeeID
	Day        time.Time
	StartMin   int
	EndMin     int
	Reason     string
}

// Overlaps reports whether the time-off interval intersects
// [startDT, endDT), both given as concrete instants (post shift-normalization).
func (t TimeOff) Overlaps(startDT, endDT time.Time) bool {
	tStart := time.Date(t.Day.Year(), t.Day.Month(), t.Day.Day(), 0, 0, 0, 0, time.UTC).
		Add(minutesDuration(t.StartMin))
	tEnd := time.Date(t.Day.Year(), t.Day.Month(), t.Day.Day(), 0, 0, 0, 0, time.UTC).
		Add(minutesDuration(t.EndMin))
	return tStart.Before(endDT) && startDT.Before(tEnd)
}

func minutesDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

// Availability is a declared (employee, shift) availability override.
// Missing rows default to available (IsAvailable == true).
type Availability struct {
	EmployeeID  EmployeeID
	ShiftID     ShiftID
	IsAvailable bool
}

// Preference is an employee's signed preference score in [-2, 2] for being
// assigned to a given shift; positive scores are rewarded (negative
// objective contribution), negative scores are penalized.
type Preference struct {
	EmployeeID EmployeeID
	ShiftID    ShiftID
	Score      float64
}

// OvertimeCost maps a role to its per-hour overtime cost weight, used to
// scale the overtime objective term per employee role.
type OvertimeCost struct {
	Role               Role
	CostPerHour float64
}
