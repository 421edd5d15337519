package model

import (
	"fmt"
	"time"
)

// dayKey formats a calendar day as a stable map key.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// isoWeekKey groups a calendar day into its ISO-8601 (year, week) bucket,
// used by the weekly night cap (spec §4.5 hard constraint 4).
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
