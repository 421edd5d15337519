// Package timeutil provides minute-of-day arithmetic on the 0..1440 domain
// used throughout shift, window and segment construction. "24:00" is a valid
// end-of-day marker and maps to 1440, one minute past the last valid instant
// of a day (23:59).
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the upper (inclusive) bound of the minute-of-day domain.
const MinutesPerDay = 1440

// ParseHHMM parses an "HH:MM" or "HH:MM:SS" string into minutes since
// midnight. "24:00" and "24:00:00" are accepted and map to MinutesPerDay.
func ParseHHMM(value string) (int, error) {
	text := strings.TrimSpace(value)
	if text == "24:00" || text == "24:00:00" {
		return MinutesPerDay, nil
	}

	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("timeutil: invalid time %q (expected HH:MM)", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid hour in %q: %w", value, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid minute in %q: %w", value, err)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("timeutil: minute out of range in %q", value)
	}

	total := hour*60 + minute
	return Normalize(total)
}

// Normalize validates that minutes falls within [0, MinutesPerDay].
func Normalize(minutes int) (int, error) {
	if minutes < 0 {
		return 0, fmt.Errorf("timeutil: minutes cannot be negative (got %d)", minutes)
	}
	if minutes > MinutesPerDay {
		return 0, fmt.Errorf("timeutil: minutes cannot exceed %d (got %d)", MinutesPerDay, minutes)
	}
	return minutes, nil
}

// CombineDate combines a calendar day with a minute-of-day offset into a
// concrete time.Time at UTC midnight plus the offset.
func CombineDate(day time.Time, minutes int) time.Time {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}

// FormatHHMM renders minutes-of-day back to an "HH:MM" string. 1440 renders
// as "24:00".
func FormatHHMM(minutes int) string {
	if minutes == MinutesPerDay {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsNightHour reports whether the given minute-of-day start falls in the
// night band: hour >= 22 or hour < 6.
func IsNightHour(startMinutes int) bool {
	hour := (startMinutes / 60) % 24
	return hour >= 22 || hour < 6
}
