// Package shiftnorm computes (start_datetime, end_datetime, duration,
// crosses_midnight) for each shift, per spec §4.1. It is grounded on
// original_source/src/precompute.py's normalize_shift_times: if end <= start
// the shift is treated as crossing midnight and its end instant is rolled to
// the next day, with the single exception of start == end == 00:00, which
// denotes a full-day (1440 minute) shift that does not cross midnight.
package shiftnorm

import (
	"fmt"
	"time"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/timeutil"
)

// Normalize computes the derived fields for a single shift.
func Normalize(s entity.Shift) (entity.NormalizedShift, error) {
	if s.StartMin < 0 || s.StartMin > timeutil.MinutesPerDay {
		return entity.NormalizedShift{}, fmt.Errorf("shiftnorm: shift %s start_min %d out of [0,1440]", s.ID, s.StartMin)
	}
	if s.EndMin < 0 || s.EndMin > timeutil.MinutesPerDay {
		return entity.NormalizedShift{}, fmt.Errorf("shiftnorm: shift %s end_min %d out of [0,1440]", s.ID, s.EndMin)
	}

	startDT := timeutil.CombineDate(s.Day, s.StartMin)
	endDTSameDay := timeutil.CombineDate(s.Day, s.EndMin)

	var endDT time.Time
	var crosses bool

	switch {
	case s.EndMin < s.StartMin:
		endDT = endDTSameDay.AddDate(0, 0, 1)
		crosses = true
	case s.EndMin == s.StartMin:
		if s.StartMin == 0 {
			// Full-day shift: 00:00 -> 00:00(+1), not a midnight crossing.
			endDT = endDTSameDay.AddDate(0, 0, 1)
			crosses = false
		} else {
			return entity.NormalizedShift{}, fmt.Errorf(
				"shiftnorm: shift %s has equal start/end (%s) that is not 00:00; only a full-day shift may repeat 00:00",
				s.ID, timeutil.FormatHHMM(s.StartMin))
		}
	default:
		endDT = endDTSameDay
		crosses = false
	}

	duration := int(endDT.Sub(startDT).Minutes())
	if duration < 1 || duration > timeutil.MinutesPerDay {
		return entity.NormalizedShift{}, fmt.Errorf("shiftnorm: shift %s duration %d out of [1,1440]", s.ID, duration)
	}

	return entity.NormalizedShift{
		Shift:           s,
		StartDT:         startDT,
		EndDT:           endDT,
		DurationMinutes: duration,
		CrossesMidnight: crosses,
	}, nil
}

// NormalizeAll normalizes every shift, collecting the first error
// encountered; callers needing per-row diagnostics should call Normalize
// directly from a loader loop instead.
func NormalizeAll(shifts []entity.Shift) ([]entity.NormalizedShift, error) {
	out := make([]entity.NormalizedShift, 0, len(shifts))
	for _, s := range shifts {
		n, err := Normalize(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
