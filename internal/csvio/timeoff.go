package csvio

import (
	"io"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadTimeOff parses the time_off CSV contract: employee_id, day [,
// start_time, end_time, reason]. Absent start/end times default to the
// whole day.
func LoadTimeOff(r io.Reader) ([]entity.TimeOff, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "time_off.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("employee_id", "day") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	var out []entity.TimeOff
	for i, row := range rows {
		day := parseDay(rd, i+2, "day", rd.col(row, "day"), vr)

		start := 0
		if raw := rd.col(row, "start_time"); raw != "" {
			start = parseClock(rd, i+2, "start_time", raw, vr)
		}
		end := 1440
		if raw := rd.col(row, "end_time"); raw != "" {
			end = parseClock(rd, i+2, "end_time", raw, vr)
		}

		out = append(out, entity.TimeOff{
			EmployeeID: entity.EmployeeID(rd.col(row, "employee_id")),
			Day:        day, StartMin: start, EndMin: end, Reason: rd.col(row, "reason"),
		})
	}

	return out, vr, nil
}
