package csvio

import (
	"io"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadWindows parses the windows CSV contract: window_id, day, window_start,
// window_end, role, window_demand [, skills]. Skills use "skill:qty[,...]".
// An overnight window (window_end <= window_start) is split here into two
// same-role sibling windows suffixed "__D0"/"__D1" (entity.Window's
// invariant: by the time a Window reaches internal/segment it never spans
// midnight).
func LoadWindows(r io.Reader) ([]entity.Window, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "windows.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("window_id", "day", "window_start", "window_end", "role", "window_demand") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	seen := map[entity.WindowID]bool{}
	var out []entity.Window
	for i, row := range rows {
		id := entity.WindowID(rd.col(row, "window_id"))
		if id == "" {
			vr.AddError(validation.IllegalValue, "window_id", "windows.csv: row %d: empty window_id", i+2)
			continue
		}
		if seen[id] {
			vr.AddError(validation.DuplicateID, "window_id", "windows.csv: row %d: duplicate window_id %q", i+2, id)
			continue
		}
		seen[id] = true

		day := parseDay(rd, i+2, "day", rd.col(row, "day"), vr)
		start := parseClock(rd, i+2, "window_start", rd.col(row, "window_start"), vr)
		end := parseClock(rd, i+2, "window_end", rd.col(row, "window_end"), vr)
		demand := parseIntField(rd, i+2, "window_demand", rd.col(row, "window_demand"), vr)
		role := entity.Role(rd.col(row, "role"))
		skills := parseSkillQtyList(rd, i+2, "skills", rd.col(row, "skills"), vr)

		if end > start {
			out = append(out, entity.Window{
				ID: id, Day: day, StartMin: start, EndMin: end, Role: role, Demand: demand, Skills: skills,
			})
			continue
		}

		// Overnight: split at midnight into two sibling windows.
		out = append(out,
			entity.Window{
				ID: id + "__D0", Day: day, StartMin: start, EndMin: 1440, Role: role, Demand: demand, Skills: skills,
			},
		)
		if end > 0 {
			out = append(out, entity.Window{
				ID:     id + "__D1",
				Day:    day.AddDate(0, 0, 1),
				StartMin: 0, EndMin: end, Role: role, Demand: demand, Skills: skills,
			})
		}
	}

	return out, vr, nil
}
