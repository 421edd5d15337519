package csvio

import (
	"io"
	"strconv"
	"strings"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadShifts parses the shifts CSV contract (spec §6):
// shift_id, day (YYYY-MM-DD), start (HH:MM), end (HH:MM or 24:00), role,
// demand [, skill_requirements, demand_id]. The legacy column name
// required_staff is rejected outright.
func LoadShifts(r io.Reader) ([]entity.Shift, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "shifts.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	rd.rejectLegacy("required_staff")
	if !rd.requireColumns("shift_id", "day", "start", "end", "role", "demand") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	seen := map[entity.ShiftID]bool{}
	var out []entity.Shift
	for i, row := range rows {
		id := entity.ShiftID(rd.col(row, "shift_id"))
		if id == "" {
			vr.AddError(validation.IllegalValue, "shift_id", "shifts.csv: row %d: empty shift_id", i+2)
			continue
		}
		if seen[id] {
			vr.AddError(validation.DuplicateID, "shift_id", "shifts.csv: row %d: duplicate shift_id %q", i+2, id)
			continue
		}
		seen[id] = true

		day := parseDay(rd, i+2, "day", rd.col(row, "day"), vr)
		start := parseClock(rd, i+2, "start", rd.col(row, "start"), vr)
		end := parseClock(rd, i+2, "end", rd.col(row, "end"), vr)
		demand := parseIntField(rd, i+2, "demand", rd.col(row, "demand"), vr)

		skillReqs := parseSkillQtyList(rd, i+2, "skill_requirements", rd.col(row, "skill_requirements"), vr)

		out = append(out, entity.Shift{
			ID: id, Day: day, StartMin: start, EndMin: end, Role: entity.Role(rd.col(row, "role")),
			RequiredStaff: demand, SkillReqs: skillReqs, DemandID: rd.col(row, "demand_id"),
		})
	}

	return out, vr, nil
}

// parseSkillQtyList parses "skill:qty[,skill:qty]" into a Skill->qty map,
// used by both the shifts and windows loaders.
func parseSkillQtyList(rd *reader, rowIdx int, field, raw string, vr *validation.Result) map[entity.Skill]int {
	if raw == "" {
		return nil
	}
	out := map[entity.Skill]int{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not skill:qty", rd.file, rowIdx, part)
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			vr.AddError(validation.IllegalValue, field, "%s: row %d: %q has a non-integer qty", rd.file, rowIdx, part)
			continue
		}
		out[entity.Skill(strings.TrimSpace(kv[0]))] = qty
	}
	return out
}
