package csvio

import (
	"io"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadEmployees parses the employees CSV contract (spec §6):
// employee_id, name, roles, max_week_hours, min_rest_hours,
// max_overtime_hours [, contracted_hours, min_week_hours, skills].
func LoadEmployees(r io.Reader) ([]entity.Employee, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "employees.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("employee_id", "name", "roles", "max_week_hours", "min_rest_hours", "max_overtime_hours") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	seen := map[entity.EmployeeID]bool{}
	var out []entity.Employee
	for i, row := range rows {
		id := entity.EmployeeID(rd.col(row, "employee_id"))
		if id == "" {
			vr.AddError(validation.IllegalValue, "employee_id", "employees.csv: row %d: empty employee_id", i+2)
			continue
		}
		if seen[id] {
			vr.AddError(validation.DuplicateID, "employee_id", "employees.csv: row %d: duplicate employee_id %q", i+2, id)
			continue
		}
		seen[id] = true

		roles := map[entity.Role]struct{}{}
		for _, r := range splitPipe(rd.col(row, "roles")) {
			roles[entity.Role(r)] = struct{}{}
		}
		skills := map[entity.Skill]struct{}{}
		for _, s := range splitComma(rd.col(row, "skills")) {
			skills[entity.Skill(s)] = struct{}{}
		}

		maxWeekly := parseFloat(rd, i+2, "max_week_hours", rd.col(row, "max_week_hours"), vr)
		minWeekly := parseFloat(rd, i+2, "min_week_hours", rd.col(row, "min_week_hours"), vr)
		minRest := parseFloat(rd, i+2, "min_rest_hours", rd.col(row, "min_rest_hours"), vr)
		maxOvertime := parseFloat(rd, i+2, "max_overtime_hours", rd.col(row, "max_overtime_hours"), vr)

		var contracted *float64
		if raw := rd.col(row, "contracted_hours"); raw != "" {
			v := parseFloat(rd, i+2, "contracted_hours", raw, vr)
			contracted = &v
			minWeekly = v
			maxWeekly = v
		}

		if maxWeekly < minWeekly {
			vr.AddError(validation.SemanticInconsistency, "max_week_hours",
				"employees.csv: row %d: max_week_hours (%v) < min_week_hours (%v)", i+2, maxWeekly, minWeekly)
			continue
		}

		out = append(out, entity.Employee{
			ID: id, Name: rd.col(row, "name"), Roles: roles, Skills: skills,
			MinWeeklyHours: minWeekly, MaxWeeklyHours: maxWeekly,
			MinRestHours: minRest, MaxOvertimeHours: maxOvertime,
			ContractedHours: contracted,
		})
	}

	return out, vr, nil
}
