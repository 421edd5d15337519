package csvio

import (
	"io"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadPreferences parses the preferences CSV contract: employee_id,
// shift_id, score ∈ [−2, 2].
func LoadPreferences(r io.Reader) ([]entity.Preference, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "preferences.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("employee_id", "shift_id", "score") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	var out []entity.Preference
	for i, row := range rows {
		score := parseFloat(rd, i+2, "score", rd.col(row, "score"), vr)
		if score < -2 || score > 2 {
			vr.AddError(validation.IllegalValue, "score", "preferences.csv: row %d: score %v out of [-2,2]", i+2, score)
			continue
		}
		out = append(out, entity.Preference{
			EmployeeID: entity.EmployeeID(rd.col(row, "employee_id")),
			ShiftID:    entity.ShiftID(rd.col(row, "shift_id")),
			Score:      score,
		})
	}

	return out, vr, nil
}

// LoadOvertimeCosts parses the overtime_costs CSV contract: role,
// overtime_cost_per_hour >= 0.
func LoadOvertimeCosts(r io.Reader) ([]entity.OvertimeCost, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "overtime_costs.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("role", "overtime_cost_per_hour") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	var out []entity.OvertimeCost
	for i, row := range rows {
		cost := parseFloat(rd, i+2, "overtime_cost_per_hour", rd.col(row, "overtime_cost_per_hour"), vr)
		if cost < 0 {
			vr.AddError(validation.IllegalValue, "overtime_cost_per_hour", "overtime_costs.csv: row %d: negative cost", i+2)
			continue
		}
		out = append(out, entity.OvertimeCost{Role: entity.Role(rd.col(row, "role")), CostPerHour: cost})
	}

	return out, vr, nil
}
