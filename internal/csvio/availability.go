package csvio

import (
	"io"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// LoadAvailability parses the availability CSV contract: employee_id,
// shift_id, is_available ∈ {0,1}.
func LoadAvailability(r io.Reader) ([]entity.Availability, *validation.Result, error) {
	vr := validation.NewResult()
	rd, err := newReader(r, "availability.csv", vr)
	if err != nil {
		return nil, nil, err
	}
	if !rd.requireColumns("employee_id", "shift_id", "is_available") {
		return nil, vr, nil
	}

	rows, err := rd.rows()
	if err != nil {
		return nil, nil, err
	}

	var out []entity.Availability
	for i, row := range rows {
		raw := rd.col(row, "is_available")
		isAvailable := raw == "1" || raw == "true" || raw == "True"
		if raw != "0" && raw != "1" && raw != "true" && raw != "false" && raw != "True" && raw != "False" {
			vr.AddError(validation.IllegalValue, "is_available", "availability.csv: row %d: %q is not 0/1", i+2, raw)
			continue
		}
		out = append(out, entity.Availability{
			EmployeeID:  entity.EmployeeID(rd.col(row, "employee_id")),
			ShiftID:     entity.ShiftID(rd.col(row, "shift_id")),
			IsAvailable: isAvailable,
		})
	}

	return out, vr, nil
}
