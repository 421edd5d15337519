package csvio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// Inputs bundles every entity slice the model builder needs, loaded from a
// single directory of the seven standard-named CSV files.
type Inputs struct {
	Employees     []entity.Employee
	Shifts        []entity.Shift
	Availability  []entity.Availability
	Windows       []entity.Window
	TimeOff       []entity.TimeOff
	Preferences   []entity.Preference
	OvertimeCosts []entity.OvertimeCost
}

// LoadDir reads employees.csv, shifts.csv, availability.csv, windows.csv,
// time_off.csv, preferences.csv and overtime_costs.csv from dir.
// availability.csv, windows.csv, time_off.csv, preferences.csv and
// overtime_costs.csv are optional; a missing file is treated as empty
// rather than an error, since a scheduling run may not need every input.
func LoadDir(dir string) (Inputs, *validation.Result, error) {
	vr := validation.NewResult()
	var in Inputs

	employees, evr, err := loadRequired(filepath.Join(dir, "employees.csv"), LoadEmployees)
	if err != nil {
		return Inputs{}, nil, err
	}
	vr.Merge(evr)
	in.Employees = employees

	shifts, svr, err := loadRequired(filepath.Join(dir, "shifts.csv"), LoadShifts)
	if err != nil {
		return Inputs{}, nil, err
	}
	vr.Merge(svr)
	in.Shifts = shifts

	if avail, avr, err, present := loadOptional(filepath.Join(dir, "availability.csv"), LoadAvailability); present {
		if err != nil {
			return Inputs{}, nil, err
		}
		vr.Merge(avr)
		in.Availability = avail
	}

	if windows, wvr, err, present := loadOptional(filepath.Join(dir, "windows.csv"), LoadWindows); present {
		if err != nil {
			return Inputs{}, nil, err
		}
		vr.Merge(wvr)
		in.Windows = windows
	}

	if timeOff, tvr, err, present := loadOptional(filepath.Join(dir, "time_off.csv"), LoadTimeOff); present {
		if err != nil {
			return Inputs{}, nil, err
		}
		vr.Merge(tvr)
		in.TimeOff = timeOff
	}

	if prefs, pvr, err, present := loadOptional(filepath.Join(dir, "preferences.csv"), LoadPreferences); present {
		if err != nil {
			return Inputs{}, nil, err
		}
		vr.Merge(pvr)
		in.Preferences = prefs
	}

	if costs, cvr, err, present := loadOptional(filepath.Join(dir, "overtime_costs.csv"), LoadOvertimeCosts); present {
		if err != nil {
			return Inputs{}, nil, err
		}
		vr.Merge(cvr)
		in.OvertimeCosts = costs
	}

	return in, vr, nil
}

func loadRequired[T any](path string, load func(r io.Reader) (T, *validation.Result, error)) (T, *validation.Result, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, nil, err
	}
	defer f.Close()
	return load(f)
}

func loadOptional[T any](path string, load func(r io.Reader) (T, *validation.Result, error)) (T, *validation.Result, error, bool) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, nil, nil, false
		}
		return zero, nil, err, true
	}
	defer f.Close()
	v, vr, err := load(f)
	return v, vr, err, true
}
