// Package extract reads a solved model back into plain result structs:
// assignments, overtime and shortfall summaries, skill coverage, preference
// satisfaction, and the per-component objective breakdown. It is grounded
// on original_source/src/model_cp.py's ModelBuilder.log_employee_summary /
// extract_objective_breakdown / verify_aggregate_variables — the same
// quantities, read back from solve.Solution instead of a cp_model.CpSolver.
package extract

import (
	"fmt"
	"sort"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/solve"
)

// Assignment is one confirmed (employee, shift) assignment.
type Assignment struct {
	EmployeeID      entity.EmployeeID
	ShiftID         entity.ShiftID
	Day             string
	DurationMinutes int
	IsNight         bool
	Preference      float64
}

// Assignments returns every (employee, shift) pair the solution actually
// assigned (x[e,s] == 1), sorted by day then shift then employee for
// deterministic output.
func Assignments(b *model.Built, sol solve.Solution) []Assignment {
	var out []Assignment
	for _, p := range b.Eligibility.Pairs() {
		if !p.CanAssign {
			continue
		}
		v, ok := b.AssignmentVar(p.EmployeeID, p.ShiftID)
		if !ok || sol.Value(v) < 0.5 {
			continue
		}
		s, ok := b.ShiftByID(p.ShiftID)
		if !ok {
			continue
		}
		out = append(out, Assignment{
			EmployeeID:      p.EmployeeID,
			ShiftID:         p.ShiftID,
			Day:             s.Day.Format("2006-01-02"),
			DurationMinutes: s.DurationMinutes,
			IsNight:         s.IsNight(),
			Preference:      b.Preference(p.EmployeeID, p.ShiftID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].ShiftID != out[j].ShiftID {
			return out[i].ShiftID < out[j].ShiftID
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// EmployeeSummary is the per-employee accrual summary, mirroring
// log_employee_summary's totals (assigned minutes, overtime, nights, and
// per-ISO-week breakdown).
type EmployeeSummary struct {
	EmployeeID      entity.EmployeeID
	AssignedMinutes int
	OvertimeMinutes int
	NightsAssigned  int
	WeekMinutes     map[string]int
}

// EmployeeSummaries computes one EmployeeSummary per employee with any
// nonzero accrual, sorted by employee id.
func EmployeeSummaries(b *model.Built, sol solve.Solution) []EmployeeSummary {
	byEmployee := map[entity.EmployeeID]*EmployeeSummary{}

	order := func(id entity.EmployeeID) *EmployeeSummary {
		s, ok := byEmployee[id]
		if !ok {
			s = &EmployeeSummary{EmployeeID: id, WeekMinutes: map[string]int{}}
			byEmployee[id] = s
		}
		return s
	}

	for _, p := range b.Eligibility.Pairs() {
		if !p.CanAssign {
			continue
		}
		v, ok := b.AssignmentVar(p.EmployeeID, p.ShiftID)
		if !ok || sol.Value(v) < 0.5 {
			continue
		}
		shift, ok := b.ShiftByID(p.ShiftID)
		if !ok {
			continue
		}
		sum := order(p.EmployeeID)
		sum.AssignedMinutes += shift.DurationMinutes
		if shift.IsNight() {
			sum.NightsAssigned++
		}
		year, week := shift.StartDT.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		sum.WeekMinutes[key] += shift.DurationMinutes
	}

	for _, e := range b.Employees {
		if v, ok := b.Overtime[e.ID]; ok {
			order(e.ID).OvertimeMinutes = int(sol.Value(v))
		}
	}

	out := make([]EmployeeSummary, 0, len(byEmployee))
	for _, s := range byEmployee {
		if s.AssignedMinutes == 0 && s.OvertimeMinutes == 0 && s.NightsAssigned == 0 {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}
