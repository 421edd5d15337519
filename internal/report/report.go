// Package report writes a solved run's diagnostic CSV outputs:
// assignments, segment coverage, objective breakdown, constraint status,
// and the optional overtime/shortfall/skill-coverage/preferences files
// (spec §6's persisted outputs, §9's external-interface bindings). Uses
// the standard library's encoding/csv, the same choice internal/csvio
// makes: no CSV-specific third-party library appears anywhere in the
// retrieved example pack, so there is nothing in the corpus's idiom to
// defer to here.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/schedcu/scheduler/internal/extract"
)

func writeRow(w *csv.Writer, fields ...string) error {
	return w.Write(fields)
}

// WriteAssignments writes one row per confirmed (employee, shift)
// assignment.
func WriteAssignments(w io.Writer, assignments []extract.Assignment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "employee_id", "shift_id", "day", "duration_minutes", "is_night", "preference"); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := writeRow(cw,
			string(a.EmployeeID), string(a.ShiftID), a.Day,
			strconv.Itoa(a.DurationMinutes), strconv.FormatBool(a.IsNight),
			strconv.FormatFloat(a.Preference, 'f', -1, 64),
		); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteSegmentCoverage writes one row per segment carrying a nonzero
// shortfall or overstaff value.
func WriteSegmentCoverage(w io.Writer, rows []extract.SegmentShortfall) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "segment_id", "shortfall", "overstaff"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(cw, r.SegmentID, strconv.Itoa(r.Shortfall), strconv.Itoa(r.Overstaff)); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteObjectiveBreakdown writes one row per recognized objective term,
// carrying forward model_cp.py's export_objective_breakdown_csv.
func WriteObjectiveBreakdown(w io.Writer, rows []extract.ObjectiveComponent) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "term", "minutes", "weight_per_minute", "cost"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(cw,
			r.Key,
			strconv.FormatFloat(r.Minutes, 'f', -1, 64),
			strconv.FormatFloat(r.WeightPerMin, 'f', -1, 64),
			strconv.FormatFloat(r.Cost, 'f', -1, 64),
		); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteConstraintStatus writes one row per aggregate-variable consistency
// check (internal/extract.VerifyAggregates), status "ok" when there were
// no mismatches, "mismatch" with the detail message otherwise.
func WriteConstraintStatus(w io.Writer, mismatches []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "check", "status", "detail"); err != nil {
		return err
	}
	if len(mismatches) == 0 {
		if err := writeRow(cw, "aggregate_definition", "ok", ""); err != nil {
			return err
		}
		return cw.Error()
	}
	for _, m := range mismatches {
		if err := writeRow(cw, "aggregate_definition", "mismatch", m); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteOvertime writes one row per employee with nonzero accrued
// overtime/night/assigned-minute totals (optional output, spec §9).
func WriteOvertime(w io.Writer, summaries []extract.EmployeeSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "employee_id", "assigned_minutes", "overtime_minutes", "nights_assigned"); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := writeRow(cw,
			string(s.EmployeeID), strconv.Itoa(s.AssignedMinutes),
			strconv.Itoa(s.OvertimeMinutes), strconv.Itoa(s.NightsAssigned),
		); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteShortfall writes one row per shift carrying a nonzero direct-demand
// shortfall or overstaff value (optional output, spec §9).
func WriteShortfall(w io.Writer, rows []extract.ShiftShortfall) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "shift_id", "shortfall", "overstaff"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(cw, string(r.ShiftID), strconv.Itoa(r.Shortfall), strconv.Itoa(r.Overstaff)); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteSkillCoverage writes one row per (key, skill) pair carrying a
// nonzero skill shortfall (optional output, spec §9).
func WriteSkillCoverage(w io.Writer, rows []extract.SkillShortfall) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "key", "skill", "shortfall"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(cw, r.Key, string(r.Skill), strconv.Itoa(r.Shortfall)); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WritePreferences writes a single summary row of preference satisfaction
// (optional output, spec §9).
func WritePreferences(w io.Writer, summary extract.PreferenceSatisfaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRow(cw, "honored", "violated", "neutral", "net_score"); err != nil {
		return err
	}
	if err := writeRow(cw,
		strconv.Itoa(summary.Honored), strconv.Itoa(summary.Violated), strconv.Itoa(summary.Neutral),
		strconv.FormatFloat(summary.NetScore, 'f', -1, 64),
	); err != nil {
		return err
	}
	return cw.Error()
}

// HeatmapSource is the documented (unimplemented) accessor a separate
// rendering tool would consume to draw a (day, role, hour) coverage
// heatmap. No image library is wired: nothing in the retrieved pack
// supplies one, and PNG rendering is out of scope for this engine.
type HeatmapSource interface {
	// CoverageAt returns the assigned headcount for role on day at the
	// given hour-of-day (0-23).
	CoverageAt(day string, role string, hour int) (float64, error)
}
