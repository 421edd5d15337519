// Package model builds the weekly assignment MIP: decision variables, the
// ten hard-constraint families, and the weighted/lexicographic objective,
// per spec §4.5. It is grounded on original_source/src/model_cp.py's
// ModelBuilder class (the same variable families: shift_aggregate_vars,
// segment_shortfall_vars/segment_overstaff_vars, segment_skill_shortfall_vars,
// overtime/use_ext) and on precompute.py's gap-table approach for the
// rest-conflict constraint, expressed against the solve.Model capability
// interface instead of a concrete solver so that the HiGHS and reference
// backends are interchangeable.
package model

import (
	"sort"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/demand"
	"github.com/schedcu/scheduler/internal/eligibility"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/segment"
	"github.com/schedcu/scheduler/internal/solve"
	"github.com/schedcu/scheduler/internal/validation"
)

// pairKey identifies an (employee, shift) decision variable.
type pairKey struct {
	Employee entity.EmployeeID
	Shift    entity.ShiftID
}

// shiftSkillKey identifies a (shift, skill) shortfall variable, used in
// by_shift skill mode.
type shiftSkillKey struct {
	Shift entity.ShiftID
	Skill entity.Skill
}

// Built is the fully assembled model: every variable handle the extractor
// needs, plus the per-term objective expressions used by both the weighted
// and lexicographic solve regimes.
type Built struct {
	Solver solve.Model

	X                 map[pairKey]solve.Var
	Y                 map[entity.ShiftID]solve.Var
	ShortSeg          map[segment.ID]solve.Var
	OverSeg           map[segment.ID]solve.Var
	ShortSkillSegment map[demand.SkillKey]solve.Var
	ShortSkillShift   map[shiftSkillKey]solve.Var
	ShiftShortfall    map[entity.ShiftID]solve.Var
	ShiftOverstaff    map[entity.ShiftID]solve.Var
	Overtime          map[entity.EmployeeID]solve.Var
	UseExt            map[entity.EmployeeID]solve.Var
	FairnessOver      map[entity.EmployeeID]solve.Var
	FairnessUnder     map[entity.EmployeeID]solve.Var

	Graph         *segment.Graph
	Eligibility   *eligibility.Table
	SegmentDemand demand.SegmentDemand
	SkillDemand   demand.SegmentSkillDemand
	SkillMode     config.SkillMode

	// ObjectiveTerms holds, for every recognized penalty key, the raw
	// (unweighted, person-minutes) linear expression contributing to it.
	ObjectiveTerms map[string][]solve.Term

	Employees []entity.Employee
	Shifts    []entity.NormalizedShift

	employeesByID      map[entity.EmployeeID]entity.Employee
	shiftsByID         map[entity.ShiftID]entity.NormalizedShift
	timeOffByEmployee  map[entity.EmployeeID][]entity.TimeOff
	preferenceByPair   map[pairKey]float64
	overtimeCostByRole map[entity.Role]float64
	cfg                config.Config
}

// Build constructs the complete model against solver, returning the handle
// bundle and a non-fatal diagnostics result. A non-nil error is always a
// *BuildError (spec §7's fatal build-time kinds).
func Build(
	employees []entity.Employee,
	shifts []entity.NormalizedShift,
	windows []entity.Window,
	availability []entity.Availability,
	timeOff []entity.TimeOff,
	preferences []entity.Preference,
	overtimeCosts []entity.OvertimeCost,
	cfg config.Config,
	solver solve.Model,
) (*Built, *validation.Result, error) {
	vr := validation.NewResult()

	graph, segVR, err := segment.Build(shifts, windows, cfg.Windows.MidnightPolicy,
		cfg.Windows.WarnSlotsThreshold, cfg.Windows.HardSlotsThreshold)
	if err != nil {
		return nil, nil, newBuildError(validation.SegmentAlignmentFailure, "%s", err.Error())
	}
	vr.Merge(segVR)

	table := eligibility.Build(employees, shifts, availability, timeOff)

	skillMode, skillVR := demand.ResolveSkillMode(shifts, windows, cfg.Skills.SkillMode)
	vr.Merge(skillVR)

	segDemand := demand.Project(graph, windows, cfg.Shifts.DemandMode)
	var skillDemand demand.SegmentSkillDemand
	if skillMode == config.SkillModeBySegment {
		skillDemand = demand.ProjectSkill(graph, windows, cfg.Shifts.DemandMode)
	}

	b := &Built{
		Solver:            solver,
		X:                 map[pairKey]solve.Var{},
		Y:                 map[entity.ShiftID]solve.Var{},
		ShortSeg:          map[segment.ID]solve.Var{},
		OverSeg:           map[segment.ID]solve.Var{},
		ShortSkillSegment: map[demand.SkillKey]solve.Var{},
		ShortSkillShift:   map[shiftSkillKey]solve.Var{},
		ShiftShortfall:    map[entity.ShiftID]solve.Var{},
		ShiftOverstaff:    map[entity.ShiftID]solve.Var{},
		Overtime:          map[entity.EmployeeID]solve.Var{},
		UseExt:            map[entity.EmployeeID]solve.Var{},
		FairnessOver:      map[entity.EmployeeID]solve.Var{},
		FairnessUnder:     map[entity.EmployeeID]solve.Var{},
		Graph:             graph,
		Eligibility:       table,
		SegmentDemand:     segDemand,
		SkillDemand:       skillDemand,
		SkillMode:         skillMode,
		ObjectiveTerms:    map[string][]solve.Term{},
		Employees:         employees,
		Shifts:            shifts,
		cfg:               cfg,
	}

	b.index(employees, shifts, timeOff, preferences, overtimeCosts)

	b.createAssignmentVariables()
	b.addAggregateDefinitionConstraints()
	b.addSegmentCoverageConstraints()
	b.addShiftDirectDemandConstraints()
	b.addSkillCoverageConstraints(windows, vr)
	b.addOneShiftPerDayConstraints()
	b.addConsecutiveNightConstraints()
	b.addWeeklyNightCapConstraints()
	b.addMinimumRestConstraints()
	b.addDailyMaxHoursConstraints()
	b.addWorkerTypeConstraints()
	b.addGlobalOvertimeCapConstraint()

	b.buildObjectiveTerms()

	return b, vr, nil
}

func (b *Built) index(
	employees []entity.Employee,
	shifts []entity.NormalizedShift,
	timeOff []entity.TimeOff,
	preferences []entity.Preference,
	overtimeCosts []entity.OvertimeCost,
) {
	b.employeesByID = make(map[entity.EmployeeID]entity.Employee, len(employees))
	for _, e := range employees {
		b.employeesByID[e.ID] = e
	}

	b.shiftsByID = make(map[entity.ShiftID]entity.NormalizedShift, len(shifts))
	for _, s := range shifts {
		b.shiftsByID[s.ID] = s
	}

	b.timeOffByEmployee = make(map[entity.EmployeeID][]entity.TimeOff)
	for _, t := range timeOff {
		b.timeOffByEmployee[t.EmployeeID] = append(b.timeOffByEmployee[t.EmployeeID], t)
	}

	b.preferenceByPair = make(map[pairKey]float64, len(preferences))
	for _, p := range preferences {
		b.preferenceByPair[pairKey{p.EmployeeID, p.ShiftID}] = p.Score
	}

	b.overtimeCostByRole = make(map[entity.Role]float64, len(overtimeCosts))
	for _, c := range overtimeCosts {
		b.overtimeCostByRole[c.Role] = c.CostPerHour
	}
}

// AssignmentVar returns the x[e,s] variable for the given pair and whether
// it exists (it won't if eligibility ruled the pair out).
func (b *Built) AssignmentVar(e entity.EmployeeID, s entity.ShiftID) (solve.Var, bool) {
	v, ok := b.X[pairKey{Employee: e, Shift: s}]
	return v, ok
}

// SkillShiftVar returns the by-shift skill shortfall variable for (s, skill),
// present only when SkillMode == config.SkillModeByShift.
func (b *Built) SkillShiftVar(s entity.ShiftID, skill entity.Skill) (solve.Var, bool) {
	v, ok := b.ShortSkillShift[shiftSkillKey{Shift: s, Skill: skill}]
	return v, ok
}

// Preference returns the declared preference score for (e,s), or 0 if none
// was declared.
func (b *Built) Preference(e entity.EmployeeID, s entity.ShiftID) float64 {
	return b.preferenceByPair[pairKey{e, s}]
}

// EmployeeByID returns the employee record for id, for callers (e.g.
// internal/extract) that only have Built in hand.
func (b *Built) EmployeeByID(id entity.EmployeeID) (entity.Employee, bool) {
	e, ok := b.employeesByID[id]
	return e, ok
}

// ShiftByID returns the normalized shift record for id.
func (b *Built) ShiftByID(id entity.ShiftID) (entity.NormalizedShift, bool) {
	s, ok := b.shiftsByID[id]
	return s, ok
}

// roleCostWeight picks the cheapest overtime_costs rate among the roles e
// qualifies for; employees holding no priced role default to a weight of
// 1.0 so overtime is never free. This resolves an ambiguity the source
// leaves implicit (an employee may hold multiple roles, each separately
// priced) in favor of the cost the scheduler would actually be charged if
// it could choose.
func (b *Built) roleCostWeight(e entity.Employee) float64 {
	roles := make([]string, 0, len(e.Roles))
	for r := range e.Roles {
		roles = append(roles, string(r))
	}
	sort.Strings(roles)

	best := -1.0
	for _, r := range roles {
		if c, ok := b.overtimeCostByRole[entity.Role(r)]; ok {
			if best < 0 || c < best {
				best = c
			}
		}
	}
	if best < 0 {
		return 1.0
	}
	return best
}
