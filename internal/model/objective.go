package model

import (
	"context"
	"fmt"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/solve"
)

// buildObjectiveTerms assembles the raw (unweighted, person-minutes) linear
// expression for each of the eight recognized objective keys (spec §4.5's
// objective term table). Weighting and the weighted-sum/lex solve regime
// are applied later, by Solve, since the same ObjectiveTerms feed both.
func (b *Built) buildObjectiveTerms() {
	b.buildUnmetWindowTerm()
	b.buildUnmetDemandTerm()
	b.buildUnmetSkillTerm()
	b.buildOverstaffTerm()
	b.buildOvertimeTerm()
	b.buildExternalUseTerm()
	b.buildPreferencesTerm()
	b.buildFairnessTerm()
}

func (b *Built) buildUnmetWindowTerm() {
	var terms []solve.Term
	for _, v := range b.ShortSeg {
		terms = append(terms, solve.Term{Coefficient: 1, Var: v})
	}
	b.ObjectiveTerms["unmet_window"] = terms
}

func (b *Built) buildUnmetDemandTerm() {
	var terms []solve.Term
	for sid, v := range b.ShiftShortfall {
		terms = append(terms, solve.Term{Coefficient: float64(b.shiftsByID[sid].DurationMinutes), Var: v})
	}
	b.ObjectiveTerms["unmet_demand"] = terms
}

func (b *Built) buildUnmetSkillTerm() {
	var terms []solve.Term
	for _, v := range b.ShortSkillSegment {
		terms = append(terms, solve.Term{Coefficient: 1, Var: v})
	}
	for k, v := range b.ShortSkillShift {
		terms = append(terms, solve.Term{Coefficient: float64(b.shiftsByID[k.Shift].DurationMinutes), Var: v})
	}
	b.ObjectiveTerms["unmet_skill"] = terms
}

func (b *Built) buildOverstaffTerm() {
	var terms []solve.Term
	for _, v := range b.OverSeg {
		terms = append(terms, solve.Term{Coefficient: 1, Var: v})
	}
	for sid, v := range b.ShiftOverstaff {
		terms = append(terms, solve.Term{Coefficient: float64(b.shiftsByID[sid].DurationMinutes), Var: v})
	}
	b.ObjectiveTerms["overstaff"] = terms
}

func (b *Built) buildOvertimeTerm() {
	var terms []solve.Term
	for _, e := range b.Employees {
		v, ok := b.Overtime[e.ID]
		if !ok {
			continue
		}
		terms = append(terms, solve.Term{Coefficient: b.roleCostWeight(e), Var: v})
	}
	b.ObjectiveTerms["overtime"] = terms
}

// buildExternalUseTerm charges every external employee's worked minutes
// directly, since external_use has no dedicated aggregate variable: it is
// the sum of duration(s)·x[e,s] over every external employee's eligible
// shifts (spec §4.5's external_use row).
func (b *Built) buildExternalUseTerm() {
	var terms []solve.Term
	for _, e := range b.Employees {
		if e.IsContracted() {
			continue
		}
		terms = append(terms, b.workedTerms(e.ID)...)
	}
	b.ObjectiveTerms["external_use"] = terms
}

// buildPreferencesTerm scales each declared preference score by the mean
// shift duration across the whole shift set, so a unit of preference score
// converts to the same person-minutes units every other term uses.
// Positive scores reduce the objective (reward); negative scores increase
// it (penalty), matching the signed convention in spec §4.1.
func (b *Built) buildPreferencesTerm() {
	if len(b.Shifts) == 0 {
		b.ObjectiveTerms["preferences"] = nil
		return
	}
	total := 0
	for _, s := range b.Shifts {
		total += s.DurationMinutes
	}
	mean := float64(total) / float64(len(b.Shifts))

	var terms []solve.Term
	for k, score := range b.preferenceByPair {
		if score == 0 {
			continue
		}
		x, ok := b.X[k]
		if !ok {
			continue
		}
		terms = append(terms, solve.Term{Coefficient: -score * mean, Var: x})
	}
	b.ObjectiveTerms["preferences"] = terms
}

func (b *Built) buildFairnessTerm() {
	var terms []solve.Term
	for _, e := range b.Employees {
		if over, ok := b.FairnessOver[e.ID]; ok {
			terms = append(terms, solve.Term{Coefficient: 1, Var: over})
		}
		if under, ok := b.FairnessUnder[e.ID]; ok {
			terms = append(terms, solve.Term{Coefficient: 1, Var: under})
		}
	}
	b.ObjectiveTerms["fairness"] = terms
}

// StageResult records one lexicographic-cascade stage's achieved objective
// value, in priority order.
type StageResult struct {
	Key            string
	ObjectiveValue float64
}

// scaledWeight converts a per-person-hour penalty rate into the
// per-person-minute weight the solver actually multiplies:
// penalty_per_person_hour/60*100, not rounded (0.15 gives 0.25).
func scaledWeight(penaltyPerPersonHour float64) float64 {
	return penaltyPerPersonHour / 60 * 100
}

// penaltyWeights maps every recognized objective key to its configured
// per-person-hour penalty rate, shared by Solve and by internal/extract's
// objective breakdown.
func (b *Built) penaltyWeights() map[string]float64 {
	return map[string]float64{
		"unmet_window": b.cfg.Penalties.UnmetWindow,
		"unmet_demand": b.cfg.Penalties.UnmetDemand,
		"unmet_skill":  b.cfg.Penalties.UnmetSkill,
		"overstaff":    b.cfg.Penalties.Overstaff,
		"overtime":     b.cfg.Penalties.Overtime,
		"external_use": b.cfg.Penalties.ExternalUse,
		"preferences":  b.cfg.Penalties.Preferences,
		"fairness":     b.cfg.Penalties.Fairness,
	}
}

// PenaltyWeight returns the per-person-minute weight (spec §4.5's scaled
// weight) the solver actually multiplies term key by, for reporting
// purposes (internal/extract's objective breakdown).
func (b *Built) PenaltyWeight(key string) float64 {
	return scaledWeight(b.penaltyWeights()[key])
}

// Solve runs either the weighted-sum or lexicographic-cascade regime
// (spec §4.5's "State machine (solver invocation)") against the already
// wired ObjectiveTerms, returning the final solution and, in lex mode, the
// per-stage trace.
func (b *Built) Solve(ctx context.Context, limits solve.Limits) (solve.Solution, []StageResult, error) {
	weights := b.penaltyWeights()

	if b.cfg.Objective.Mode == config.ObjectiveModeWeighted {
		var terms []solve.Term
		for key, expr := range b.ObjectiveTerms {
			w := scaledWeight(weights[key])
			for _, t := range expr {
				terms = append(terms, solve.Term{Coefficient: w * t.Coefficient, Var: t.Var})
			}
		}
		b.Solver.SetObjective(true, terms...)
		sol, err := b.Solver.Solve(ctx, limits)
		return sol, nil, err
	}

	return b.solveLex(ctx, limits)
}

func (b *Built) solveLex(ctx context.Context, limits solve.Limits) (solve.Solution, []StageResult, error) {
	var stages []StageResult
	var last solve.Solution

	priority := b.cfg.Objective.Priority
	if len(priority) == 0 {
		priority = config.PriorityKeys
	}

	for i, key := range priority {
		expr := b.ObjectiveTerms[key]
		if len(expr) == 0 {
			continue
		}

		b.Solver.SetObjective(true, expr...)
		sol, err := b.Solver.Solve(ctx, limits)
		if err != nil {
			return sol, stages, fmt.Errorf("model: lex stage %q: %w", key, err)
		}
		if !sol.IsFeasible() {
			if i == 0 {
				return sol, stages, nil
			}
			return last, stages, nil
		}

		last = sol
		stages = append(stages, StageResult{Key: key, ObjectiveValue: sol.ObjectiveValue})

		locked := evalExprValue(expr, sol)
		b.Solver.AddConstraint(fmt.Sprintf("lex_lock__%s", key), solve.LE, locked, expr...)

		limits.Hint = sol.Values
	}

	return last, stages, nil
}

func evalExprValue(expr []solve.Term, sol solve.Solution) float64 {
	total := 0.0
	for _, t := range expr {
		total += t.Coefficient * sol.Value(t.Var)
	}
	return total
}
