package model

import (
	"fmt"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/solve"
)

// createAssignmentVariables creates x[e,s] for every admissible pair, per
// spec §4.1's decision variable table.
func (b *Built) createAssignmentVariables() {
	for _, e := range b.Employees {
		for _, s := range b.Shifts {
			if !b.Eligibility.CanAssign(e.ID, s.ID) {
				continue
			}
			v := b.Solver.NewBool(fmt.Sprintf("x__%s__%s", e.ID, s.ID))
			b.X[pairKey{e.ID, s.ID}] = v
		}
	}
}

// addAggregateDefinitionConstraints creates y[s], the number of employees
// assigned to shift s, and pins it to the sum of x[e,s] (spec §4.5 hard
// constraint 1).
func (b *Built) addAggregateDefinitionConstraints() {
	for _, s := range b.Shifts {
		eligible := b.Eligibility.EligibleEmployees(s.ID, b.Employees)
		y := b.Solver.NewInt(fmt.Sprintf("y__%s", s.ID), 0, len(eligible))
		b.Y[s.ID] = y

		terms := make([]solve.Term, 0, len(eligible)+1)
		terms = append(terms, solve.Term{Coefficient: 1, Var: y})
		for _, eid := range eligible {
			terms = append(terms, solve.Term{Coefficient: -1, Var: b.X[pairKey{eid, s.ID}]})
		}
		b.Solver.AddConstraint(fmt.Sprintf("agg_def__%s", s.ID), solve.EQ, 0, terms...)
	}
}

// addOneShiftPerDayConstraints enforces at most one shift per employee per
// calendar day (spec §4.5 hard constraint 2).
func (b *Built) addOneShiftPerDayConstraints() {
	byDay := make(map[string][]entity.NormalizedShift)
	for _, s := range b.Shifts {
		k := dayKey(s.Day)
		byDay[k] = append(byDay[k], s)
	}

	for _, e := range b.Employees {
		for day, shifts := range byDay {
			var terms []solve.Term
			for _, s := range shifts {
				v, ok := b.X[pairKey{e.ID, s.ID}]
				if !ok {
					continue
				}
				terms = append(terms, solve.Term{Coefficient: 1, Var: v})
			}
			if len(terms) == 0 {
				continue
			}
			b.Solver.AddConstraint(fmt.Sprintf("one_per_day__%s__%s", e.ID, day), solve.LE, 1, terms...)
		}
	}
}
