package extract

import (
	"fmt"
	"sort"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/solve"
)

// VerifyAggregates checks y[s] == sum_e x[e,s] for every shift against an
// already-solved solution, returning one message per shift where the two
// disagree (there should never be any; this is a sanity check against a
// modeling bug, not a user-facing diagnostic). Grounded on
// original_source/src/model_cp.py's verify_aggregate_variables.
func VerifyAggregates(b *model.Built, sol solve.Solution) []string {
	var mismatches []string
	shiftIDs := make([]entity.ShiftID, 0, len(b.Y))
	for sid := range b.Y {
		shiftIDs = append(shiftIDs, sid)
	}
	sort.Slice(shiftIDs, func(i, j int) bool { return shiftIDs[i] < shiftIDs[j] })

	for _, sid := range shiftIDs {
		yVal := sol.Value(b.Y[sid])

		xSum := 0.0
		for _, p := range b.Eligibility.Pairs() {
			if p.ShiftID != sid || !p.CanAssign {
				continue
			}
			if v, ok := b.AssignmentVar(p.EmployeeID, sid); ok {
				xSum += sol.Value(v)
			}
		}

		if yVal != xSum {
			mismatches = append(mismatches, fmt.Sprintf("shift %s: y[s]=%v != sum(x[e,s])=%v", sid, yVal, xSum))
		}
	}
	return mismatches
}
