package extract

import (
	"sort"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/solve"
)

// ObjectiveComponent is one term's contribution to the solved objective:
// the raw person-minutes of unmet/overstaff/etc, its configured weight,
// and the resulting cost, mirroring extract_objective_breakdown's
// per-component dict.
type ObjectiveComponent struct {
	Key         string
	Minutes     float64
	WeightPerMin float64
	Cost        float64
}

// ObjectiveBreakdown evaluates every recognized penalty key's raw
// expression against sol and attaches its configured weight, for
// reporting (spec §9's objective_breakdown.csv).
func ObjectiveBreakdown(b *model.Built, sol solve.Solution) []ObjectiveComponent {
	out := make([]ObjectiveComponent, 0, len(config.PriorityKeys))
	for _, key := range config.PriorityKeys {
		expr := b.ObjectiveTerms[key]
		minutes := 0.0
		for _, t := range expr {
			minutes += t.Coefficient * sol.Value(t.Var)
		}
		weight := b.PenaltyWeight(key)
		out = append(out, ObjectiveComponent{
			Key:          key,
			Minutes:      minutes,
			WeightPerMin: weight,
			Cost:         minutes * weight,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
