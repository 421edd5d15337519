package extract

import (
	"sort"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/solve"
)

// SkillShortfall is one (segment-or-shift, skill) pair's unmet person-
// minutes, in whichever skill coverage mode the model was built with.
type SkillShortfall struct {
	Key       string
	Skill     entity.Skill
	Shortfall int
}

// SkillShortfalls reports every skill shortfall variable with a nonzero
// solved value, dispatching on the model's configured skill mode.
func SkillShortfalls(b *model.Built, sol solve.Solution) []SkillShortfall {
	var out []SkillShortfall

	if b.SkillMode == config.SkillModeBySegment {
		for k, v := range b.ShortSkillSegment {
			val := int(sol.Value(v))
			if val == 0 {
				continue
			}
			out = append(out, SkillShortfall{Key: string(k.Segment), Skill: k.Skill, Shortfall: val})
		}
	} else {
		for k, v := range b.ShortSkillShift {
			val := int(sol.Value(v))
			if val == 0 {
				continue
			}
			out = append(out, SkillShortfall{Key: string(k.Shift), Skill: k.Skill, Shortfall: val})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}
