// Package demand projects window-level demand onto segments, in headcount
// or person-minutes semantics, per spec §4.4. Grounded on
// original_source/src/model_cp.py's _compute_segment_demands /
// _compute_segment_skill_demands: the same two projection modes, the same
// "ignore shift-level skills when window-level skills are present anywhere"
// rule.
package demand

import (
	"time"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/segment"
	"github.com/schedcu/scheduler/internal/validation"
)

// SegmentDemand maps a segment to its required person-minutes.
type SegmentDemand map[segment.ID]int

// SkillKey identifies a (segment, skill) pair.
type SkillKey struct {
	Segment segment.ID
	Skill   entity.Skill
}

// SegmentSkillDemand maps a (segment, skill) pair to its required
// person-minutes.
type SegmentSkillDemand map[SkillKey]int

func timelineKey(d time.Time, role entity.Role) string {
	return d.Format("2006-01-02") + "|" + string(role)
}

func overlapMinutes(segStart, segEnd, winStart, winEnd int) int {
	start := segStart
	if winStart > start {
		start = winStart
	}
	end := segEnd
	if winEnd < end {
		end = winEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

func windowsByTimeline(windows []entity.Window) map[string][]entity.Window {
	idx := make(map[string][]entity.Window, len(windows))
	for _, w := range windows {
		k := timelineKey(w.Day, w.Role)
		idx[k] = append(idx[k], w)
	}
	return idx
}

// Project computes segment_demand for every segment with positive demand,
// under the configured demand mode.
func Project(graph *segment.Graph, windows []entity.Window, mode config.DemandMode) SegmentDemand {
	byTimeline := windowsByTimeline(windows)
	out := SegmentDemand{}

	for _, seg := range graph.Segments {
		windows := byTimeline[timelineKey(seg.Day, seg.Role)]
		if len(windows) == 0 {
			continue
		}

		var total int
		switch mode {
		case config.DemandModeHeadcount:
			var headcount int
			for _, w := range windows {
				if overlapMinutes(seg.StartMin, seg.EndMin, w.StartMin, w.EndMin) > 0 {
					headcount += w.Demand
				}
			}
			total = headcount * seg.DurationMinutes()
		default: // person_minutes
			for _, w := range windows {
				ov := overlapMinutes(seg.StartMin, seg.EndMin, w.StartMin, w.EndMin)
				if ov > 0 && w.Demand > 0 {
					total += w.Demand * ov
				}
			}
		}

		if total > 0 {
			out[seg.ID] = total
		}
	}

	return out
}

// ProjectSkill computes segment_skill_demand analogously to Project, keyed
// by (segment, skill); only meaningful once ResolveSkillMode has selected
// by-segment skill mode.
func ProjectSkill(graph *segment.Graph, windows []entity.Window, mode config.DemandMode) SegmentSkillDemand {
	byTimeline := windowsByTimeline(windows)
	out := SegmentSkillDemand{}

	for _, seg := range graph.Segments {
		windows := byTimeline[timelineKey(seg.Day, seg.Role)]
		if len(windows) == 0 {
			continue
		}

		switch mode {
		case config.DemandModeHeadcount:
			headcount := map[entity.Skill]int{}
			for _, w := range windows {
				if overlapMinutes(seg.StartMin, seg.EndMin, w.StartMin, w.EndMin) <= 0 {
					continue
				}
				for skill, qty := range w.Skills {
					if qty > 0 {
						headcount[skill] += qty
					}
				}
			}
			for skill, n := range headcount {
				if minutes := n * seg.DurationMinutes(); minutes > 0 {
					out[SkillKey{Segment: seg.ID, Skill: skill}] = minutes
				}
			}
		default: // person_minutes
			minutes := map[entity.Skill]int{}
			for _, w := range windows {
				ov := overlapMinutes(seg.StartMin, seg.EndMin, w.StartMin, w.EndMin)
				if ov <= 0 {
					continue
				}
				for skill, qty := range w.Skills {
					if qty > 0 {
						minutes[skill] += qty * ov
					}
				}
			}
			for skill, m := range minutes {
				if m > 0 {
					out[SkillKey{Segment: seg.ID, Skill: skill}] = m
				}
			}
		}
	}

	return out
}

// ResolveSkillMode decides, for a given input set, whether skill
// requirements live on shifts or on windows/segments. When both are present
// the window-level (by-segment) source wins and a SkillModeConflict
// warning is logged, since the two cannot be mixed (spec §4.4).
func ResolveSkillMode(
	shifts []entity.NormalizedShift,
	windows []entity.Window,
	configured config.SkillMode,
) (config.SkillMode, *validation.Result) {
	vr := validation.NewResult()

	hasWindowSkills := false
	for _, w := range windows {
		if len(w.Skills) > 0 {
			hasWindowSkills = true
			break
		}
	}
	hasShiftSkills := false
	for _, s := range shifts {
		if len(s.SkillReqs) > 0 {
			hasShiftSkills = true
			break
		}
	}

	switch {
	case hasWindowSkills && hasShiftSkills:
		vr.AddWarning(validation.SkillModeConflict, "skills",
			"both shift-level and window-level skill requirements are present; shift-level skill requirements are ignored in favor of window-level (segment) skill demand")
		return config.SkillModeBySegment, vr
	case hasWindowSkills:
		return config.SkillModeBySegment, vr
	case hasShiftSkills:
		return config.SkillModeByShift, vr
	default:
		return configured, vr
	}
}
