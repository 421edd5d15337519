package demand_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/demand"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/segment"
	"github.com/schedcu/scheduler/internal/shiftnorm"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func normalize(t *testing.T, s entity.Shift) entity.NormalizedShift {
	t.Helper()
	n, err := shiftnorm.Normalize(s)
	require.NoError(t, err)
	return n
}

func TestProjectHeadcountAndPersonMinutesAgreeOnFullyContainedWindow(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 12 * 60, Role: "Nurse"})
	w1 := entity.Window{ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 12 * 60, Role: "Nurse", Demand: 2}

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)
	require.Len(t, graph.Segments, 1)

	headcount := demand.Project(graph, []entity.Window{w1}, config.DemandModeHeadcount)
	personMinutes := demand.Project(graph, []entity.Window{w1}, config.DemandModePersonMinutes)

	assert.Equal(t, 480, headcount[graph.Segments[0].ID])
	assert.Equal(t, 480, personMinutes[graph.Segments[0].ID])
}

func TestProjectCoincidentWindowsAreAdditive(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse"})
	w1 := entity.Window{ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse", Demand: 1}
	w2 := entity.Window{ID: "W2", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse", Demand: 2}

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1, w2}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)
	require.Len(t, graph.Segments, 1)

	out := demand.Project(graph, []entity.Window{w1, w2}, config.DemandModeHeadcount)
	assert.Equal(t, 3*480, out[graph.Segments[0].ID])
}

func TestResolveSkillModePrefersWindowSkillsAndWarns(t *testing.T) {
	shifts := []entity.NormalizedShift{{
		Shift: entity.Shift{ID: "S1", SkillReqs: map[entity.Skill]int{"skillA": 1}},
	}}
	windows := []entity.Window{{ID: "W1", Skills: map[entity.Skill]int{"skillA": 1}}}

	mode, vr := demand.ResolveSkillMode(shifts, windows, config.SkillModeByShift)
	assert.Equal(t, config.SkillModeBySegment, mode)
	assert.NotEmpty(t, vr.Warnings)
}

func TestResolveSkillModeFallsBackToConfiguredWhenNeitherPresent(t *testing.T) {
	mode, vr := demand.ResolveSkillMode(nil, nil, config.SkillModeByShift)
	assert.Equal(t, config.SkillModeByShift, mode)
	assert.Empty(t, vr.Warnings)
}

func TestProjectSkillPersonMinutes(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 12 * 60, Role: "Nurse"})
	w1 := entity.Window{
		ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 12 * 60, Role: "Nurse",
		Demand: 1, Skills: map[entity.Skill]int{"skillA": 1},
	}

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)

	out := demand.ProjectSkill(graph, []entity.Window{w1}, config.DemandModePersonMinutes)
	key := demand.SkillKey{Segment: graph.Segments[0].ID, Skill: "skillA"}
	assert.Equal(t, 240, out[key])
}
