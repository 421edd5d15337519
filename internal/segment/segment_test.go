package segment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/config"
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

func TestWindowWithinSingleShiftProducesOneSegment(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse"})
	w1 := entity.Window{ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse", Demand: 1}

	graph, vr, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)
	assert.False(t, vr.HasErrors())
	require.Len(t, graph.Segments, 1)
	assert.Equal(t, 8*60, graph.Segments[0].StartMin)
	assert.Equal(t, 16*60, graph.Segments[0].EndMin)
	assert.Equal(t, []segment.ID{graph.Segments[0].ID}, graph.SegmentsOfShift["S1"])
}

func TestWindowSplitsShiftIntoTwoSegments(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse"})
	w1 := entity.Window{ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 12 * 60, Role: "Nurse", Demand: 1}

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)
	require.Len(t, graph.Segments, 2)
	assert.Equal(t, []entity.ShiftID{"S1"}, graph.ShiftsOfSegment[graph.Segments[0].ID])
	assert.Equal(t, []entity.ShiftID{"S1"}, graph.ShiftsOfSegment[graph.Segments[1].ID])
}

func TestOvernightShiftSplitPolicyProducesTwoRunsSummingToDuration(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 22 * 60, EndMin: 6 * 60, Role: "Nurse"})

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, nil, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)

	segs := graph.SegmentsOfShift["S1"]
	require.Len(t, segs, 2)

	var total int
	for _, id := range segs {
		s, ok := graph.Segment(id)
		require.True(t, ok)
		total += s.DurationMinutes()
	}
	assert.Equal(t, 480, total)
}

func TestOvernightShiftExtendPolicyProducesSingleOverflowRun(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 22 * 60, EndMin: 6 * 60, Role: "Nurse"})

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, nil, config.MidnightPolicyExtend, 0, 0)
	require.NoError(t, err)

	segs := graph.SegmentsOfShift["S1"]
	require.Len(t, segs, 1)
	s, ok := graph.Segment(segs[0])
	require.True(t, ok)
	assert.Equal(t, 22*60, s.StartMin)
	assert.Equal(t, 22*60+480, s.EndMin)
}

func TestCoincidentWindowsShareSegments(t *testing.T) {
	s1 := normalize(t, entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse"})
	w1 := entity.Window{ID: "W1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse", Demand: 1}
	w2 := entity.Window{ID: "W2", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60, Role: "Nurse", Demand: 2}

	graph, _, err := segment.Build([]entity.NormalizedShift{s1}, []entity.Window{w1, w2}, config.MidnightPolicySplit, 0, 0)
	require.NoError(t, err)
	require.Len(t, graph.Segments, 1)
}

func TestHardThresholdExceededFailsBuild(t *testing.T) {
	var shifts []entity.NormalizedShift
	var windows []entity.Window
	for i := 0; i < 10; i++ {
		start := i * 60
		windows = append(windows, entity.Window{
			ID: entity.WindowID("W" + string(rune('A'+i))), Day: day("2024-01-01"),
			StartMin: start, EndMin: start + 60, Role: "Nurse", Demand: 1,
		})
	}

	_, _, err := segment.Build(shifts, windows, config.MidnightPolicySplit, 0, 3)
	require.Error(t, err)
}

func TestWarnThresholdExceededAddsWarning(t *testing.T) {
	var windows []entity.Window
	for i := 0; i < 5; i++ {
		start := i * 60
		windows = append(windows, entity.Window{
			ID: entity.WindowID("W" + string(rune('A'+i))), Day: day("2024-01-01"),
			StartMin: start, EndMin: start + 60, Role: "Nurse", Demand: 1,
		})
	}

	graph, vr, err := segment.Build(nil, windows, config.MidnightPolicySplit, 2, 0)
	require.NoError(t, err)
	require.NotEmpty(t, graph.Segments)
	assert.NotEmpty(t, vr.Warnings)
}
