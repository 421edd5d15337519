// Package segment builds, for each (day, role) timeline, the maximal
// half-open segments whose boundaries are the event points of the shift and
// window lattice, per spec §4.3. It is grounded on
// original_source/src/model_cp.py's shift_to_covering_segments /
// segment_bounds bipartite tables: this package produces the Go-native
// equivalent of that precomputed mapping, built directly from normalized
// shifts and windows rather than consumed from an opaque adaptive-slot
// object.
package segment

import (
	"fmt"
	"sort"
	"time"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/timeutil"
	"github.com/schedcu/scheduler/internal/validation"
)

// ID uniquely identifies a segment within a Graph.
type ID string

// Segment is a maximal (day, role) interval bounded by event points.
type Segment struct {
	ID       ID
	Day      time.Time
	Role     entity.Role
	StartMin int
	EndMin   int
}

// DurationMinutes returns the segment's length.
func (s Segment) DurationMinutes() int { return s.EndMin - s.StartMin }

// Graph is the bipartite shift<->segment adjacency produced by Build, plus
// the ordered segment list itself (stable over day, role, start_min, id).
type Graph struct {
	Segments        []Segment
	SegmentsOfShift map[entity.ShiftID][]ID
	ShiftsOfSegment map[ID][]entity.ShiftID

	index map[ID]int
}

// Segment looks up a segment by id.
func (g *Graph) Segment(id ID) (Segment, bool) {
	i, ok := g.index[id]
	if !ok {
		return Segment{}, false
	}
	return g.Segments[i], true
}

// run is one shift's contribution to a single (day, role) timeline. A shift
// crossing midnight under the split policy contributes two runs; under the
// extend policy it contributes one run whose EndMin may exceed 1440.
type run struct {
	ShiftID  entity.ShiftID
	Day      time.Time
	Role     entity.Role
	StartMin int
	EndMin   int
}

type timeline struct {
	day      time.Time
	role     entity.Role
	events   map[int]struct{}
	runs     []run
	windowed []entity.Window
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func timelineKey(d time.Time, role entity.Role) string {
	return dayKey(d) + "|" + string(role)
}

// Build constructs the segment graph for every (day, role) timeline spanned
// by shifts and windows, applying midnight to determine how overnight
// shifts map onto timelines, and validates that every window aligns exactly
// to a contiguous run of segments. warnThreshold/hardThreshold of 0 disable
// the corresponding guardrail.
func Build(
	shifts []entity.NormalizedShift,
	windows []entity.Window,
	policy config.MidnightPolicy,
	warnThreshold, hardThreshold int,
) (*Graph, *validation.Result, error) {
	vr := validation.NewResult()

	timelines := map[string]*timeline{}
	timelineFor := func(d time.Time, role entity.Role) *timeline {
		k := timelineKey(d, role)
		tl, ok := timelines[k]
		if !ok {
			tl = &timeline{day: d, role: role, events: map[int]struct{}{}}
			timelines[k] = tl
		}
		return tl
	}

	for _, s := range shifts {
		for _, r := range buildShiftRuns(s, policy) {
			tl := timelineFor(r.Day, r.Role)
			tl.events[r.StartMin] = struct{}{}
			tl.events[r.EndMin] = struct{}{}
			tl.runs = append(tl.runs, r)
		}
	}

	for _, w := range windows {
		if policy == config.MidnightPolicyExtend && w.EndMin > timeutil.MinutesPerDay {
			return nil, nil, fmt.Errorf(
				"segment: window %s end %d exceeds the day boundary under the extend midnight policy",
				w.ID, w.EndMin)
		}
		tl := timelineFor(w.Day, w.Role)
		tl.events[w.StartMin] = struct{}{}
		tl.events[w.EndMin] = struct{}{}
		tl.windowed = append(tl.windowed, w)
	}

	keys := make([]string, 0, len(timelines))
	for k := range timelines {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := timelines[keys[i]], timelines[keys[j]]
		if !ti.day.Equal(tj.day) {
			return ti.day.Before(tj.day)
		}
		return ti.role < tj.role
	})

	graph := &Graph{
		SegmentsOfShift: map[entity.ShiftID][]ID{},
		ShiftsOfSegment: map[ID][]entity.ShiftID{},
		index:           map[ID]int{},
	}

	for _, k := range keys {
		tl := timelines[k]
		points := make([]int, 0, len(tl.events))
		for p := range tl.events {
			points = append(points, p)
		}
		sort.Ints(points)
		if len(points) < 2 {
			continue
		}

		segmentCount := 0
		for i := 0; i < len(points)-1; i++ {
			segStart, segEnd := points[i], points[i+1]
			id := ID(fmt.Sprintf("%s|%s|%d", dayKey(tl.day), tl.role, segStart))
			seg := Segment{ID: id, Day: tl.day, Role: tl.role, StartMin: segStart, EndMin: segEnd}
			graph.index[id] = len(graph.Segments)
			graph.Segments = append(graph.Segments, seg)
			segmentCount++

			var covering []entity.ShiftID
			for _, r := range tl.runs {
				if r.StartMin <= segStart && segEnd <= r.EndMin {
					covering = append(covering, r.ShiftID)
					graph.SegmentsOfShift[r.ShiftID] = append(graph.SegmentsOfShift[r.ShiftID], id)
				}
			}
			graph.ShiftsOfSegment[id] = covering
		}

		if hardThreshold > 0 && segmentCount > hardThreshold {
			return nil, nil, fmt.Errorf(
				"segment: (day=%s, role=%s) produced %d segments, exceeding the hard threshold of %d",
				dayKey(tl.day), tl.role, segmentCount, hardThreshold)
		}
		if warnThreshold > 0 && segmentCount > warnThreshold {
			vr.AddWarning(validation.SegmentThresholdExceeded, "segments",
				"(day=%s, role=%s) produced %d segments, exceeding the warn threshold of %d",
				dayKey(tl.day), tl.role, segmentCount, warnThreshold)
		}
	}

	for _, w := range windows {
		if err := verifyWindowAlignment(graph, w); err != nil {
			return nil, nil, err
		}
	}

	return graph, vr, nil
}

// buildShiftRuns expands a single shift into its timeline contributions.
func buildShiftRuns(s entity.NormalizedShift, policy config.MidnightPolicy) []run {
	if !s.CrossesMidnight {
		return []run{{
			ShiftID: s.ID, Day: s.Day, Role: s.Role,
			StartMin: s.StartMin, EndMin: s.StartMin + s.DurationMinutes,
		}}
	}

	if policy == config.MidnightPolicyExtend {
		return []run{{
			ShiftID: s.ID, Day: s.Day, Role: s.Role,
			StartMin: s.StartMin, EndMin: s.StartMin + s.DurationMinutes,
		}}
	}

	firstEnd := timeutil.MinutesPerDay
	runs := []run{{
		ShiftID: s.ID, Day: s.Day, Role: s.Role,
		StartMin: s.StartMin, EndMin: firstEnd,
	}}

	secondEnd := s.StartMin + s.DurationMinutes - firstEnd
	if secondEnd > 0 {
		nextDay := s.Day.AddDate(0, 0, 1)
		runs = append(runs, run{
			ShiftID: s.ID, Day: nextDay, Role: s.Role,
			StartMin: 0, EndMin: secondEnd,
		})
	}
	return runs
}

// verifyWindowAlignment confirms that window w's interval is exactly the
// union of a contiguous run of segments on its (day, role) timeline; it is
// a strict requirement (spec §4.3) because Build always injects window
// boundaries as event points, so failure here indicates a construction bug
// rather than malformed input.
func verifyWindowAlignment(graph *Graph, w entity.Window) error {
	if w.StartMin >= w.EndMin {
		return nil
	}

	dk := dayKey(w.Day)
	cursor := w.StartMin
	for _, s := range graph.Segments {
		if dayKey(s.Day) != dk || s.Role != w.Role {
			continue
		}
		if s.StartMin != cursor {
			continue
		}
		if s.StartMin >= w.EndMin {
			break
		}
		cursor = s.EndMin
		if cursor >= w.EndMin {
			break
		}
	}

	if cursor != w.EndMin {
		return fmt.Errorf(
			"segment: window %s [%d,%d) on (day=%s, role=%s) cannot be expressed as a union of segments; gap of %d minute(s) starting at minute %d",
			w.ID, w.StartMin, w.EndMin, dk, w.Role, w.EndMin-cursor, cursor)
	}
	return nil
}
