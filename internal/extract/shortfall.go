package extract

import (
	"sort"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/segment"
	"github.com/schedcu/scheduler/internal/solve"
)

// SegmentShortfall is one window-derived segment's unmet/overstaffed
// person-minutes in the solved solution.
type SegmentShortfall struct {
	SegmentID string
	Shortfall int
	Overstaff int
}

// SegmentShortfalls reports every segment carrying a nonzero shortfall or
// overstaff value.
func SegmentShortfalls(b *model.Built, sol solve.Solution) []SegmentShortfall {
	var out []SegmentShortfall
	ids := map[string]bool{}
	for id := range b.ShortSeg {
		ids[string(id)] = true
	}
	for id := range b.OverSeg {
		ids[string(id)] = true
	}
	for id := range ids {
		short := 0
		if v, ok := b.ShortSeg[segment.ID(id)]; ok {
			short = int(sol.Value(v))
		}
		over := 0
		if v, ok := b.OverSeg[segment.ID(id)]; ok {
			over = int(sol.Value(v))
		}
		if short == 0 && over == 0 {
			continue
		}
		out = append(out, SegmentShortfall{SegmentID: id, Shortfall: short, Overstaff: over})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SegmentID < out[j].SegmentID })
	return out
}

// ShiftShortfall is one shift's direct-demand shortfall/overstaff (the
// fallback hard-constraint family for shifts with no window-derived
// segment demand).
type ShiftShortfall struct {
	ShiftID   entity.ShiftID
	Shortfall int
	Overstaff int
}

// ShiftShortfalls reports every shift carrying a nonzero direct-demand
// shortfall or overstaff value.
func ShiftShortfalls(b *model.Built, sol solve.Solution) []ShiftShortfall {
	ids := map[entity.ShiftID]bool{}
	for id := range b.ShiftShortfall {
		ids[id] = true
	}
	for id := range b.ShiftOverstaff {
		ids[id] = true
	}
	var out []ShiftShortfall
	for id := range ids {
		short := 0
		if v, ok := b.ShiftShortfall[id]; ok {
			short = int(sol.Value(v))
		}
		over := 0
		if v, ok := b.ShiftOverstaff[id]; ok {
			over = int(sol.Value(v))
		}
		if short == 0 && over == 0 {
			continue
		}
		out = append(out, ShiftShortfall{ShiftID: id, Shortfall: short, Overstaff: over})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShiftID < out[j].ShiftID })
	return out
}
