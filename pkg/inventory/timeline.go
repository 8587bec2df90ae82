package inventory

import (
	"github.com/railgo/railgo/pkg/rtdf"
)

// seatTimeline is one seat's occupancy across the whole route, indexed by stop
// order rather than station identifier.
type seatTimeline []bool

func newSeatTimeline(stopCount int) seatTimeline {
	return make(seatTimeline, stopCount)
}

func (t seatTimeline) markOccupied(fromOrder int, toOrder int) {
	for i := fromOrder; i < toOrder && i < len(t); i++ {
		t[i] = true
	}
}

func (t seatTimeline) freeFor(fromOrder int, toOrder int) bool {
	for i := fromOrder; i < toOrder && i < len(t); i++ {
		if t[i] {
			return false
		}
	}

	return true
}

// freeRunKey identifies a maximal free run by its exact stop-order bounds.
type freeRunKey struct {
	Begin int
	End   int
}

// buildTimelines lays every occupied-seat record of a seat type onto per-seat
// timelines.
func buildTimelines(route *rtdf.Route, seats []rtdf.Seat, occupied []rtdf.OccupiedSeat) map[string]seatTimeline {
	stopCount := len(route.Stops)

	timelines := map[string]seatTimeline{}
	for _, seat := range seats {
		timelines[seat.Identifier] = newSeatTimeline(stopCount)
	}

	for _, occupant := range occupied {
		timeline, exists := timelines[occupant.SeatRef]
		if !exists {
			continue
		}

		timeline.markOccupied(occupant.FromOrder, occupant.ToOrder)
	}

	return timelines
}

// countFreeRuns scans each timeline once, counting maximal free runs keyed by
// their exact bounds.
func countFreeRuns(timelines map[string]seatTimeline) map[freeRunKey]int {
	counts := map[freeRunKey]int{}

	for _, timeline := range timelines {
		runBegin := -1

		for i := 0; i <= len(timeline); i++ {
			occupied := i == len(timeline) || timeline[i]

			if !occupied && runBegin < 0 {
				runBegin = i
			}

			if occupied && runBegin >= 0 {
				counts[freeRunKey{Begin: runBegin, End: i}]++
				runBegin = -1
			}
		}
	}

	return counts
}

// availableForRange answers how many seats can serve the range. A range is
// served only by a single maximal free run that contains it whole - free runs
// are never merged across an occupancy, and seats free only for fragments of
// the range never count.
func availableForRange(counts map[freeRunKey]int, fromOrder int, toOrder int) int {
	total := 0

	for run, count := range counts {
		if run.Begin <= fromOrder && toOrder <= run.End {
			total += count
		}
	}

	return total
}
