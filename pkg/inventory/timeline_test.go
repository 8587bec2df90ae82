package inventory

import (
	"testing"

	"github.com/railgo/railgo/pkg/rtdf"
)

func TestFreeRunsDoNotMergeAcrossOccupancy(t *testing.T) {
	route := &rtdf.Route{
		PrimaryIdentifier: "route-1",
		Stops: []rtdf.Stop{
			{StationRef: "station-a", Order: 0},
			{StationRef: "station-b", Order: 1},
			{StationRef: "station-c", Order: 2},
			{StationRef: "station-d", Order: 3},
		},
	}

	seats := []rtdf.Seat{{Identifier: "2A", SeatTypeRef: "second-class"}}
	occupied := []rtdf.OccupiedSeat{
		{SeatRef: "2A", FromOrder: 1, ToOrder: 2},
	}

	counts := countFreeRuns(buildTimelines(route, seats, occupied))

	// The middle occupancy splits the seat into two runs: [0,1) and [2,4)
	if counts[freeRunKey{Begin: 0, End: 1}] != 1 {
		t.Fatalf("expected leading run, got %v", counts)
	}
	if counts[freeRunKey{Begin: 2, End: 4}] != 1 {
		t.Fatalf("expected trailing run, got %v", counts)
	}

	if availableForRange(counts, 0, 1) != 1 {
		t.Fatalf("expected leading leg to be servable")
	}
	if availableForRange(counts, 2, 3) != 1 {
		t.Fatalf("expected trailing leg to be servable")
	}
	if availableForRange(counts, 0, 3) != 0 {
		t.Fatalf("expected spanning range to be unservable")
	}
	if availableForRange(counts, 1, 2) != 0 {
		t.Fatalf("expected occupied leg to be unservable")
	}
}

func TestSeatTimelineAlightingStopStaysFree(t *testing.T) {
	timeline := newSeatTimeline(3)
	timeline.markOccupied(0, 1)

	if !timeline.freeFor(1, 3) {
		t.Fatalf("expected the remainder of the route to be free")
	}
	if timeline.freeFor(0, 2) {
		t.Fatalf("expected overlap with the held stop to be detected")
	}
}
