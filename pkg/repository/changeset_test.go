package repository

import (
	"testing"

	"github.com/railgo/railgo/pkg/rtdf"
)

func scheduleWithOccupants(occupants map[string]rtdf.OccupiedSeat) *rtdf.TrainSchedule {
	segment := rtdf.SegmentKey{From: "station-a", To: "station-c", SeatType: "second-class"}

	occupied := map[string]rtdf.OccupiedSeat{}
	for seatRef, occupant := range occupants {
		occupied[seatRef] = occupant
	}

	return &rtdf.TrainSchedule{
		PrimaryIdentifier: "schedule-1",
		Availability: map[rtdf.SegmentKey]*rtdf.SeatAvailability{
			segment: {
				PrimaryIdentifier: "availability-1",
				ScheduleRef:       "schedule-1",
				SeatTypeRef:       "second-class",
				RangeFrom:         "station-a",
				RangeTo:           "station-c",
				ToOrder:           2,
				Occupied:          occupied,
			},
		},
	}
}

func TestDiffScheduleOccupancy(t *testing.T) {
	before := scheduleWithOccupants(map[string]rtdf.OccupiedSeat{
		"2A": {SeatRef: "2A", Passenger: rtdf.PersonalInfo{Name: "Stays"}},
		"2B": {SeatRef: "2B", Passenger: rtdf.PersonalInfo{Name: "Leaves"}},
		"2C": {SeatRef: "2C", Passenger: rtdf.PersonalInfo{Name: "Old Occupant"}},
	})

	after := scheduleWithOccupants(map[string]rtdf.OccupiedSeat{
		"2A": {SeatRef: "2A", Passenger: rtdf.PersonalInfo{Name: "Stays"}},
		"2C": {SeatRef: "2C", Passenger: rtdf.PersonalInfo{Name: "New Occupant"}},
		"2D": {SeatRef: "2D", Passenger: rtdf.PersonalInfo{Name: "Arrives"}},
	})

	changes := DiffScheduleOccupancy(before, after)

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %+v", len(changes), changes)
	}

	bySeat := map[string]SeatChange{}
	for _, change := range changes {
		bySeat[change.SeatRef] = change
	}

	occupied := bySeat["2D"]
	if occupied.Kind != ChangeKindSeatOccupied || occupied.New == nil || occupied.Old != nil {
		t.Fatalf("unexpected occupied change %+v", occupied)
	}
	if occupied.AvailabilityRef != "availability-1" {
		t.Fatalf("expected change addressed to availability-1, got %s", occupied.AvailabilityRef)
	}

	released := bySeat["2B"]
	if released.Kind != ChangeKindSeatReleased || released.Old == nil || released.New != nil {
		t.Fatalf("unexpected released change %+v", released)
	}
	if released.Old.Passenger.Name != "Leaves" {
		t.Fatalf("expected released occupant to carry the old record, got %+v", released.Old)
	}

	replaced := bySeat["2C"]
	if replaced.Kind != ChangeKindSeatReplaced || replaced.Old == nil || replaced.New == nil {
		t.Fatalf("unexpected replaced change %+v", replaced)
	}
	if replaced.Old.Passenger.Name != "Old Occupant" || replaced.New.Passenger.Name != "New Occupant" {
		t.Fatalf("expected old and new occupants, got %+v -> %+v", replaced.Old, replaced.New)
	}
}

func TestDiffScheduleOccupancyNoChanges(t *testing.T) {
	occupants := map[string]rtdf.OccupiedSeat{
		"2A": {SeatRef: "2A", Passenger: rtdf.PersonalInfo{Name: "Stays"}},
	}

	changes := DiffScheduleOccupancy(scheduleWithOccupants(occupants), scheduleWithOccupants(occupants))
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestDiffScheduleOccupancyNilSnapshot(t *testing.T) {
	after := scheduleWithOccupants(map[string]rtdf.OccupiedSeat{
		"2A": {SeatRef: "2A", Passenger: rtdf.PersonalInfo{Name: "Arrives"}},
	})

	changes := DiffScheduleOccupancy(nil, after)

	if len(changes) != 1 || changes[0].Kind != ChangeKindSeatOccupied {
		t.Fatalf("expected a single occupied change, got %+v", changes)
	}
}
