package repository

import (
	"github.com/railgo/railgo/pkg/rtdf"
)

type ChangeKind string

const (
	ChangeKindSeatOccupied ChangeKind = "SeatOccupied"
	ChangeKindSeatReleased ChangeKind = "SeatReleased"
	ChangeKindSeatReplaced ChangeKind = "SeatReplaced"
)

// SeatChange is one entry of a schedule change set: a strongly typed old/new
// pair tagged with what happened, so persisting a save never needs runtime
// type inspection.
type SeatChange struct {
	Kind ChangeKind

	Segment         rtdf.SegmentKey
	AvailabilityRef string
	SeatRef         string

	Old *rtdf.OccupiedSeat
	New *rtdf.OccupiedSeat
}

// DiffScheduleOccupancy computes the occupancy delta between the loaded
// snapshot of a schedule and its current in-memory state. Only these deltas
// are persisted on save.
func DiffScheduleOccupancy(before *rtdf.TrainSchedule, after *rtdf.TrainSchedule) []SeatChange {
	var changes []SeatChange

	for segment, afterAvailability := range after.Availability {
		var beforeOccupied map[string]rtdf.OccupiedSeat
		if before != nil && before.Availability[segment] != nil {
			beforeOccupied = before.Availability[segment].Occupied
		}

		for seatRef, afterOccupant := range afterAvailability.Occupied {
			beforeOccupant, existed := beforeOccupied[seatRef]

			if !existed {
				occupant := afterOccupant
				changes = append(changes, SeatChange{
					Kind:            ChangeKindSeatOccupied,
					Segment:         segment,
					AvailabilityRef: afterAvailability.PrimaryIdentifier,
					SeatRef:         seatRef,
					New:             &occupant,
				})
			} else if beforeOccupant != afterOccupant {
				oldOccupant := beforeOccupant
				newOccupant := afterOccupant
				changes = append(changes, SeatChange{
					Kind:            ChangeKindSeatReplaced,
					Segment:         segment,
					AvailabilityRef: afterAvailability.PrimaryIdentifier,
					SeatRef:         seatRef,
					Old:             &oldOccupant,
					New:             &newOccupant,
				})
			}
		}

		for seatRef, beforeOccupant := range beforeOccupied {
			if _, stillOccupied := afterAvailability.Occupied[seatRef]; !stillOccupied {
				occupant := beforeOccupant
				changes = append(changes, SeatChange{
					Kind:            ChangeKindSeatReleased,
					Segment:         segment,
					AvailabilityRef: afterAvailability.PrimaryIdentifier,
					SeatRef:         seatRef,
					Old:             &occupant,
				})
			}
		}
	}

	return changes
}
