package rtdf

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SegmentKey addresses one seat-availability unit: a (StationRange, SeatType)
// pair on a schedule.
type SegmentKey struct {
	From     string
	To       string
	SeatType string
}

type SeatAvailability struct {
	PrimaryIdentifier string `bson:",omitempty"`

	ScheduleRef string `bson:",omitempty"`
	SeatTypeRef string `bson:",omitempty"`

	RangeFrom string `bson:",omitempty"`
	RangeTo   string `bson:",omitempty"`
	FromOrder int
	ToOrder   int

	// Seat identifier -> occupant
	Occupied map[string]OccupiedSeat
}

func (sa *SeatAvailability) SegmentKey() SegmentKey {
	return SegmentKey{From: sa.RangeFrom, To: sa.RangeTo, SeatType: sa.SeatTypeRef}
}

func (sa *SeatAvailability) AvailableCount(capacity int) int {
	return capacity - len(sa.Occupied)
}

// Occupy writes an occupant for a seat. An existing record for the same seat
// and the same exact range is replaced, last writer wins.
func (sa *SeatAvailability) Occupy(occupant OccupiedSeat) {
	if sa.Occupied == nil {
		sa.Occupied = map[string]OccupiedSeat{}
	}

	sa.Occupied[occupant.SeatRef] = occupant
}

// Release removes the occupant for a seat. Releasing a seat that holds no
// reservation is a no-op, never an error.
func (sa *SeatAvailability) Release(seatRef string) {
	delete(sa.Occupied, seatRef)
}

// TrainSchedule is one operation of a Train on a specific date. Its identity
// never changes after materialization, only the nested occupancy state does.
type TrainSchedule struct {
	PrimaryIdentifier string `bson:",omitempty"`

	TrainRef string `bson:",omitempty"`
	RouteRef string `bson:",omitempty"`

	Date time.Time `bson:",omitempty"`

	// Seconds offset of the origin departure from the date's midnight
	OriginDeparture int64

	SeatTypes []SeatType
	Seats     []Seat

	Availability map[SegmentKey]*SeatAvailability `bson:"-"`

	CreationDateTime     time.Time `bson:",omitempty"`
	ModificationDateTime time.Time `bson:",omitempty"`
}

// MaterializeSchedule creates the schedule for a (train, date) with its full
// seat-availability map pre-populated: exactly one SeatAvailability per
// verified (range, seat type) combination, created eagerly rather than on
// first booking.
func MaterializeSchedule(train *Train, route *Route, date time.Time, originDeparture int64) (*TrainSchedule, error) {
	if train.RouteRef != route.PrimaryIdentifier {
		return nil, fmt.Errorf("%w: train %s does not run route %s", ErrInconsistentState, train.PrimaryIdentifier, route.PrimaryIdentifier)
	}

	for _, seatType := range train.SeatTypes {
		if seatCount := len(train.SeatsOfType(seatType.Name)); seatCount > seatType.Capacity {
			return nil, fmt.Errorf("%w: train %s carries %d %s seats over a capacity of %d", ErrInconsistentState, train.PrimaryIdentifier, seatCount, seatType.Name, seatType.Capacity)
		}
	}

	schedule := &TrainSchedule{
		PrimaryIdentifier: uuid.New().String(),

		TrainRef: train.PrimaryIdentifier,
		RouteRef: route.PrimaryIdentifier,

		Date:            date,
		OriginDeparture: originDeparture,

		SeatTypes: train.SeatTypes,
		Seats:     train.Seats,

		Availability: map[SegmentKey]*SeatAvailability{},

		CreationDateTime:     time.Now(),
		ModificationDateTime: time.Now(),
	}

	for _, verifiedRange := range route.VerifiedRanges() {
		for _, seatType := range train.SeatTypes {
			availability := &SeatAvailability{
				PrimaryIdentifier: uuid.New().String(),

				ScheduleRef: schedule.PrimaryIdentifier,
				SeatTypeRef: seatType.Name,

				RangeFrom: verifiedRange.From(),
				RangeTo:   verifiedRange.To(),
				FromOrder: verifiedRange.FromOrder(),
				ToOrder:   verifiedRange.ToOrder(),

				Occupied: map[string]OccupiedSeat{},
			}

			schedule.Availability[availability.SegmentKey()] = availability
		}
	}

	return schedule, nil
}

func (ts *TrainSchedule) SeatType(name string) *SeatType {
	for i := range ts.SeatTypes {
		if ts.SeatTypes[i].Name == name {
			return &ts.SeatTypes[i]
		}
	}

	return nil
}

func (ts *TrainSchedule) SeatsOfType(name string) []Seat {
	var seats []Seat

	for _, seat := range ts.Seats {
		if seat.SeatTypeRef == name {
			seats = append(seats, seat)
		}
	}

	return seats
}

func (ts *TrainSchedule) AvailabilityFor(verifiedRange VerifiedStationRange, seatType string) (*SeatAvailability, error) {
	availability := ts.Availability[SegmentKey{From: verifiedRange.From(), To: verifiedRange.To(), SeatType: seatType}]

	if availability == nil {
		return nil, fmt.Errorf("%w: schedule %s has no availability record for (%s, %s, %s)", ErrInconsistentState, ts.PrimaryIdentifier, verifiedRange.From(), verifiedRange.To(), seatType)
	}

	return availability, nil
}

func (ts *TrainSchedule) AvailabilityByID(identifier string) *SeatAvailability {
	for _, availability := range ts.Availability {
		if availability.PrimaryIdentifier == identifier {
			return availability
		}
	}

	return nil
}

// OccupiedForType gathers every occupied-seat record of a seat type across all
// ranges of the schedule.
func (ts *TrainSchedule) OccupiedForType(seatType string) []OccupiedSeat {
	var occupied []OccupiedSeat

	for _, availability := range ts.Availability {
		if availability.SeatTypeRef != seatType {
			continue
		}

		for _, occupant := range availability.Occupied {
			occupied = append(occupied, occupant)
		}
	}

	return occupied
}
