package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/railgo/railgo/pkg/rtdf"
	"golang.org/x/exp/slices"
)

// ErrNoAvailableSeat is a normal business outcome, not a system fault: the
// requested seat type has no seat free across the whole requested range.
var ErrNoAvailableSeat = errors.New("no seat of the requested type is available for the range")

// Engine answers free-seat counts and performs seat claims against a
// TrainSchedule's occupancy state. It mutates only the aggregate it is handed;
// serializing claims per schedule is the caller's responsibility.
type Engine struct{}

// AvailableSeatsCount reports how many physical seats can serve the
// availability record's exact range, accounting for occupancies of the same
// seats on overlapping ranges.
func (e Engine) AvailableSeatsCount(schedule *rtdf.TrainSchedule, route *rtdf.Route, availabilityID string) (int, error) {
	availability := schedule.AvailabilityByID(availabilityID)
	if availability == nil {
		return 0, fmt.Errorf("%w: schedule %s has no availability record %s", rtdf.ErrInconsistentState, schedule.PrimaryIdentifier, availabilityID)
	}

	seats := schedule.SeatsOfType(availability.SeatTypeRef)
	occupied := schedule.OccupiedForType(availability.SeatTypeRef)

	timelines := buildTimelines(route, seats, occupied)
	counts := countFreeRuns(timelines)

	return availableForRange(counts, availability.FromOrder, availability.ToOrder), nil
}

// ReserveSeat claims one seat of the seat type for the exact verified range,
// preferring seats whose location matches the preference. The claim is written
// as an OccupiedSeat on the range's availability record; claiming a seat that
// already holds a record for the exact same range replaces it.
func (e Engine) ReserveSeat(schedule *rtdf.TrainSchedule, route *rtdf.Route, seatTypeRef string, verifiedRange rtdf.VerifiedStationRange, locationPreference string, passenger rtdf.PersonalInfo) (*rtdf.Seat, error) {
	availability, err := schedule.AvailabilityFor(verifiedRange, seatTypeRef)
	if err != nil {
		return nil, err
	}

	seatType := schedule.SeatType(seatTypeRef)
	if seatType == nil {
		return nil, fmt.Errorf("%w: schedule %s has no seat type %s", rtdf.ErrInconsistentState, schedule.PrimaryIdentifier, seatTypeRef)
	}

	seats := schedule.SeatsOfType(seatTypeRef)
	occupied := schedule.OccupiedForType(seatTypeRef)

	timelines := buildTimelines(route, seats, occupied)

	var candidates []rtdf.Seat
	for _, seat := range seats {
		if timelines[seat.Identifier].freeFor(verifiedRange.FromOrder(), verifiedRange.ToOrder()) {
			candidates = append(candidates, seat)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoAvailableSeat
	}

	chosen := candidates[0]
	if locationPreference != "" {
		if i := slices.IndexFunc(candidates, func(seat rtdf.Seat) bool {
			return seat.Location == locationPreference
		}); i >= 0 {
			chosen = candidates[i]
		}
	}

	availability.Occupy(rtdf.OccupiedSeat{
		ScheduleRef: schedule.PrimaryIdentifier,
		SeatTypeRef: seatTypeRef,
		SeatRef:     chosen.Identifier,

		RangeFrom: verifiedRange.From(),
		RangeTo:   verifiedRange.To(),
		FromOrder: verifiedRange.FromOrder(),
		ToOrder:   verifiedRange.ToOrder(),

		Passenger: passenger,

		CreationDateTime: time.Now(),
	})

	schedule.ModificationDateTime = time.Now()

	return &chosen, nil
}

// FreeSeat removes the occupancy of a seat for the exact verified range.
// Freeing a reservation that does not exist is a no-op.
func (e Engine) FreeSeat(schedule *rtdf.TrainSchedule, seatTypeRef string, verifiedRange rtdf.VerifiedStationRange, seatRef string) error {
	availability, err := schedule.AvailabilityFor(verifiedRange, seatTypeRef)
	if err != nil {
		return err
	}

	availability.Release(seatRef)

	schedule.ModificationDateTime = time.Now()

	return nil
}
