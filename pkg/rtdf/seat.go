package rtdf

import "time"

type SeatType struct {
	Name        string `bson:",omitempty"`
	DisplayName string `bson:",omitempty"`

	Capacity  int
	UnitPrice int64
}

// Seat is a physical seat. Its identifier is stable across the whole train,
// not per schedule.
type Seat struct {
	Identifier string `bson:",omitempty"`

	Carriage int
	Row      int
	Location string `bson:",omitempty"`

	SeatTypeRef string `bson:",omitempty"`
}

type PersonalInfo struct {
	Name           string `bson:",omitempty"`
	DocumentNumber string `bson:",omitempty"`
	PhoneNumber    string `bson:",omitempty"`
}

// OccupiedSeat binds a schedule + seat type + seat to a passenger for exactly
// one station range. Within a SeatAvailability it is keyed by the seat
// identifier.
type OccupiedSeat struct {
	ScheduleRef string `bson:",omitempty"`
	SeatTypeRef string `bson:",omitempty"`
	SeatRef     string `bson:",omitempty"`

	RangeFrom string `bson:",omitempty"`
	RangeTo   string `bson:",omitempty"`
	FromOrder int
	ToOrder   int

	Passenger PersonalInfo

	CreationDateTime time.Time `bson:",omitempty"`
}

type Train struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name     string `bson:",omitempty"`
	RouteRef string `bson:",omitempty"`

	SeatTypes []SeatType
	Seats     []Seat
}

func (t *Train) SeatType(name string) *SeatType {
	for i := range t.SeatTypes {
		if t.SeatTypes[i].Name == name {
			return &t.SeatTypes[i]
		}
	}

	return nil
}

func (t *Train) SeatsOfType(name string) []Seat {
	var seats []Seat

	for _, seat := range t.Seats {
		if seat.SeatTypeRef == name {
			seats = append(seats, seat)
		}
	}

	return seats
}
