package rtdf

import (
	"fmt"
)

type Route struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	// Ordered by Stop.Order, origin first
	Stops []Stop
}

// Stop is a station's position within a Route. Times are seconds offset from
// the route's nominal midnight.
type Stop struct {
	StationRef string

	Order int

	ArrivalTime   int64
	DepartureTime int64
}

func (r *Route) StationOrder() map[string]int {
	order := map[string]int{}

	for _, stop := range r.Stops {
		order[stop.StationRef] = stop.Order
	}

	return order
}

func (r *Route) StopAt(order int) *Stop {
	for i := range r.Stops {
		if r.Stops[i].Order == order {
			return &r.Stops[i]
		}
	}

	return nil
}

// StationRange is a raw (from, to) station pair as supplied by a caller. It
// carries no guarantee the pair lies on any route.
type StationRange struct {
	From string
	To   string
}

// VerifiedStationRange is a range confirmed to be an ordered sub-path of a
// specific route. The unexported fields mean the only way to obtain one is
// Route.VerifyRange, so inventory code can never be handed an unchecked pair.
type VerifiedStationRange struct {
	from string
	to   string

	fromOrder int
	toOrder   int

	routeRef string
}

func (v VerifiedStationRange) From() string     { return v.from }
func (v VerifiedStationRange) To() string       { return v.to }
func (v VerifiedStationRange) FromOrder() int   { return v.fromOrder }
func (v VerifiedStationRange) ToOrder() int     { return v.toOrder }
func (v VerifiedStationRange) RouteRef() string { return v.routeRef }

// VerifyRange confirms a raw range is an ordered sub-path of this route.
func (r *Route) VerifyRange(sr StationRange) (VerifiedStationRange, error) {
	stationOrder := r.StationOrder()

	fromOrder, fromExists := stationOrder[sr.From]
	toOrder, toExists := stationOrder[sr.To]

	if !fromExists || !toExists {
		return VerifiedStationRange{}, fmt.Errorf("%w: (%s, %s) on route %s", ErrUnknownStation, sr.From, sr.To, r.PrimaryIdentifier)
	}

	if fromOrder >= toOrder {
		return VerifiedStationRange{}, fmt.Errorf("%w: (%s, %s) on route %s", ErrInvalidStationRange, sr.From, sr.To, r.PrimaryIdentifier)
	}

	return VerifiedStationRange{
		from:      sr.From,
		to:        sr.To,
		fromOrder: fromOrder,
		toOrder:   toOrder,
		routeRef:  r.PrimaryIdentifier,
	}, nil
}

// VerifiedRanges returns every ordered station pair on the route.
func (r *Route) VerifiedRanges() []VerifiedStationRange {
	var ranges []VerifiedStationRange

	for i := 0; i < len(r.Stops); i++ {
		for j := i + 1; j < len(r.Stops); j++ {
			ranges = append(ranges, VerifiedStationRange{
				from:      r.Stops[i].StationRef,
				to:        r.Stops[j].StationRef,
				fromOrder: r.Stops[i].Order,
				toOrder:   r.Stops[j].Order,
				routeRef:  r.PrimaryIdentifier,
			})
		}
	}

	return ranges
}
