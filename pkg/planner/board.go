package planner

import (
	"encoding/json"
	"fmt"

	"github.com/railgo/railgo/pkg/rtdf"
	"golang.org/x/exp/slices"
)

// Connection is one ride between two adjacent stops of a schedule's route,
// with times resolved to absolute seconds on the operating date.
type Connection struct {
	DepartureStation int
	ArrivalStation   int

	DepartureTime int64
	ArrivalTime   int64

	ScheduleRef string
}

// ConnectionBoard is the time-expanded connection list for one date. It is
// immutable once built - a new date means a new board, never an in-place
// mutation.
type ConnectionBoard struct {
	Date string

	Stations    []string
	Connections []Connection

	stationIndex map[string]int
}

// BuildConnectionBoard emits a connection for every adjacent stop pair of
// every schedule active on the date. Connections are sorted by departure time
// ascending; the sort is stable so identical boards always scan identically.
func BuildConnectionBoard(date string, routes []rtdf.Route, schedules []*rtdf.TrainSchedule) (*ConnectionBoard, error) {
	board := &ConnectionBoard{
		Date:         date,
		stationIndex: map[string]int{},
	}

	routesByRef := map[string]*rtdf.Route{}
	for i := range routes {
		routesByRef[routes[i].PrimaryIdentifier] = &routes[i]

		for _, stop := range routes[i].Stops {
			board.internStation(stop.StationRef)
		}
	}

	for _, schedule := range schedules {
		route := routesByRef[schedule.RouteRef]
		if route == nil {
			return nil, fmt.Errorf("%w: schedule %s references missing route %s", rtdf.ErrInconsistentState, schedule.PrimaryIdentifier, schedule.RouteRef)
		}

		for i := 0; i < len(route.Stops)-1; i++ {
			departureStop := route.Stops[i]
			arrivalStop := route.Stops[i+1]

			board.Connections = append(board.Connections, Connection{
				DepartureStation: board.internStation(departureStop.StationRef),
				ArrivalStation:   board.internStation(arrivalStop.StationRef),

				DepartureTime: departureStop.DepartureTime + schedule.OriginDeparture,
				ArrivalTime:   arrivalStop.ArrivalTime + schedule.OriginDeparture,

				ScheduleRef: schedule.PrimaryIdentifier,
			})
		}
	}

	slices.SortStableFunc(board.Connections, func(a Connection, b Connection) int {
		switch {
		case a.DepartureTime < b.DepartureTime:
			return -1
		case a.DepartureTime > b.DepartureTime:
			return 1
		default:
			return 0
		}
	})

	return board, nil
}

func (b *ConnectionBoard) internStation(stationRef string) int {
	if index, exists := b.stationIndex[stationRef]; exists {
		return index
	}

	index := len(b.Stations)
	b.Stations = append(b.Stations, stationRef)
	b.stationIndex[stationRef] = index

	return index
}

// StationIndex resolves a station to its board index, -1 when the station has
// no connections at all on this date. It is a pure read so concurrent queries
// can share one board.
func (b *ConnectionBoard) StationIndex(stationRef string) int {
	if index, exists := b.stationIndex[stationRef]; exists {
		return index
	}

	return -1
}

func (b ConnectionBoard) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalJSON rebuilds the unexported station index eagerly, so a board
// decoded from the cache is immediately safe to query from many goroutines.
func (b *ConnectionBoard) UnmarshalJSON(data []byte) error {
	type connectionBoardAlias ConnectionBoard

	var decoded connectionBoardAlias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*b = ConnectionBoard(decoded)

	b.stationIndex = make(map[string]int, len(b.Stations))
	for index, station := range b.Stations {
		b.stationIndex[station] = index
	}

	return nil
}
