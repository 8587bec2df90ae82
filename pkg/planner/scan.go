package planner

import (
	"math"
)

// MinTransferSeconds is the minimum dwell required at an interchange station
// before boarding the next schedule.
const MinTransferSeconds int64 = 600

const unreachable int64 = math.MaxInt64

type directLabel struct {
	previousIndex int
	scheduleRef   string
}

type transferLabel struct {
	previousIndex int

	// Schedule of the connection that produced this label
	scheduleRef string

	// First schedule used on the path, empty while no transfer has happened
	firstScheduleRef string

	// Board index of the interchange station, -1 while no transfer has happened
	transferIndex int
}

type scanState struct {
	level0 []int64
	level1 []int64

	pred0 []directLabel
	pred1 []transferLabel
}

// scan runs the two-level connection scan from one origin: level0 tracks
// direct-only earliest arrivals, level1 earliest arrivals using at most one
// transfer. A single pass over the departure-time-ordered connections relaxes
// both levels.
func (b *ConnectionBoard) scan(originIndex int, departAfter int64) scanState {
	stationCount := len(b.Stations)

	state := scanState{
		level0: make([]int64, stationCount),
		level1: make([]int64, stationCount),
		pred0:  make([]directLabel, stationCount),
		pred1:  make([]transferLabel, stationCount),
	}

	for i := 0; i < stationCount; i++ {
		state.level0[i] = unreachable
		state.level1[i] = unreachable
		state.pred0[i] = directLabel{previousIndex: -1}
		state.pred1[i] = transferLabel{previousIndex: -1, transferIndex: -1}
	}

	state.level0[originIndex] = departAfter
	state.level1[originIndex] = departAfter

	for _, conn := range b.Connections {
		dep := conn.DepartureStation
		arr := conn.ArrivalStation

		// Direct relaxation
		if state.level0[dep] != unreachable && state.level0[dep] <= conn.DepartureTime && conn.ArrivalTime < state.level0[arr] {
			state.level0[arr] = conn.ArrivalTime
			state.pred0[arr] = directLabel{previousIndex: dep, scheduleRef: conn.ScheduleRef}

			// An arrival reachable directly is also reachable with at most one
			// transfer
			if state.level0[arr] < state.level1[arr] {
				state.level1[arr] = state.level0[arr]
				state.pred1[arr] = transferLabel{
					previousIndex: dep,
					scheduleRef:   conn.ScheduleRef,
					transferIndex: -1,
				}
			}
		}

		// Transfer relaxation
		if state.level1[dep] == unreachable {
			continue
		}

		label := state.pred1[dep]

		if label.transferIndex >= 0 {
			// The one allowed transfer already happened - the scan may only
			// stay on the same schedule
			if label.scheduleRef == conn.ScheduleRef && state.level1[dep] <= conn.DepartureTime && conn.ArrivalTime < state.level1[arr] {
				state.level1[arr] = conn.ArrivalTime
				state.pred1[arr] = transferLabel{
					previousIndex:    dep,
					scheduleRef:      conn.ScheduleRef,
					firstScheduleRef: label.firstScheduleRef,
					transferIndex:    label.transferIndex,
				}
			}

			continue
		}

		// Continuing the first schedule needs no interchange buffer
		if label.scheduleRef == conn.ScheduleRef {
			continue
		}

		if state.level1[dep]+MinTransferSeconds <= conn.DepartureTime && conn.ArrivalTime < state.level1[arr] {
			state.level1[arr] = conn.ArrivalTime
			state.pred1[arr] = transferLabel{
				previousIndex:    dep,
				scheduleRef:      conn.ScheduleRef,
				firstScheduleRef: label.scheduleRef,
				transferIndex:    dep,
			}
		}
	}

	return state
}

// directScheduleRef reconstructs the single schedule of a direct journey by
// following the previous-index links. Chains that mix schedules are discarded.
func (s *scanState) directScheduleRef(originIndex int, destinationIndex int) string {
	if s.level0[destinationIndex] == unreachable {
		return ""
	}

	var scheduleRef string

	index := destinationIndex
	for index != originIndex {
		label := s.pred0[index]
		if label.previousIndex < 0 {
			return ""
		}

		if scheduleRef == "" {
			scheduleRef = label.scheduleRef
		} else if scheduleRef != label.scheduleRef {
			return ""
		}

		index = label.previousIndex
	}

	return scheduleRef
}

// transferJourney reconstructs a one-transfer journey ending at the
// destination. Anything other than exactly two distinct schedules with a
// resolvable interchange station is rejected here, not approximated.
func (s *scanState) transferJourney(originIndex int, destinationIndex int) (firstScheduleRef string, secondScheduleRef string, transferIndex int, ok bool) {
	if s.level1[destinationIndex] == unreachable {
		return "", "", -1, false
	}

	label := s.pred1[destinationIndex]

	if label.transferIndex < 0 || label.firstScheduleRef == "" {
		return "", "", -1, false
	}

	// The leg up to the interchange must itself be a clean single-schedule
	// chain
	firstScheduleRef = s.directScheduleRef(originIndex, label.transferIndex)
	if firstScheduleRef == "" || firstScheduleRef != label.firstScheduleRef {
		return "", "", -1, false
	}

	if firstScheduleRef == label.scheduleRef {
		return "", "", -1, false
	}

	return firstScheduleRef, label.scheduleRef, label.transferIndex, true
}
