package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/railgo/railgo/pkg/rtdf"
)

type fakeNetwork struct {
	routes []rtdf.Route
}

func (n *fakeNetwork) GetRoutes(ctx context.Context) ([]rtdf.Route, error) {
	return n.routes, nil
}

func (n *fakeNetwork) GetStations(ctx context.Context) ([]rtdf.Station, error) {
	return nil, nil
}

type fakeScheduleFinder struct {
	schedules []*rtdf.TrainSchedule
}

func (f *fakeScheduleFinder) FindSchedule(ctx context.Context, identifier string) (*rtdf.TrainSchedule, error) {
	for _, schedule := range f.schedules {
		if schedule.PrimaryIdentifier == identifier {
			return schedule, nil
		}
	}

	return nil, fmt.Errorf("no schedule %s", identifier)
}

func (f *fakeScheduleFinder) FindSchedulesByDate(ctx context.Context, date time.Time) ([]*rtdf.TrainSchedule, error) {
	return f.schedules, nil
}

func TestDirectSchedules(t *testing.T) {
	journeyPlanner := NewPlanner(
		&fakeNetwork{routes: interchangeRoutes()},
		&fakeScheduleFinder{schedules: testSchedules()},
	)

	date := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	schedules, err := journeyPlanner.DirectSchedules(context.Background(), date, []rtdf.StationRange{
		{From: "station-1", To: "station-2"},
		{From: "station-2", To: "station-3"},
	})
	if err != nil {
		t.Fatalf("expected direct query to succeed, got %v", err)
	}

	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}
	if schedules[0].PrimaryIdentifier != "schedule-a" || schedules[1].PrimaryIdentifier != "schedule-b" {
		t.Fatalf("unexpected schedules (%s, %s)", schedules[0].PrimaryIdentifier, schedules[1].PrimaryIdentifier)
	}
}

func TestDirectSchedulesUnknownStationsContributeNothing(t *testing.T) {
	journeyPlanner := NewPlanner(
		&fakeNetwork{routes: interchangeRoutes()},
		&fakeScheduleFinder{schedules: testSchedules()},
	)

	schedules, err := journeyPlanner.DirectSchedules(context.Background(), time.Now(), []rtdf.StationRange{
		{From: "station-nowhere", To: "station-2"},
	})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}

	if len(schedules) != 0 {
		t.Fatalf("expected no schedules, got %d", len(schedules))
	}
}

func TestTransferSchedules(t *testing.T) {
	journeyPlanner := NewPlanner(
		&fakeNetwork{routes: interchangeRoutes()},
		&fakeScheduleFinder{schedules: testSchedules()},
	)

	options, err := journeyPlanner.TransferSchedules(context.Background(), time.Now(), []rtdf.StationRange{
		{From: "station-1", To: "station-3"},
	})
	if err != nil {
		t.Fatalf("expected transfer query to succeed, got %v", err)
	}

	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}

	option := options[0]
	if option.FirstScheduleRef != "schedule-a" || option.SecondScheduleRef != "schedule-b" || option.TransferStationRef != "station-2" {
		t.Fatalf("unexpected option %+v", option)
	}
}

func TestTransferSchedulesDeterministicOrder(t *testing.T) {
	journeyPlanner := NewPlanner(
		&fakeNetwork{routes: interchangeRoutes()},
		&fakeScheduleFinder{schedules: testSchedules()},
	)

	pairs := []rtdf.StationRange{
		{From: "station-1", To: "station-3"},
		{From: "station-nowhere", To: "station-3"},
		{From: "station-1", To: "station-3"},
	}

	first, err := journeyPlanner.TransferSchedules(context.Background(), time.Now(), pairs)
	if err != nil {
		t.Fatalf("expected transfer query to succeed, got %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := journeyPlanner.TransferSchedules(context.Background(), time.Now(), pairs)
		if err != nil {
			t.Fatalf("expected transfer query to succeed, got %v", err)
		}

		if len(again) != len(first) {
			t.Fatalf("expected %d options, got %d", len(first), len(again))
		}

		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("expected stable results, got %+v then %+v", first[j], again[j])
			}
		}
	}
}
