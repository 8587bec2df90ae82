package planner

import "testing"

func TestStationGraph(t *testing.T) {
	graph := BuildStationGraph(interchangeRoutes())

	adjacent := graph.AdjacentRoutes("station-1", "station-2")
	if len(adjacent) != 1 || adjacent[0] != "route-a" {
		t.Fatalf("unexpected adjacent routes %v", adjacent)
	}

	if len(graph.AdjacentRoutes("station-1", "station-3")) != 0 {
		t.Fatalf("expected no adjacency across the interchange")
	}

	if !graph.HasStation("station-3") {
		t.Fatalf("expected terminal station to be present")
	}
	if graph.HasStation("station-nowhere") {
		t.Fatalf("expected unknown station to be absent")
	}
}
