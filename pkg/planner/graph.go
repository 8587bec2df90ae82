package planner

import (
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/railgo/railgo/pkg/util"
)

// StationGraph is a directed graph of stations where each edge carries the
// route identifiers connecting two adjacent stops.
type StationGraph struct {
	Edges map[string]map[string][]string
}

func BuildStationGraph(routes []rtdf.Route) *StationGraph {
	graph := &StationGraph{
		Edges: map[string]map[string][]string{},
	}

	for _, route := range routes {
		for i := 0; i < len(route.Stops)-1; i++ {
			from := route.Stops[i].StationRef
			to := route.Stops[i+1].StationRef

			if graph.Edges[from] == nil {
				graph.Edges[from] = map[string][]string{}
			}

			graph.Edges[from][to] = util.RemoveDuplicateStrings(append(graph.Edges[from][to], route.PrimaryIdentifier), nil)
		}
	}

	return graph
}

func (g *StationGraph) AdjacentRoutes(from string, to string) []string {
	return g.Edges[from][to]
}

func (g *StationGraph) HasStation(station string) bool {
	if len(g.Edges[station]) > 0 {
		return true
	}

	for _, targets := range g.Edges {
		if len(targets[station]) > 0 {
			return true
		}
	}

	return false
}
