package repository

import (
	"context"
	"fmt"

	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/rtdf"
	"go.mongodb.org/mongo-driver/bson"
)

// NetworkRepository serves the route/station snapshot the planner and booking
// sides read from. Data is returned whole - this layer never merges partial
// results from multiple calls.
type NetworkRepository struct{}

func NewNetworkRepository() *NetworkRepository {
	return &NetworkRepository{}
}

func (r *NetworkRepository) GetRoutes(ctx context.Context) ([]rtdf.Route, error) {
	routesCollection := database.GetCollection("routes")

	cursor, err := routesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var routes []rtdf.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *NetworkRepository) GetRoute(ctx context.Context, identifier string) (*rtdf.Route, error) {
	routesCollection := database.GetCollection("routes")

	var route *rtdf.Route
	err := routesCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&route)
	if err != nil {
		return nil, fmt.Errorf("%w: route %s could not be resolved: %s", rtdf.ErrInconsistentState, identifier, err)
	}

	return route, nil
}

func (r *NetworkRepository) GetStations(ctx context.Context) ([]rtdf.Station, error) {
	stationsCollection := database.GetCollection("stations")

	cursor, err := stationsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var stations []rtdf.Station
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *NetworkRepository) GetTrain(ctx context.Context, identifier string) (*rtdf.Train, error) {
	trainsCollection := database.GetCollection("trains")

	var train *rtdf.Train
	err := trainsCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&train)
	if err != nil {
		return nil, fmt.Errorf("%w: train %s could not be resolved: %s", rtdf.ErrInconsistentState, identifier, err)
	}

	return train, nil
}
