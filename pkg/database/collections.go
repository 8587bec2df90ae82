package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createNetworkIndexes()
	createScheduleIndexes()
	createBookingIndexes()
}

func createNetworkIndexes() {
	stationsCollection := GetCollection("stations")
	stationsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stationsCollection.Indexes().CreateMany(context.Background(), stationsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	routesCollection := GetCollection("routes")
	routesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "stops.stationref", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = routesCollection.Indexes().CreateMany(context.Background(), routesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	trainsCollection := GetCollection("trains")
	trainsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeref", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = trainsCollection.Indexes().CreateMany(context.Background(), trainsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createScheduleIndexes() {
	schedulesCollection := GetCollection("train_schedules")
	schedulesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeref", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := schedulesCollection.Indexes().CreateMany(context.Background(), schedulesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createBookingIndexes() {
	ordersCollection := GetCollection("orders")
	ordersIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "transactionref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userref", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := ordersCollection.Indexes().CreateMany(context.Background(), ordersIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	transactionsCollection := GetCollection("transactions")
	transactionsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userref", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = transactionsCollection.Indexes().CreateMany(context.Background(), transactionsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
