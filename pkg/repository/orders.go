package repository

import (
	"context"
	"fmt"

	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/rtdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) FindOrder(ctx context.Context, identifier string) (*rtdf.Order, error) {
	ordersCollection := database.GetCollection("orders")

	var order *rtdf.Order
	err := ordersCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&order)
	if err != nil {
		return nil, fmt.Errorf("finding order %s: %w", identifier, err)
	}

	return order, nil
}

func (r *OrderRepository) FindOrdersByTransaction(ctx context.Context, transactionRef string) ([]*rtdf.Order, error) {
	ordersCollection := database.GetCollection("orders")

	cursor, err := ordersCollection.Find(ctx, bson.M{"transactionref": transactionRef})
	if err != nil {
		return nil, err
	}

	var orders []*rtdf.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) SaveOrder(ctx context.Context, order *rtdf.Order) error {
	ordersCollection := database.GetCollection("orders")

	opts := options.Replace().SetUpsert(true)
	_, err := ordersCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": order.PrimaryIdentifier}, order, opts)

	return err
}
