package repository

import (
	"context"
	"fmt"

	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/rtdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) FindTransaction(ctx context.Context, identifier string) (*rtdf.Transaction, error) {
	transactionsCollection := database.GetCollection("transactions")

	var transaction *rtdf.Transaction
	err := transactionsCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&transaction)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", identifier, err)
	}

	return transaction, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, transaction *rtdf.Transaction) error {
	transactionsCollection := database.GetCollection("transactions")

	opts := options.Replace().SetUpsert(true)
	_, err := transactionsCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": transaction.PrimaryIdentifier}, transaction, opts)

	return err
}

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindUser(ctx context.Context, identifier string) (*rtdf.User, error) {
	usersCollection := database.GetCollection("users")

	var user *rtdf.User
	err := usersCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", identifier, err)
	}

	return user, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user *rtdf.User) error {
	usersCollection := database.GetCollection("users")

	opts := options.Replace().SetUpsert(true)
	_, err := usersCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": user.PrimaryIdentifier}, user, opts)

	return err
}
