package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/internal/listings/repository"
)

const (
	DefaultMongoURI           = "mongodb://localhost:27017"
	DefaultDatabaseName       = "community_db_test"
	ConnectionTimeout         = 10 * time.Second
	DefaultHealthCheckTimeout = 30 * time.Second
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoHelper) CleanListings(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if _, err := m.Database.Collection(repository.CollectionName).DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("failed to clean listings collection: %v", err)
	}
}

func (m *MongoHelper) CountListings(t *testing.T) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	count, err := m.Database.Collection(repository.CollectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count listings: %v", err)
	}
	return count
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("failed to disconnect from MongoDB: %v", err)
	}
}
