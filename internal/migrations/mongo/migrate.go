package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/internal/listings/repository"
	"resourcehub/internal/migrations/mongo/validators"
	"resourcehub/pkg/logger"
)

// The unique owner index backs the registration duplicate check; the search
// indexes cover the query filters the directory exposes.
var listingIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	},
	{Keys: bson.D{
		{Key: "category", Value: 1},
		{Key: "sub_category", Value: 1},
	}},
	{Keys: bson.D{{Key: "name", Value: 1}}},
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	name := repository.CollectionName
	if err := ensureCollection(ctx, db, name, validators.ListingValidator, log); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", name, err)
	}
	if err := ensureIndexes(ctx, db, name, listingIndexes, log); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name)
	return nil
}
