package main

import (
	"context"
	"time"

	"resourcehub/internal/config"
	migrations "resourcehub/internal/migrations/mongo"
	"resourcehub/pkg/client"
)

const jobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(jobName)
	log := cfg.Log
	log.Info("Starting Mongo migration job")

	mongoClient, err := client.NewMongoClient(log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	if err := migrations.RunMigration(ctx, mongoClient, cfg.MongoDatabaseName, log); err != nil {
		log.Fatal("Migration failed", "error", err)
	}

	log.Info("Migration completed")
}
