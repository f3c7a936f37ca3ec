package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "resourcehub/pkg/errors"
	"resourcehub/pkg/logger"
)

// NewMongoClient dials MongoDB and verifies the connection. Failures surface
// as a typed unavailable error so the caller decides whether to abort startup.
func NewMongoClient(log *logger.Logger, mongoURI string, connTimeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, apperrors.Wrap(
			fmt.Errorf("connect to %s: %w", mongoURI, err),
			apperrors.CodeUnavailable, "MongoDB is unreachable", http.StatusServiceUnavailable,
		)
	}

	if err := mc.Ping(ctx, nil); err != nil {
		return nil, apperrors.Wrap(
			fmt.Errorf("ping: %w", err),
			apperrors.CodeUnavailable, "MongoDB is unreachable", http.StatusServiceUnavailable,
		)
	}

	log.Info("Successfully connected to MongoDB")
	return mc, nil
}
