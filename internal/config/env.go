package config

import "time"

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort = "PORT"

	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRPS   = "RATE_LIMIT_RPS"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAssistantURL     = "ASSISTANT_URL"
	EnvAssistantAPIKey  = "ASSISTANT_IAM_APIKEY"
	EnvAssistantID      = "ASSISTANT_ID"
	EnvAssistantTimeout = "ASSISTANT_TIMEOUT"

	EnvAWSRegion           = "AWS_REGION"
	EnvVisionMinConfidence = "VISION_MIN_CONFIDENCE"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvJWTSecret  = "JWT_SECRET"
	EnvTokenTTL   = "TOKEN_TTL"
	EnvBcryptCost = "BCRYPT_COST"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "community_db"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "3000"

	DefaultLogLevel = "info"

	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 8 * 1024 * 1024 // room for uploaded photos

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAssistantTimeout = 10 * time.Second

	// Confidence required on a "supplies" entity before we cross-reference
	// the listing collection.
	DefaultSuppliesConfidence = 0.25

	DefaultAWSRegion           = "us-east-1"
	DefaultVisionMinConfidence = 75.0

	DefaultKafkaTopic = "listing-events"

	DefaultTokenTTL   = 24 * time.Hour
	DefaultBcryptCost = 12

	// Mongo per-operation timeouts used by the listing repository.
	DefaultMongoReadTimeout  = 5 * time.Second
	DefaultMongoWriteTimeout = 5 * time.Second
)
