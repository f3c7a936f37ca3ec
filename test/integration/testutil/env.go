package testutil

import (
	"fmt"
	"os"
	"testing"
)

// TestEnv wires the integration suite to a running service and its MongoDB.
// The suite is skipped entirely unless RESOURCEHUB_INTEGRATION is set.
type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if os.Getenv("RESOURCEHUB_INTEGRATION") == "" {
		t.Skip("set RESOURCEHUB_INTEGRATION to run integration tests")
	}

	serverPort := getEnv("TEST_SERVER_PORT", "3000")
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
	}
}

func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanListings(t)

	client := NewClient(e.ServerURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	return mongo, client
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanListings(t)
		mongo.Close(t)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
