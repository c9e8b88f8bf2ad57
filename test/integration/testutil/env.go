package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

type TestEnv struct {
	MongoURI          string
	DatabaseName      string
	ServerURL         string
	RazorpayKeySecret string
	AdminEmail        string
	AdminPassword     string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", "5000")

	return &TestEnv{
		MongoURI:          getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName:      getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:         getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
		RazorpayKeySecret: os.Getenv("TEST_RAZORPAY_KEY_SECRET"),
		AdminEmail:        os.Getenv("TEST_ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("TEST_ADMIN_PASSWORD"),
	}
}

// Setup connects to the database the server under test uses and waits for
// the server to report healthy.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	client := NewClient(e.ServerURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	return mongo, client
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
