package database

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/zippytrip/internal/config"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
)

const testBridgeSecret = "test-bridge-secret"

// TestMain loads the test-specific environment variables from `.env.test`.
func TestMain(m *testing.M) {
	if err := godotenv.Load("../../.env.test"); err != nil {
		log.Println("Warning: .env.test file not found, relying on environment variables.")
	}
	os.Exit(m.Run())
}

// setupTestDB connects to the test database, applies the schema and returns a
// cleanup function. Integration tests are skipped without SURREAL_URL.
func setupTestDB(t *testing.T) (*surrealdb.DB, *config.Config, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("SURREAL_URL") == "" {
		t.Skip("SURREAL_URL not set; skipping integration test")
	}

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx := context.Background()
	db, err := NewDB(ctx, cfg)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, ApplySchema(ctx, db, testBridgeSecret))

	return db, cfg, func() {
		_, _ = surrealdb.Query[any](context.Background(), db, "DELETE user; DELETE user_preferences; DELETE tickets;", nil)
		db.Close(context.Background())
	}
}
