package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/surrealdb/surrealdb.go"
)

//go:embed schema.surql
var schema string

// Schema returns the SurrealQL schema definition.
func Schema() string { return schema }

// ApplySchema defines the tables, indexes and access methods. Every statement
// uses OVERWRITE, so applying it repeatedly is safe. bridgeSecret is the value
// the server presents when signing in verified OAuth identities.
func ApplySchema(ctx context.Context, db *surrealdb.DB, bridgeSecret string) error {
	if bridgeSecret == "" {
		return NewDBError("apply schema", fmt.Errorf("%w: empty bridge secret", ErrInvalidInput))
	}
	if err := Execute(ctx, db, schema, map[string]any{"bridge_secret": bridgeSecret}); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	slog.InfoContext(ctx, "Database schema applied")
	return nil
}
