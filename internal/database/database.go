package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/zippytrip/internal/config"
	"github.com/surrealdb/surrealdb.go"
)

// NewDB creates the root SurrealDB connection used by the repositories.
func NewDB(ctx context.Context, cfg config.Provider) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.GetDBURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: cfg.GetDBUser(),
		Password: cfg.GetDBPass(),
	}

	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.GetDBNs(), cfg.GetDBDb()); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.Info("Successfully signed in to SurrealDB", "ns", cfg.GetDBNs(), "db", cfg.GetDBDb())
	return db, nil
}

// Dialer opens short-lived, unauthenticated connections scoped to the
// application namespace and database. Record-access sign-in mutates the
// authentication state of a connection, so identity operations never run on
// the shared root connection.
type Dialer struct {
	url string
	ns  string
	db  string
}

// NewDialer creates a Dialer from the configuration.
func NewDialer(cfg config.Provider) *Dialer {
	return &Dialer{url: cfg.GetDBURL(), ns: cfg.GetDBNs(), db: cfg.GetDBDb()}
}

// Dial opens a connection. Callers must close it.
func (d *Dialer) Dial(ctx context.Context) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, d.url)
	if err != nil {
		return nil, NewDBError("dial", fmt.Errorf("%w: %v", ErrNotConnected, err))
	}
	if err := db.Use(ctx, d.ns, d.db); err != nil {
		db.Close(ctx)
		return nil, NewDBError("use", fmt.Errorf("%w: %v", ErrNotConnected, err))
	}
	return db, nil
}
