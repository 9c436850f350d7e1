package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

const (
	accessAccount = "account"
	accessOAuth   = "oauth"
)

// SurrealIdentityStore implements domain.IdentityProvider on SurrealDB record
// access. Each call runs on its own connection from the Dialer.
type SurrealIdentityStore struct {
	dialer       *Dialer
	bridgeSecret string
}

// NewSurrealIdentityStore creates a new SurrealIdentityStore.
func NewSurrealIdentityStore(dialer *Dialer, bridgeSecret string) *SurrealIdentityStore {
	return &SurrealIdentityStore{dialer: dialer, bridgeSecret: bridgeSecret}
}

var _ domain.IdentityProvider = (*SurrealIdentityStore)(nil)

// withConn dials, runs fn and closes the connection. Dial failures are
// reported as domain.ErrProviderUnavailable.
func (s *SurrealIdentityStore) withConn(ctx context.Context, fn func(db *surrealdb.DB) error) error {
	db, err := s.dialer.Dial(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Identity provider unreachable", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer db.Close(context.WithoutCancel(ctx))
	return fn(db)
}

func (s *SurrealIdentityStore) SignUp(ctx context.Context, creds domain.Credentials) (*domain.AuthSession, error) {
	var session *domain.AuthSession
	err := s.withConn(ctx, func(db *surrealdb.DB) error {
		token, err := db.SignUp(ctx, map[string]any{
			"ns":       s.dialer.ns,
			"db":       s.dialer.db,
			"ac":       accessAccount,
			"email":    creds.Email,
			"password": creds.Password,
		})
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				return domain.ErrUserAlreadyExists
			}
			return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		session, err = s.sessionFor(ctx, db, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Successfully signed up user", "user_id", session.Identity.ID)
	return session, nil
}

// SignIn checks the credentials. Remember is passed through to the access
// method as $remember.
func (s *SurrealIdentityStore) SignIn(ctx context.Context, creds domain.Credentials) (*domain.AuthSession, error) {
	var session *domain.AuthSession
	err := s.withConn(ctx, func(db *surrealdb.DB) error {
		token, err := db.SignIn(ctx, map[string]any{
			"ns":       s.dialer.ns,
			"db":       s.dialer.db,
			"ac":       accessAccount,
			"email":    creds.Email,
			"password": creds.Password,
			"remember": creds.Remember,
		})
		if err != nil {
			slog.DebugContext(ctx, "Record sign-in rejected", "error", err)
			return domain.ErrInvalidCredentials
		}
		session, err = s.sessionFor(ctx, db, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Successfully signed in user", "user_id", session.Identity.ID)
	return session, nil
}

// SignInExternal finds or creates the account of a verified OAuth identity
// and issues a session for it.
func (s *SurrealIdentityStore) SignInExternal(ctx context.Context, ext domain.ExternalIdentity) (*domain.AuthSession, error) {
	if ext.Email == "" || ext.Subject == "" {
		return nil, fmt.Errorf("%w: external identity without email or subject", domain.ErrInvalidCredentials)
	}
	var session *domain.AuthSession
	err := s.withConn(ctx, func(db *surrealdb.DB) error {
		token, err := db.SignIn(ctx, map[string]any{
			"ns":       s.dialer.ns,
			"db":       s.dialer.db,
			"ac":       accessOAuth,
			"bridge":   s.bridgeSecret,
			"email":    ext.Email,
			"subject":  ext.Subject,
			"provider": ext.Provider,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		session, err = s.sessionFor(ctx, db, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Successfully signed in external user", "user_id", session.Identity.ID, "provider", ext.Provider)
	return session, nil
}

// Authenticate validates a session token and returns the associated identity.
func (s *SurrealIdentityStore) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	var identity *domain.Identity
	err := s.withConn(ctx, func(db *surrealdb.DB) error {
		session, err := s.sessionFor(ctx, db, token)
		if err != nil {
			return err
		}
		identity = &session.Identity
		return nil
	})
	return identity, err
}

// SignOut invalidates the session held by token. A token that no longer
// authenticates is already signed out.
func (s *SurrealIdentityStore) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.withConn(ctx, func(db *surrealdb.DB) error {
		if err := db.Authenticate(ctx, token); err != nil {
			return nil
		}
		if err := db.Invalidate(ctx); err != nil {
			return fmt.Errorf("%w: invalidate: %v", domain.ErrProviderUnavailable, err)
		}
		return nil
	})
}

// sessionFor authenticates db with token and loads the record behind it.
func (s *SurrealIdentityStore) sessionFor(ctx context.Context, db *surrealdb.DB, token string) (*domain.AuthSession, error) {
	if err := db.Authenticate(ctx, token); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := QueryOne[domain.User](ctx, db, "SELECT * FROM $auth", nil)
	if err != nil {
		var dbErr *DBError
		if errors.As(err, &dbErr) && errors.Is(dbErr, ErrNotConnected) {
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}

	identity := user.Identity()
	if identity == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.AuthSession{Token: token, Identity: *identity}, nil
}
