// Package app wires the application object graph.
package app

import (
	"context"
	"log/slog"

	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/auth/oauth/google"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/config"
	"github.com/nfrund/zippytrip/internal/database"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/email"
	"github.com/nfrund/zippytrip/internal/pubsub"
	"github.com/nfrund/zippytrip/internal/session"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/surrealdb/surrealdb.go"
)

// Dependencies are the services the HTTP server is built from.
type Dependencies struct {
	Config      config.Provider
	Catalog     *catalog.Catalog
	Preferences domain.PreferenceRepository
	Tickets     domain.TicketRepository
	OAuth       *oauth.Registry
	Manager     *session.Manager
	Mailer      email.Sender
}

// NewInjector registers every service provider. Services are built lazily on
// first invocation.
func NewInjector(cfg config.Provider) do.Injector {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, provideDB)
	do.Provide(i, provideDialer)
	do.Provide(i, provideIdentity)
	do.Provide(i, providePreferences)
	do.Provide(i, provideTickets)
	do.Provide(i, provideBus)
	do.Provide(i, provideOAuth)
	do.Provide(i, provideCatalog)
	do.Provide(i, provideManager)
	do.Provide(i, provideMailer)
	return i
}

// Resolve builds the Dependencies from i.
func Resolve(i do.Injector) (Dependencies, error) {
	var (
		deps Dependencies
		err  error
	)
	if deps.Config, err = do.Invoke[config.Provider](i); err != nil {
		return deps, err
	}
	if deps.Catalog, err = do.Invoke[*catalog.Catalog](i); err != nil {
		return deps, err
	}
	if deps.Preferences, err = do.Invoke[*database.PreferenceStore](i); err != nil {
		return deps, err
	}
	if deps.Tickets, err = do.Invoke[*database.TicketStore](i); err != nil {
		return deps, err
	}
	if deps.OAuth, err = do.Invoke[*oauth.Registry](i); err != nil {
		return deps, err
	}
	if deps.Manager, err = do.Invoke[*session.Manager](i); err != nil {
		return deps, err
	}
	if deps.Mailer, err = do.Invoke[email.Sender](i); err != nil {
		return deps, err
	}
	return deps, nil
}

func provideDB(i do.Injector) (*surrealdb.DB, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return database.NewDB(context.Background(), cfg)
}

func provideDialer(i do.Injector) (*database.Dialer, error) {
	return database.NewDialer(do.MustInvoke[config.Provider](i)), nil
}

func provideIdentity(i do.Injector) (domain.IdentityProvider, error) {
	cfg := do.MustInvoke[config.Provider](i)
	dialer := do.MustInvoke[*database.Dialer](i)
	return database.NewSurrealIdentityStore(dialer, cfg.GetOAuthBridgeSecret()), nil
}

func providePreferences(i do.Injector) (*database.PreferenceStore, error) {
	cfg := do.MustInvoke[config.Provider](i)
	db, err := do.Invoke[*surrealdb.DB](i)
	if err != nil {
		return nil, err
	}
	return database.NewPreferenceStore(db, cfg.GetDBQueryTimeout(), cfg.GetDBExecuteTimeout()), nil
}

func provideTickets(i do.Injector) (*database.TicketStore, error) {
	cfg := do.MustInvoke[config.Provider](i)
	db, err := do.Invoke[*surrealdb.DB](i)
	if err != nil {
		return nil, err
	}
	return database.NewTicketStore(db, cfg.GetDBQueryTimeout()), nil
}

func provideBus(do.Injector) (pubsub.Bus, error) {
	return pubsub.NewWatermillBridge(), nil
}

// provideOAuth registers Google when a client id is configured. A discovery
// failure disables the provider instead of failing startup.
func provideOAuth(i do.Injector) (*oauth.Registry, error) {
	cfg := do.MustInvoke[config.Provider](i)
	registry := oauth.NewRegistry()
	if cfg.GetGoogleClientID() == "" {
		return registry, nil
	}
	p, err := google.New(context.Background(), cfg.GetGoogleClientID(), cfg.GetGoogleClientSecret(), cfg.GetGoogleRedirectURL())
	if err != nil {
		slog.Warn("Google sign-in disabled", "error", err)
		return registry, nil
	}
	registry.Register(p)
	return registry, nil
}

// provideCatalog loads the catalog from the configured directory, or the
// embedded data when none is set.
func provideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[config.Provider](i)
	if dir := cfg.GetCatalogDir(); dir != "" {
		return catalog.Load(afero.NewOsFs(), dir)
	}
	return catalog.Default()
}

func provideManager(i do.Injector) (*session.Manager, error) {
	cfg := do.MustInvoke[config.Provider](i)
	identity, err := do.Invoke[domain.IdentityProvider](i)
	if err != nil {
		return nil, err
	}
	prefs, err := do.Invoke[*database.PreferenceStore](i)
	if err != nil {
		return nil, err
	}
	return session.NewManager(session.ManagerConfig{
		Identity:          identity,
		Preferences:       prefs,
		Bus:               do.MustInvoke[pubsub.Bus](i),
		OAuth:             do.MustInvoke[*oauth.Registry](i),
		Catalog:           do.MustInvoke[*catalog.Catalog](i),
		ConfirmationDelay: cfg.GetConfirmationDelay(),
		IdleTTL:           cfg.GetWorkspaceIdleTTL(),
		Logger:            slog.Default(),
	}), nil
}

func provideMailer(i do.Injector) (email.Sender, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return email.NewSender(cfg.GetEmailProvider(), cfg.GetEmailAPIKey(), cfg.GetEmailSender())
}

// Close releases the long-lived services built by i.
func Close(ctx context.Context, i do.Injector) {
	if m, err := do.Invoke[*session.Manager](i); err == nil {
		m.Close()
	}
	if bus, err := do.Invoke[pubsub.Bus](i); err == nil {
		if err := bus.Close(); err != nil {
			slog.Warn("Failed to close message bus", "error", err)
		}
	}
	if db, err := do.Invoke[*surrealdb.DB](i); err == nil {
		if err := db.Close(ctx); err != nil {
			slog.Warn("Failed to close database connection", "error", err)
		}
	}
}
