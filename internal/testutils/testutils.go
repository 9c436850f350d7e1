// Package testutils holds in-memory collaborators and wiring helpers shared by
// the HTTP-level tests.
package testutils

import (
	"testing"
	"time"

	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/pubsub"
	"github.com/nfrund/zippytrip/internal/session"
	"github.com/stretchr/testify/require"
)

// Env is a workspace manager over fake collaborators.
type Env struct {
	Identity    *Identity
	Preferences *Preferences
	Tickets     *Tickets
	Catalog     *catalog.Catalog
	OAuth       *oauth.Registry
	Manager     *session.Manager
	Outbox      *Outbox
}

// NewEnv builds an Env. confirmationDelay of zero keeps the production default.
func NewEnv(t *testing.T, confirmationDelay time.Duration) *Env {
	t.Helper()

	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bus.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	env := &Env{
		Identity:    NewIdentity(),
		Preferences: NewPreferences(),
		Tickets:     &Tickets{},
		Catalog:     cat,
		OAuth:       oauth.NewRegistry(),
		Outbox:      &Outbox{},
	}
	env.Manager = session.NewManager(session.ManagerConfig{
		Identity:          env.Identity,
		Preferences:       env.Preferences,
		Bus:               bus,
		OAuth:             env.OAuth,
		Catalog:           cat,
		ConfirmationDelay: confirmationDelay,
		IdleTTL:           time.Minute,
	})
	t.Cleanup(env.Manager.Close)
	return env
}
