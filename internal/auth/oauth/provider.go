// Package oauth holds the external OAuth providers a user can sign in with.
package oauth

import (
	"context"

	"github.com/nfrund/zippytrip/internal/domain"
)

// Provider defines the contract every external auth provider must implement.
// Implementations return verified identity facts only; account creation and
// sessions are handled by the identity provider.
type Provider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the authorization URL. State and the PKCE challenge
	// are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code and returns a normalized identity.
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*domain.ExternalIdentity, error)
}
