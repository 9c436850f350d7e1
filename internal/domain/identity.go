package domain

import "context"

// ProviderPassword marks identities that signed in with email and password.
const ProviderPassword = "password"

// Identity is an opaque reference to the signed-in principal. A nil *Identity
// means the session is anonymous.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

// Credentials carries a password sign-in or sign-up request. Remember is
// forwarded verbatim to the provider; the server attaches no meaning to it.
type Credentials struct {
	Email    string
	Password string
	Remember bool
}

// ExternalIdentity is the verified result of an OAuth login.
type ExternalIdentity struct {
	Provider      string
	Subject       string
	Email         string
	EmailVerified bool
}

// AuthSession is a provider-issued session token and the identity it belongs to.
type AuthSession struct {
	Token    string
	Identity Identity
}

// IdentityProvider is the external identity collaborator. It issues, checks and
// revokes session tokens; the application never stores credentials itself.
type IdentityProvider interface {
	SignUp(ctx context.Context, creds Credentials) (*AuthSession, error)
	SignIn(ctx context.Context, creds Credentials) (*AuthSession, error)
	SignInExternal(ctx context.Context, ext ExternalIdentity) (*AuthSession, error)
	// Authenticate resolves a token to its identity. An expired or unknown
	// token yields ErrInvalidCredentials.
	Authenticate(ctx context.Context, token string) (*Identity, error)
	SignOut(ctx context.Context, token string) error
}
