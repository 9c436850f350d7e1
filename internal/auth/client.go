// Package auth is the per-browser-session client of the identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/pubsub"
)

// ChangeFunc receives the identity of a changed session, nil when signed out.
type ChangeFunc func(ctx context.Context, identity *domain.Identity)

// Client holds the session of one browser session and announces every change
// on that session's topic.
type Client struct {
	sid       string
	provider  domain.IdentityProvider
	bus       pubsub.Bus
	providers *oauth.Registry
	topic     pubsub.Event[SessionChanged]

	mu    sync.Mutex
	token string
	// identity is nil until the token has been checked with the provider.
	identity *domain.Identity
}

// NewClient creates a client for browser session sid. providers may be nil
// when no OAuth provider is configured.
func NewClient(sid string, provider domain.IdentityProvider, bus pubsub.Bus, providers *oauth.Registry) *Client {
	if providers == nil {
		providers = oauth.NewRegistry()
	}
	return &Client{
		sid:       sid,
		provider:  provider,
		bus:       bus,
		providers: providers,
		topic:     SessionTopic(sid),
	}
}

// SID returns the browser session this client belongs to.
func (c *Client) SID() string { return c.sid }

// Hydrate seeds the client with a token carried over from a cookie. The token
// is checked lazily by CurrentSession.
func (c *Client) Hydrate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == c.token {
		return
	}
	c.token = token
	c.identity = nil
}

// Token returns the current session token, empty when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// CurrentSession returns the active session, or nil when signed out. An
// expired or revoked token is dropped.
func (c *Client) CurrentSession(ctx context.Context) (*domain.AuthSession, error) {
	c.mu.Lock()
	token, identity := c.token, c.identity
	c.mu.Unlock()

	if token == "" {
		return nil, nil
	}
	if identity != nil {
		return &domain.AuthSession{Token: token, Identity: *identity}, nil
	}

	identity, err := c.provider.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.mu.Lock()
			if c.token == token {
				c.token = ""
			}
			c.mu.Unlock()
			return nil, nil
		}
		return nil, fmt.Errorf("current session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != token {
		// Signed in or out while the token was being checked.
		if c.identity == nil {
			return nil, nil
		}
		return &domain.AuthSession{Token: c.token, Identity: *c.identity}, nil
	}
	c.identity = identity
	return &domain.AuthSession{Token: token, Identity: *identity}, nil
}

// OnSessionChange subscribes fn to session changes. The returned function
// unsubscribes; calling it more than once is harmless.
func (c *Client) OnSessionChange(fn ChangeFunc) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	err := pubsub.Subscribe(ctx, c.bus, c.topic, func(ctx context.Context, ev SessionChanged) error {
		fn(ctx, ev.Identity)
		return nil
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe to %s: %w", c.topic.Name(), err)
	}
	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

// SignInWithPassword signs in with email and password. remember is handed to
// the provider unchanged.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string, remember bool) (*domain.AuthSession, error) {
	session, err := c.provider.SignIn(ctx, domain.Credentials{Email: email, Password: password, Remember: remember})
	if err != nil {
		return nil, &domain.AuthError{Op: "sign_in", Err: err}
	}
	c.setSession(ctx, session, SignedIn)
	return session, nil
}

// SignUp creates an account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	session, err := c.provider.SignUp(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, &domain.AuthError{Op: "sign_up", Err: err}
	}
	c.setSession(ctx, session, SignedIn)
	return session, nil
}

// SignInWithOAuth returns the URL to send the browser to for providerName.
func (c *Client) SignInWithOAuth(providerName, state, codeChallenge string) (string, error) {
	p, err := c.providers.Get(providerName)
	if err != nil {
		return "", &domain.AuthError{Op: "oauth", Err: err}
	}
	return p.AuthCodeURL(state, codeChallenge), nil
}

// ExchangeOAuth completes an OAuth login and signs the identity in.
func (c *Client) ExchangeOAuth(ctx context.Context, providerName, code, codeVerifier string) (*domain.AuthSession, error) {
	p, err := c.providers.Get(providerName)
	if err != nil {
		return nil, &domain.AuthError{Op: "oauth", Err: err}
	}
	ext, err := p.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		return nil, &domain.AuthError{Op: "oauth", Err: fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)}
	}
	session, err := c.provider.SignInExternal(ctx, *ext)
	if err != nil {
		return nil, &domain.AuthError{Op: "oauth", Err: err}
	}
	c.setSession(ctx, session, SignedIn)
	return session, nil
}

// SignOut ends the session. The local session is cleared even when the
// provider fails, in which case a *domain.SignOutError is returned.
func (c *Client) SignOut(ctx context.Context) error {
	token := c.Token()
	c.setSession(ctx, nil, SignedOut)

	if token == "" {
		return nil
	}
	if err := c.provider.SignOut(ctx, token); err != nil {
		return &domain.SignOutError{Err: err}
	}
	return nil
}

// NotifyUserUpdated announces that data derived from the current user changed,
// so observers resolve the session again.
func (c *Client) NotifyUserUpdated(ctx context.Context) error {
	session, err := c.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNoSession
	}
	identity := session.Identity
	return c.publish(ctx, SessionChanged{Kind: UserUpdated, Identity: &identity})
}

func (c *Client) setSession(ctx context.Context, session *domain.AuthSession, kind ChangeKind) {
	var identity *domain.Identity
	c.mu.Lock()
	if session == nil {
		c.token, c.identity = "", nil
	} else {
		id := session.Identity
		c.token, c.identity = session.Token, &id
		identity = &id
	}
	c.mu.Unlock()

	if err := c.publish(ctx, SessionChanged{Kind: kind, Identity: identity}); err != nil {
		slog.WarnContext(ctx, "Failed to publish session change", "sid", c.sid, "kind", kind, "error", err)
	}
}

func (c *Client) publish(ctx context.Context, ev SessionChanged) error {
	userID := ""
	if ev.Identity != nil {
		userID = ev.Identity.ID
	}
	return pubsub.Publish(ctx, c.bus, c.topic, userID, ev)
}
