package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/email"
)

// Identity is an in-memory domain.IdentityProvider.
type Identity struct {
	mu        sync.Mutex
	passwords map[string]string
	users     map[string]domain.Identity
	tokens    map[string]domain.Identity
	next      int

	// SignOutErr, when set, is returned by SignOut.
	SignOutErr error
	// Down makes every call fail with domain.ErrProviderUnavailable.
	Down bool
}

var _ domain.IdentityProvider = (*Identity)(nil)

func NewIdentity() *Identity {
	return &Identity{
		passwords: map[string]string{},
		users:     map[string]domain.Identity{},
		tokens:    map[string]domain.Identity{},
	}
}

// AddAccount registers a password account and returns a token signed in to it.
func (f *Identity) AddAccount(email, password string) (domain.Identity, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.create(email, domain.ProviderPassword)
	f.passwords[email] = password
	return id, f.issue(id)
}

func (f *Identity) create(email, provider string) domain.Identity {
	if id, ok := f.users[email]; ok {
		return id
	}
	f.next++
	id := domain.Identity{ID: fmt.Sprintf("user:%d", f.next), Email: email, Provider: provider}
	f.users[email] = id
	return id
}

func (f *Identity) issue(id domain.Identity) string {
	f.next++
	token := fmt.Sprintf("token-%d", f.next)
	f.tokens[token] = id
	return token
}

func (f *Identity) SignUp(_ context.Context, c domain.Credentials) (*domain.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Down {
		return nil, domain.ErrProviderUnavailable
	}
	if _, ok := f.users[c.Email]; ok {
		return nil, domain.ErrUserAlreadyExists
	}
	id := f.create(c.Email, domain.ProviderPassword)
	f.passwords[c.Email] = c.Password
	return &domain.AuthSession{Token: f.issue(id), Identity: id}, nil
}

func (f *Identity) SignIn(_ context.Context, c domain.Credentials) (*domain.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Down {
		return nil, domain.ErrProviderUnavailable
	}
	pw, ok := f.passwords[c.Email]
	if !ok || pw != c.Password {
		return nil, domain.ErrInvalidCredentials
	}
	id := f.users[c.Email]
	return &domain.AuthSession{Token: f.issue(id), Identity: id}, nil
}

func (f *Identity) SignInExternal(_ context.Context, ext domain.ExternalIdentity) (*domain.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Down {
		return nil, domain.ErrProviderUnavailable
	}
	id := f.create(ext.Email, ext.Provider)
	return &domain.AuthSession{Token: f.issue(id), Identity: id}, nil
}

func (f *Identity) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Down {
		return nil, domain.ErrProviderUnavailable
	}
	id, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &id, nil
}

func (f *Identity) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SignOutErr != nil {
		return f.SignOutErr
	}
	delete(f.tokens, token)
	return nil
}

// Preferences is an in-memory domain.PreferenceRepository.
type Preferences struct {
	mu      sync.Mutex
	records map[string]domain.Preferences
	lookups int

	// FindErr, when set, is returned by FindPreferences.
	FindErr error
	// SaveErr, when set, is returned by SavePreferences.
	SaveErr error
}

var _ domain.PreferenceRepository = (*Preferences)(nil)

func NewPreferences() *Preferences {
	return &Preferences{records: map[string]domain.Preferences{}}
}

// Onboard stores a minimal record for userID.
func (p *Preferences) Onboard(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[userID] = domain.Preferences{UserID: userID, TravelStyle: "adventure", Budget: "moderate"}
}

// Get returns the stored record of userID.
func (p *Preferences) Get(userID string) (domain.Preferences, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.records[userID]
	return rec, ok
}

// Lookups is the number of FindPreferences calls so far.
func (p *Preferences) Lookups() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookups
}

func (p *Preferences) FindPreferences(_ context.Context, userID string) (*domain.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lookups++
	if p.FindErr != nil {
		return nil, p.FindErr
	}
	rec, ok := p.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (p *Preferences) SavePreferences(_ context.Context, prefs *domain.Preferences) (*domain.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return nil, p.SaveErr
	}
	p.records[prefs.UserID] = *prefs
	saved := *prefs
	return &saved, nil
}

// Tickets is an in-memory domain.TicketRepository.
type Tickets struct {
	mu      sync.Mutex
	tickets []domain.Ticket

	// Err, when set, is returned by ListTickets.
	Err error
}

var _ domain.TicketRepository = (*Tickets)(nil)

// Add stores a ticket for userID.
func (s *Tickets) Add(userID string, kind domain.BookingType, number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append(s.tickets, domain.Ticket{
		ID:            NewTestRecordID("tickets"),
		UserID:        userID,
		BookingType:   kind,
		BookingNumber: number,
		Status:        domain.TicketActive,
	})
}

func (s *Tickets) ListTickets(_ context.Context, userID string) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []domain.Ticket
	for _, t := range s.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Outbox is an email.Sender that keeps every message.
type Outbox struct {
	mu   sync.Mutex
	sent []email.Message
	// Err, when set, is returned by Send and nothing is kept.
	Err error
}

var _ email.Sender = (*Outbox)(nil)

func (o *Outbox) Send(_ context.Context, msg email.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.sent = append(o.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages.
func (o *Outbox) Sent() []email.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]email.Message(nil), o.sent...)
}
