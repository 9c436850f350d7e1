package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/zippytrip/internal/auth"
	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/booking"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/pubsub"
)

// Flow names used by Workspace.Leave.
const (
	FlowFlights = "flights"
	FlowBuses   = "buses"
)

// Workspace is everything the server keeps for one browser session.
type Workspace struct {
	SID      string
	Client   *auth.Client
	Resolver *Resolver
	Flights  *booking.Flow[catalog.Flight]
	Buses    *booking.Flow[catalog.Bus]

	mu       sync.Mutex
	lastSeen time.Time
}

// Leave discards the drafts of every flow except keep.
func (w *Workspace) Leave(keep string) {
	if keep != FlowFlights {
		w.Flights.Discard()
	}
	if keep != FlowBuses {
		w.Buses.Discard()
	}
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) close() {
	w.Resolver.Close()
	w.Leave("")
}

// ManagerConfig holds the collaborators shared by all workspaces.
type ManagerConfig struct {
	Identity          domain.IdentityProvider
	Preferences       PreferenceFinder
	Bus               pubsub.Bus
	OAuth             *oauth.Registry
	Catalog           *catalog.Catalog
	ConfirmationDelay time.Duration
	IdleTTL           time.Duration
	Logger            *slog.Logger
}

// Manager maps session ids to workspaces.
type Manager struct {
	cfg ManagerConfig
	now func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewManager creates a Manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Manager{cfg: cfg, now: time.Now, workspaces: make(map[string]*Workspace)}
}

// Acquire returns the workspace of sid, creating and starting it on first use.
// token is the session token remembered by the browser, used only when the
// workspace is created.
func (m *Manager) Acquire(ctx context.Context, sid, token string) (*Workspace, error) {
	if sid == "" {
		return nil, fmt.Errorf("acquire workspace: empty session id")
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ws, ok := m.workspaces[sid]; ok {
		ws.touch(now)
		return ws, nil
	}

	client := auth.NewClient(sid, m.cfg.Identity, m.cfg.Bus, m.cfg.OAuth)
	if token != "" {
		client.Hydrate(token)
	}
	logger := m.cfg.Logger.With("sid", sid)
	resolver := NewResolver(client, m.cfg.Preferences, WithLogger(logger))
	if err := resolver.Start(); err != nil {
		resolver.Close()
		return nil, fmt.Errorf("start session resolver: %w", err)
	}

	ws := &Workspace{
		SID:      sid,
		Client:   client,
		Resolver: resolver,
		Flights:  booking.NewFlow(m.cfg.Catalog.Flights, m.cfg.ConfirmationDelay),
		Buses:    booking.NewFlow(m.cfg.Catalog.Buses, m.cfg.ConfirmationDelay),
		lastSeen: now,
	}
	m.workspaces[sid] = ws
	logger.DebugContext(ctx, "Workspace created", "event", "workspace_created")
	return ws, nil
}

// Get returns an existing workspace without creating one.
func (m *Manager) Get(sid string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[sid]
	return ws, ok
}

// Len is the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Sweep tears down workspaces idle for longer than the TTL and returns how
// many were removed.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var idle []*Workspace
	for sid, ws := range m.workspaces {
		if ws.idleSince().Before(cutoff) {
			idle = append(idle, ws)
			delete(m.workspaces, sid)
		}
	}
	m.mu.Unlock()

	for _, ws := range idle {
		ws.close()
		m.cfg.Logger.Debug("Workspace expired", "event", "workspace_expired", "sid", ws.SID)
	}
	return len(idle)
}

// Run sweeps periodically until ctx is canceled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.IdleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.cfg.Logger.Info("Expired idle workspaces", "count", n)
			}
		}
	}
}

// Close tears down every workspace.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.workspaces
	m.workspaces = make(map[string]*Workspace)
	m.mu.Unlock()

	for _, ws := range all {
		ws.close()
	}
}
