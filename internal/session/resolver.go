// Package session resolves who is signed in for a browser session and whether
// they have finished onboarding.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/zippytrip/internal/auth"
	"github.com/nfrund/zippytrip/internal/domain"
)

// Source is the identity side of a browser session.
type Source interface {
	CurrentSession(ctx context.Context) (*domain.AuthSession, error)
	OnSessionChange(fn auth.ChangeFunc) (func(), error)
}

// PreferenceFinder looks up onboarding records.
type PreferenceFinder interface {
	FindPreferences(ctx context.Context, userID string) (*domain.Preferences, error)
}

// State is a committed resolution.
type State struct {
	Identity  *domain.Identity
	Onboarded bool
	// Resolved is false only before the first resolution.
	Resolved bool
	// LookupErr is the failed preference lookup that forced Onboarded to false.
	LookupErr error
}

// SignedIn reports whether an identity is present.
func (s State) SignedIn() bool { return s.Identity != nil }

// Resolver keeps State current for one browser session. Every session change
// starts a new resolution; a newer one supersedes any still in flight.
type Resolver struct {
	source Source
	prefs  PreferenceFinder
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        State
	gen          uint64
	cancelLookup context.CancelFunc
	pending      bool
	settled      chan struct{}
	unsubscribe  func()
	started      bool
	closed       bool

	ready     chan struct{}
	readyOnce sync.Once

	// version counts commits; the dispatcher delivers the newest one.
	version     uint64
	notify      chan struct{}
	watchers    map[int]watcher
	nextWatcher int
}

type watcher struct {
	fn    func(State)
	since uint64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for lookup failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver creates a resolver. Nothing happens until Start.
func NewResolver(source Source, prefs PreferenceFinder, opts ...Option) *Resolver {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Resolver{
		source:   source,
		prefs:    prefs,
		logger:   slog.Default(),
		ctx:      ctx,
		cancel:   cancel,
		pending:  true,
		settled:  make(chan struct{}),
		ready:    make(chan struct{}),
		notify:   make(chan struct{}, 1),
		watchers: make(map[int]watcher),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start subscribes to session changes and then resolves the current session.
// Subscribing first means a change racing the initial fetch is not lost.
func (r *Resolver) Start() error {
	r.mu.Lock()
	if r.started || r.closed {
		r.mu.Unlock()
		return errors.New("resolver already started or closed")
	}
	r.started = true
	r.mu.Unlock()

	unsubscribe, err := r.source.OnSessionChange(r.onChange)
	if err != nil {
		return fmt.Errorf("subscribe to session changes: %w", err)
	}
	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()

	go r.dispatch()

	gen := r.begin()
	go func() {
		var identity *domain.Identity
		session, err := r.source.CurrentSession(r.ctx)
		if err != nil {
			if r.ctx.Err() != nil {
				return
			}
			r.logger.Warn("Failed to fetch current session, resolving as signed out", "event", "session_fetch_failed", "error", err)
		} else if session != nil {
			id := session.Identity
			identity = &id
		}
		r.resolve(gen, identity)
	}()
	return nil
}

func (r *Resolver) onChange(_ context.Context, identity *domain.Identity) {
	r.resolve(r.begin(), identity)
}

// begin supersedes any resolution in flight and marks one as pending.
func (r *Resolver) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.cancelLookup != nil {
		r.cancelLookup()
		r.cancelLookup = nil
	}
	if !r.pending {
		r.pending = true
		r.settled = make(chan struct{})
	}
	return r.gen
}

// resolve derives the onboarding flag for identity. A signed-out session
// commits at once without a lookup.
func (r *Resolver) resolve(gen uint64, identity *domain.Identity) {
	if identity == nil {
		r.commit(gen, State{Resolved: true})
		return
	}

	lookupCtx, cancel := context.WithCancel(r.ctx)
	r.mu.Lock()
	if gen != r.gen || r.closed {
		r.mu.Unlock()
		cancel()
		return
	}
	r.cancelLookup = cancel
	r.mu.Unlock()

	go func() {
		defer cancel()
		prefs, err := r.prefs.FindPreferences(lookupCtx, identity.ID)

		st := State{Identity: identity, Resolved: true}
		switch {
		case err == nil:
			st.Onboarded = prefs != nil
		case errors.Is(err, domain.ErrNotFound):
			st.Onboarded = false
		case lookupCtx.Err() != nil && errors.Is(err, context.Canceled):
			// Superseded or closed; a newer resolution owns the state.
			return
		default:
			st.LookupErr = &domain.PreferenceLookupError{UserID: identity.ID, Err: err}
			r.logger.Warn("Preference lookup failed, treating onboarding as incomplete",
				"event", "preference_lookup_failed", "user_id", identity.ID, "error", err)
		}
		r.commit(gen, st)
	}()
}

// commit applies st if gen is still the latest resolution.
func (r *Resolver) commit(gen uint64, st State) bool {
	r.mu.Lock()
	if gen != r.gen || r.closed {
		r.mu.Unlock()
		return false
	}
	r.state = st
	r.version++
	r.cancelLookup = nil
	if r.pending {
		r.pending = false
		close(r.settled)
	}
	r.mu.Unlock()

	r.readyOnce.Do(func() { close(r.ready) })
	select {
	case r.notify <- struct{}{}:
	default:
	}
	return true
}

// dispatch hands the newest committed state to the watchers, one delivery at
// a time. Commits that land while a delivery runs are coalesced, so watchers
// never see an older state after a newer one.
func (r *Resolver) dispatch() {
	var delivered uint64
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.notify:
		}

		r.mu.Lock()
		if r.closed || r.version == delivered {
			r.mu.Unlock()
			continue
		}
		delivered = r.version
		st := r.state
		fns := make([]func(State), 0, len(r.watchers))
		for _, w := range r.watchers {
			if w.since < delivered {
				fns = append(fns, w.fn)
			}
		}
		r.mu.Unlock()

		for _, fn := range fns {
			fn(st)
		}
	}
}

// Ready is closed once the first resolution has committed.
func (r *Resolver) Ready() <-chan struct{} { return r.ready }

// State returns the last committed state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Await blocks until no resolution is pending and returns the state.
func (r *Resolver) Await(ctx context.Context) (State, error) {
	for {
		r.mu.Lock()
		if !r.pending {
			st := r.state
			r.mu.Unlock()
			return st, nil
		}
		settled := r.settled
		r.mu.Unlock()

		select {
		case <-settled:
		case <-ctx.Done():
			return r.State(), ctx.Err()
		}
	}
}

// Watch calls fn with the newest state after commits made from now on, until
// the returned cancel is called. Calls are sequential and in commit order;
// a commit superseded before delivery is skipped.
func (r *Resolver) Watch(fn func(State)) (cancel func()) {
	r.mu.Lock()
	id := r.nextWatcher
	r.nextWatcher++
	r.watchers[id] = watcher{fn: fn, since: r.version}
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.watchers, id)
			r.mu.Unlock()
		})
	}
}

// Close unsubscribes and cancels any lookup in flight. Waiters in Await are
// released with the last committed state.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	if r.pending {
		r.pending = false
		close(r.settled)
	}
	r.watchers = map[int]watcher{}
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.cancel()
}
