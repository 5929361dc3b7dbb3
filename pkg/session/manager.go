package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/broadcast"
	"github.com/dmitrymomot/authkit/pkg/credstore"
)

// API is the remote surface the manager drives: a credential exchange plus
// control over the transport's default authorization header.
// *apiclient.Client satisfies it.
type API interface {
	SignIn(ctx context.Context, email, password string) (apiclient.SessionPayload, error)
	SetToken(token string)
	ClearToken()
}

// Manager owns the authentication state of the process: it is the only
// component allowed to write the session snapshot and the transport's default
// token. Mutations replace the snapshot atomically, so readers between two
// mutations always see a consistent pair.
type Manager struct {
	api         API
	store       credstore.Store
	logger      *slog.Logger
	broadcaster broadcast.Broadcaster[Snapshot]

	mu       sync.RWMutex
	snapshot Snapshot
}

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBroadcaster sets a custom snapshot broadcaster.
func WithBroadcaster(b broadcast.Broadcaster[Snapshot]) Option {
	return func(m *Manager) {
		if b != nil {
			m.broadcaster = b
		}
	}
}

// New creates a session manager over the given API transport and credential
// store.
func New(api API, store credstore.Store, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.broadcaster == nil {
		m.broadcaster = broadcast.NewMemoryBroadcaster[Snapshot](8)
	}

	return m
}

// Bootstrap rehydrates the session from the credential store. It runs once at
// process start: with a complete stored pair the manager comes up logged in
// and installs the bearer token on the transport; anything else, including a
// corrupt stored record, comes up logged out without error.
func (m *Manager) Bootstrap(ctx context.Context) Snapshot {
	creds, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.LogAttrs(ctx, slog.LevelDebug, "session bootstrap found no usable credentials",
				slog.String("error", err.Error()),
			)
		}
		return m.Snapshot()
	}

	m.api.SetToken(creds.Token)
	return m.replace(ctx, Snapshot{Token: creds.Token, User: creds.User})
}

// SignIn performs the remote credential exchange and, on success, persists
// the pair, installs the bearer token and replaces the snapshot. A remote
// failure leaves store, transport and snapshot untouched and propagates to
// the caller. Concurrent calls are not deduplicated; the last to complete
// wins.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Snapshot, error) {
	payload, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return Snapshot{}, err
	}

	creds := credstore.Credentials{Token: payload.Token, User: payload.User}
	if err := m.store.Save(ctx, creds); err != nil {
		return Snapshot{}, err
	}

	m.api.SetToken(payload.Token)
	return m.replace(ctx, Snapshot{Token: payload.Token, User: payload.User}), nil
}

// SignOut clears the stored credentials, removes the transport token and
// resets the snapshot. It is idempotent: signing out while logged out is a
// no-op with the same observable result.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.store.Clear(ctx)

	m.api.ClearToken()
	m.replace(ctx, Snapshot{})

	return err
}

// UpdateUser replaces the user record in place, preserving the current
// token, and persists the updated pair. Calling it while logged out returns
// ErrNotAuthenticated without touching the store.
func (m *Manager) UpdateUser(ctx context.Context, user apiclient.User) error {
	m.mu.RLock()
	token := m.snapshot.Token
	m.mu.RUnlock()

	if token == "" {
		return ErrNotAuthenticated
	}

	if err := m.store.Save(ctx, credstore.Credentials{Token: token, User: user}); err != nil {
		return err
	}

	m.replace(ctx, Snapshot{Token: token, User: user})
	return nil
}

// Snapshot returns the current session state as a value copy.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Subscribe returns a feed of snapshot changes. Each mutation publishes the
// full new snapshot; subscribers that fall behind should re-read Snapshot.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[Snapshot] {
	return m.broadcaster.Subscribe(ctx)
}

// Close shuts down the snapshot feed.
func (m *Manager) Close() error {
	return m.broadcaster.Close()
}

// replace swaps the snapshot in a single assignment and publishes the new
// value.
func (m *Manager) replace(ctx context.Context, snap Snapshot) Snapshot {
	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()

	_ = m.broadcaster.Broadcast(ctx, broadcast.Message[Snapshot]{Data: snap})
	return snap
}
