package taskstore

import (
	"context"
	"sync"
)

// Manager owns one Store per authenticated session, keyed by user id. Stores
// are created and loaded on session start and dropped on sign-out; nothing is
// kept in a package-level singleton.
type Manager struct {
	remote Remote

	mu       sync.Mutex
	sessions map[string]*Store
}

func NewManager(remote Remote) *Manager {
	return &Manager{
		remote:   remote,
		sessions: make(map[string]*Store),
	}
}

// Init builds a fresh Store for the actor and loads the remote snapshot. An
// existing session for the same user is replaced. When the snapshot load
// fails nothing is registered, so the next Session call loads again instead
// of serving an empty workspace.
func (m *Manager) Init(ctx context.Context, actor Actor) (*Store, error) {
	store := New(actor, m.remote)
	if err := store.LoadAll(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[actor.ID] = store
	m.mu.Unlock()
	return store, nil
}

// Session returns the actor's store, creating and loading one on demand.
// Sessions created before a server restart resume transparently.
func (m *Manager) Session(ctx context.Context, actor Actor) (*Store, error) {
	m.mu.Lock()
	store, ok := m.sessions[actor.ID]
	m.mu.Unlock()
	if ok {
		return store, nil
	}
	return m.Init(ctx, actor)
}

// Teardown drops the user's session store.
func (m *Manager) Teardown(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
