// Package session tracks the authenticated identity and its role; the root
// of the portal's dependency graph.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

// State is the continuously updated (user, role, loading) triple. Loading is
// true only until the first auth-state resolution completes. A nil User means
// signed out.
type State struct {
	User    *user.User
	Role    user.Role
	Loading bool
}

func (s State) Authenticated() bool { return s.User != nil }

// Manager subscribes to the identity provider's auth-state stream and
// resolves each identity against the users collection. An identity whose
// record cannot be fetched resolves to signed-out (fail-closed).
type Manager struct {
	provider core.IdentityProvider
	users    user.Repository
	log      core.Logger

	mu      sync.RWMutex
	state   State
	watcher chan State

	unsubscribe func()
	done        chan struct{}
	closeOnce   sync.Once
}

func NewManager(provider core.IdentityProvider, users user.Repository, log core.Logger) *Manager {
	return &Manager{
		provider: provider,
		users:    users,
		log:      log,
		state:    State{Loading: true},
		watcher:  make(chan State, 1),
		done:     make(chan struct{}),
	}
}

// Start subscribes to the auth-state stream and keeps resolving until Close.
func (m *Manager) Start() {
	changes, unsubscribe := m.provider.AuthStateChanges()
	m.unsubscribe = unsubscribe

	go func() {
		for identity := range changes {
			m.publish(m.resolve(identity))
		}
	}()
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Changes delivers the latest state after each resolution. Older unread
// states are dropped; only the newest matters.
func (m *Manager) Changes() <-chan State {
	return m.watcher
}

// Close tears the subscription down exactly once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		close(m.done)
	})
}

// ResolveIdentity maps an identity to session state using the users collection.
// Shared with the API's session endpoint, which resolves per-request.
func ResolveIdentity(ctx context.Context, users user.Repository, identity *core.Identity) (State, error) {
	if identity == nil {
		return State{}, nil
	}
	usr, err := users.Get(ctx, identity.ID)
	if err != nil {
		if err == user.ErrNotFound {
			return State{}, nil
		}
		return State{}, errors.Wrap(err, "fetching user record")
	}
	return State{User: &usr, Role: usr.Role}, nil
}

func (m *Manager) resolve(identity *core.Identity) State {
	state, err := ResolveIdentity(context.Background(), m.users, identity)
	if err != nil {
		// fail closed: a record we cannot fetch is a session we do not trust
		m.log.Error("resolving auth state", err)
		return State{}
	}
	return state
}

func (m *Manager) publish(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
	}
	// drop the stale unread state, if any
	select {
	case <-m.watcher:
	default:
	}
	m.watcher <- state
}
