package cart

import (
	"sync"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// Registry hands out one coordinator per signed-in user so every
// request for the same user shares cart state and busy flags.
type Registry struct {
	client   API
	onCreate func(userID int64, c *Coordinator)
	onDrop   func(userID int64)

	mu     sync.Mutex
	byUser map[int64]*Coordinator
}

func NewRegistry(client API) *Registry {
	return &Registry{
		client: client,
		byUser: make(map[int64]*Coordinator),
	}
}

// OnCreate registers a hook run once per newly created per-user
// coordinator, before it is handed out. Used to attach subscribers.
func (r *Registry) OnCreate(fn func(userID int64, c *Coordinator)) {
	r.onCreate = fn
}

// For returns the coordinator for the session's user, creating it on
// first use. Anonymous sessions get a throwaway coordinator whose
// operations gate on ErrAuthRequired.
func (r *Registry) For(session domain.Session) *Coordinator {
	if session.Anonymous() {
		return NewCoordinator(r.client, session)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byUser[session.UserID]; ok {
		// the token slides with the session; keep the freshest one
		c.setToken(session.Token)
		return c
	}
	c := NewCoordinator(r.client, session)
	r.byUser[session.UserID] = c
	if r.onCreate != nil {
		r.onCreate(session.UserID, c)
	}
	return c
}

// OnDrop registers a hook run after a coordinator is dropped and
// closed. Used to discard sidecar state keyed by the user.
func (r *Registry) OnDrop(fn func(userID int64)) {
	r.onDrop = fn
}

// Drop forgets a user's coordinator, e.g. on sign-out. The coordinator
// is closed so its subscribers (and their goroutines) terminate.
func (r *Registry) Drop(userID int64) {
	r.mu.Lock()
	c, ok := r.byUser[userID]
	delete(r.byUser, userID)
	r.mu.Unlock()
	if !ok {
		return
	}

	c.Close()
	if r.onDrop != nil {
		r.onDrop(userID)
	}
}
