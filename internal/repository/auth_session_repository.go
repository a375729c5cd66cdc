package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

// ErrFragmentPending signals that the popup has not delivered its
// location fragment yet. The token broker treats it like the
// cross-origin read failures of a real popup: not an error, keep polling.
var ErrFragmentPending = errors.New("fragment not delivered yet")

// AuthSessionRepository keeps pending OAuth sessions in memory. Tokens
// are access-only session credentials and must never be written to
// durable storage, so there is no redis or disk behind this store.
type AuthSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.AuthSession
}

// NewAuthSessionRepository constructs an empty session store.
func NewAuthSessionRepository() *AuthSessionRepository {
	return &AuthSessionRepository{sessions: make(map[string]*models.AuthSession)}
}

// Create registers a pending session.
func (r *AuthSessionRepository) Create(id, authURL string) *models.AuthSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := &models.AuthSession{ID: id, AuthURL: authURL, CreatedAt: time.Now().UTC()}
	r.sessions[id] = session
	copied := *session
	return &copied
}

// Get returns a snapshot of the session.
func (r *AuthSessionRepository) Get(id string) (*models.AuthSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "auth session not found")
	}
	copied := *session
	return &copied, nil
}

// DepositFragment stores the location fragment captured by the redirect
// landing page.
func (r *AuthSessionRepository) DepositFragment(id, fragment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "auth session not found")
	}
	session.Fragment = &fragment
	return nil
}

// Fragment returns the deposited fragment, or ErrFragmentPending while
// the popup round-trip is still in flight.
func (r *AuthSessionRepository) Fragment(id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "auth session not found")
	}
	if session.Fragment == nil {
		return "", ErrFragmentPending
	}
	return *session.Fragment, nil
}

// Delete drops the session, discarding the fragment and the token in it.
func (r *AuthSessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
