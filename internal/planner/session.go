package planner

import (
	"sync"
	"time"

	"github.com/taskflow-app/taskflow/internal/constants"
	apperrors "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

// IdentityProvider validates credentials and yields the authenticated
// identity. The local dev provider and the remote token-backed service both
// sit behind this interface so callers never know which one is wired in.
type IdentityProvider interface {
	Authenticate(email, password string) (models.User, error)
}

// LocalProvider is the offline identity provider: a single fixed dev account
// checked in memory, with a short simulated delay standing in for the network
// round trip a real provider would make.
type LocalProvider struct {
	Email    string
	Password string
	Name     string
	Avatar   string
	Delay    time.Duration
}

// NewLocalProvider returns the stock development identity.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{
		Email:    "dev@taskflow.local",
		Password: "password",
		Name:     "Dev User",
		Avatar:   "https://ui-avatars.com/api/?name=Dev+User&background=6C63FF&color=fff",
		Delay:    500 * time.Millisecond,
	}
}

// Authenticate implements IdentityProvider. Mismatches return the same
// authentication failure regardless of which credential was wrong.
func (p *LocalProvider) Authenticate(email, password string) (models.User, error) {
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}
	if email != p.Email || password != p.Password {
		return models.User{}, apperrors.Authenticationf("invalid email or password")
	}
	return models.User{
		ID:     "1",
		Name:   p.Name,
		Email:  p.Email,
		Avatar: p.Avatar,
	}, nil
}

// SessionManager holds the current authenticated identity and persists it in
// the key-value store. A session exists iff the identity record does.
type SessionManager struct {
	mu       sync.Mutex
	store    storage.Store
	provider IdentityProvider
}

// NewSessionManager creates a SessionManager backed by the given provider.
func NewSessionManager(store storage.Store, provider IdentityProvider) *SessionManager {
	return &SessionManager{store: store, provider: provider}
}

// CurrentUser returns the persisted identity, if any.
func (m *SessionManager) CurrentUser() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

func (m *SessionManager) currentLocked() (models.User, bool) {
	var user models.User
	if !m.store.Get(constants.StorageKeyUser, &user) {
		return models.User{}, false
	}
	return user, true
}

// IsAuthenticated reports whether an identity record is held.
func (m *SessionManager) IsAuthenticated() bool {
	_, ok := m.CurrentUser()
	return ok
}

// Login validates credentials through the provider and persists the
// resulting identity. Nothing is persisted on failure.
func (m *SessionManager) Login(email, password string) (models.User, error) {
	user, err := m.provider.Authenticate(email, password)
	if err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Set(constants.StorageKeyUser, user)
	return user, nil
}

// Logout clears the persisted identity.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Remove(constants.StorageKeyUser)
}

// ProfilePatch is a partial identity update.
type ProfilePatch struct {
	Name   *string
	Avatar *string
}

// UpdateProfile merges the patch into the stored identity. It fails when no
// session is held.
func (m *SessionManager) UpdateProfile(patch ProfilePatch) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.currentLocked()
	if !ok {
		return models.User{}, apperrors.Authenticationf("not authenticated")
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}

	m.store.Set(constants.StorageKeyUser, user)
	return user, nil
}
