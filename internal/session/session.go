// Package session keeps the signed-in user's credentials for the lifetime
// of a console process.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/events"
)

// AuthChanged is emitted after every sign-in and sign-out. The payload is
// the new *domain.AuthResponse, or nil after sign-out.
const AuthChanged = "auth-changed"

// ErrNoCredentials is returned by Store.Load when nothing is persisted.
var ErrNoCredentials = errors.New("no stored credentials")

type Authenticator interface {
	SignIn(ctx context.Context, username, password string) (domain.AuthResponse, error)
}

// Store persists the credentials of the current user.
type Store interface {
	Load(ctx context.Context) (domain.AuthResponse, error)
	Save(ctx context.Context, auth domain.AuthResponse) error
	Clear(ctx context.Context) error
}

type Session struct {
	auth  Authenticator
	store Store
	bus   *events.Bus

	mu      sync.RWMutex
	current *domain.AuthResponse
}

func New(auth Authenticator, store Store, bus *events.Bus) *Session {
	return &Session{auth: auth, store: store, bus: bus}
}

// Init restores persisted credentials. A store with nothing in it leaves
// the session signed out without error.
func (s *Session) Init(ctx context.Context) error {
	a, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoCredentials) {
		s.set(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if a.Token == "" {
		s.set(nil)
		return nil
	}
	s.set(&a)
	return nil
}

func (s *Session) SignIn(ctx context.Context, username, password string) (domain.AuthResponse, error) {
	a, err := s.auth.SignIn(ctx, username, password)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if a.Token == "" {
		return a, nil
	}
	if err := s.store.Save(ctx, a); err != nil {
		return domain.AuthResponse{}, fmt.Errorf("save session: %w", err)
	}
	s.set(&a)
	s.bus.Emit(AuthChanged, &a)
	return a, nil
}

func (s *Session) SignOut(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.set(nil)
	s.bus.Emit(AuthChanged, nil)
	return nil
}

// Token returns the bearer token of the signed-in user, "" when signed
// out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the signed-in user, or false when signed out.
func (s *Session) User() (domain.AuthResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.AuthResponse{}, false
	}
	return *s.current, true
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) set(a *domain.AuthResponse) {
	s.mu.Lock()
	s.current = a
	s.mu.Unlock()
}

// MemoryStore keeps credentials in process memory only.
type MemoryStore struct {
	mu   sync.Mutex
	auth *domain.AuthResponse
}

func (m *MemoryStore) Load(context.Context) (domain.AuthResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.auth == nil {
		return domain.AuthResponse{}, ErrNoCredentials
	}
	return *m.auth, nil
}

func (m *MemoryStore) Save(_ context.Context, a domain.AuthResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = &a
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = nil
	return nil
}
