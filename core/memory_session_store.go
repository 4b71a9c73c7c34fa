package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemorySessionStore is the in-process SessionStore fallback. It satisfies
// the store contract for tests and short-lived consumers; durable deployments
// use the sql-backed store.
type MemorySessionStore struct {
	mu             sync.Mutex
	session        Session
	user           *User
	installationID string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Get(context.Context) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("core: session store is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *MemorySessionStore) Put(_ context.Context, session Session) error {
	if s == nil {
		return fmt.Errorf("core: session store is not configured")
	}
	if strings.TrimSpace(session.Token) == "" {
		return fmt.Errorf("core: session token is required")
	}
	s.mu.Lock()
	s.session = session
	if strings.TrimSpace(session.InstallationID) != "" {
		s.installationID = session.InstallationID
	}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(context.Context) error {
	if s == nil {
		return fmt.Errorf("core: session store is not configured")
	}
	s.mu.Lock()
	s.session = Session{}
	s.user = nil
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) InstallationID(context.Context) (string, error) {
	if s == nil {
		return "", fmt.Errorf("core: session store is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installationID == "" {
		s.installationID = uuid.NewString()
	}
	return s.installationID, nil
}

func (s *MemorySessionStore) CurrentUser(context.Context) (*User, error) {
	if s == nil {
		return nil, fmt.Errorf("core: session store is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	copied := *s.user
	return &copied, nil
}

func (s *MemorySessionStore) PutCurrentUser(_ context.Context, user *User) error {
	if s == nil {
		return fmt.Errorf("core: session store is not configured")
	}
	s.mu.Lock()
	if user == nil {
		s.user = nil
	} else {
		copied := *user
		s.user = &copied
	}
	s.mu.Unlock()
	return nil
}

var _ SessionStore = (*MemorySessionStore)(nil)
