package session

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests. It follows the same
// semantics as FileStore without touching the filesystem.
type MemoryStore struct {
	// Now lets tests control the clock used for expiry checks.
	Now func() time.Time

	mu         sync.Mutex
	credential string
	identity   Identity
	hasSession bool
	pending    PendingRegistration
	hasPending bool
	gen        uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Now: time.Now}
}

func (s *MemoryStore) SaveSession(credential string, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	s.identity = identity
	s.hasSession = true
	s.gen++
	return nil
}

func (s *MemoryStore) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSession || s.credential == "" {
		return "", false
	}
	return s.credential, true
}

func (s *MemoryStore) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSession {
		return Identity{}, false
	}
	return s.identity, true
}

func (s *MemoryStore) IsAuthenticated() bool {
	cred, ok := s.Credential()
	return ok && !credentialExpired(cred, s.Now())
}

func (s *MemoryStore) IsAdmin() bool {
	identity, ok := s.Identity()
	return ok && slices.Contains(identity.Roles, AdminRole)
}

func (s *MemoryStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	s.identity = Identity{}
	s.hasSession = false
	s.gen++
	return nil
}

func (s *MemoryStore) AuthorizationHeader() string {
	cred, ok := s.Credential()
	if !ok || credentialExpired(cred, s.Now()) {
		return ""
	}
	return "Bearer " + cred
}

func (s *MemoryStore) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *MemoryStore) SavePendingRegistration(reg PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = reg
	s.hasPending = true
	return nil
}

func (s *MemoryStore) PendingRegistration() (PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPending || s.pending.RegistrationID == "" {
		return PendingRegistration{}, false
	}
	return s.pending, true
}

func (s *MemoryStore) ClearPendingRegistration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = PendingRegistration{}
	s.hasPending = false
	return nil
}
