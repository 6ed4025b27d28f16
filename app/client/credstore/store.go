// Package credstore holds the durable client-side storage for the
// current credential and the active tenant selection. All writes funnel
// through the session controller and the tenant directory; no other
// component touches the store directly.
package credstore

import (
	"sync"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// Store persists the current credential and the active tenant id. The
// two entries are stored independently on the wire, so Clear removes
// both in one call to rule out a partial clear leaving a stale tenant
// selection behind a missing credential.
type Store interface {
	// Write replaces the current credential. Last write wins.
	Write(cred *domain.Credential) error
	// Read returns the current credential, nil if absent.
	Read() (*domain.Credential, error)
	// WriteTenant persists the active tenant selection.
	WriteTenant(tenantID uuid.UUID) error
	// ReadTenant returns the active tenant selection, uuid.Nil if absent.
	ReadTenant() (uuid.UUID, error)
	// Clear removes the credential and the tenant selection together.
	Clear() error
}

// MemoryStore is the in-process store variant, used in tests and by
// embedders that manage persistence themselves.
type MemoryStore struct {
	mu       sync.RWMutex
	cred     *domain.Credential
	tenantID uuid.UUID
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Write replaces the current credential.
func (s *MemoryStore) Write(cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred == nil {
		s.cred = nil
		return nil
	}
	copied := *cred
	s.cred = &copied
	return nil
}

// Read returns the current credential, nil if absent.
func (s *MemoryStore) Read() (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return nil, nil
	}
	copied := *s.cred
	return &copied, nil
}

// WriteTenant persists the active tenant selection.
func (s *MemoryStore) WriteTenant(tenantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenantID = tenantID
	return nil
}

// ReadTenant returns the active tenant selection.
func (s *MemoryStore) ReadTenant() (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID, nil
}

// Clear removes the credential and the tenant selection together.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.tenantID = uuid.Nil
	return nil
}
