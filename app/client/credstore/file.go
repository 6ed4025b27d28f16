package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"session-service/app/domain"
)

// fileState is the on-disk layout. Credential and tenant selection are
// separate entries in one file so they cannot drift apart across files.
type fileState struct {
	Credential *domain.Credential `json:"credential,omitempty"`
	TenantID   uuid.UUID          `json:"tenant_id,omitempty"`
}

// FileStore is the locally persistent store variant. Writes go through
// a temp file and rename so readers never observe a partially written
// credential.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path. The parent
// directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Write replaces the current credential. Last write wins.
func (s *FileStore) Write(cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	state.Credential = cred
	return s.save(state)
}

// Read returns the persisted credential, nil if absent.
func (s *FileStore) Read() (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return state.Credential, nil
}

// WriteTenant persists the active tenant selection.
func (s *FileStore) WriteTenant(tenantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	state.TenantID = tenantID
	return s.save(state)
}

// ReadTenant returns the active tenant selection, uuid.Nil if absent.
func (s *FileStore) ReadTenant() (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return uuid.Nil, err
	}
	return state.TenantID, nil
}

// Clear removes the credential and the tenant selection together.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credential store: %w", err)
	}
	return nil
}

func (s *FileStore) load() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential store: %w", err)
	}

	state := &fileState{}
	if err := json.Unmarshal(data, state); err != nil {
		// A corrupt store is treated as absent rather than fatal;
		// the next write replaces it.
		return &fileState{}, nil
	}
	return state, nil
}

func (s *FileStore) save(state *fileState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode credential store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to commit credential store: %w", err)
	}
	return nil
}
