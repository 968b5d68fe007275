package marketplace

import (
	"context"
	"sync"
)

// MemoryStore is the reference in-process Store: maps guarded by a
// read-write mutex. It is safe for concurrent use within one process and
// is the default backend for tests and embedded catalogs.
type MemoryStore struct {
	mu        sync.RWMutex
	tools     map[string]*Tool
	userTools map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tools:     make(map[string]*Tool),
		userTools: make(map[string][]string),
	}
}

// GetTool returns a copy of the entry for id, or ErrToolNotFound.
func (s *MemoryStore) GetTool(ctx context.Context, id string) (*Tool, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tools[id]
	if !ok {
		return nil, ErrToolNotFound
	}
	return copyTool(t), nil
}

// PutTool stores a copy of the entry keyed by its definition id.
func (s *MemoryStore) PutTool(ctx context.Context, t *Tool) error {
	if t == nil || t.Definition.ID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools[t.Definition.ID] = copyTool(t)
	return nil
}

// ListTools returns copies of all stored entries.
func (s *MemoryStore) ListTools(ctx context.Context) ([]*Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Tool, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, copyTool(t))
	}
	return out, nil
}

// GetUserTools returns the tool-id list stored under key.
func (s *MemoryStore) GetUserTools(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.userTools[key]...), nil
}

// PutUserTools replaces the tool-id list stored under key.
func (s *MemoryStore) PutUserTools(ctx context.Context, key string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userTools[key] = append([]string(nil), ids...)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// copyTool copies an entry so callers never alias store-owned state.
func copyTool(t *Tool) *Tool {
	out := *t
	out.Reviews = append([]Review(nil), t.Reviews...)
	return &out
}
