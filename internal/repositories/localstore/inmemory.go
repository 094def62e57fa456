package localstore

import (
	"context"
	"sync"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

// InMemoryRepository keeps values for the lifetime of the process
type InMemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryRepository creates a new in-memory store
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key
func (r *InMemoryRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", dnderr.InvalidArgument("key is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.values[key]
	if !exists {
		return "", dnderr.NotFoundf("no value stored under '%s'", key).
			WithMeta("key", key)
	}

	return value, nil
}

// Set stores value under key
func (r *InMemoryRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return dnderr.InvalidArgument("key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}
