package localstore

//go:generate mockgen -destination=mock/mock_repository.go -package=mocklocalstore -source=interface.go

import (
	"context"
)

// Repository is the local key-value store party state is persisted in.
// Get returns a not found error when the key is absent; backend failures are
// reported as storage unavailable.
type Repository interface {
	// Get returns the value stored under key
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}
