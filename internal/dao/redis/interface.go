// Package redis defines the cache-service interface and its redis
// implementation. Services depend on the interface so tests can swap in
// an in-memory fake.
package redis

import (
	"context"
	"time"
)

// CacheService abstracts the cache operations used by the server.
type CacheService interface {
	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value, or "" with nil error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// GetOrError returns the value, or a CodeNotFound error when absent.
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error

	// AddToSet adds members to a set.
	AddToSet(ctx context.Context, key string, members ...interface{}) error
	// GetSetMembers returns all members of a set.
	GetSetMembers(ctx context.Context, key string) ([]string, error)
	// RemoveFromSet removes members from a set.
	RemoveFromSet(ctx context.Context, key string, members ...interface{}) error
}

// AsyncCacheService adds non-blocking task submission on top of
// CacheService, used for cache updates that must not sit on the message
// delivery path.
type AsyncCacheService interface {
	CacheService
	SubmitTask(action func())
}
