package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ShoppingClient defines the fetch capability against a shopping search provider.
// FetchRaw may fail or return malformed records; callers own the cleanup.
type ShoppingClient interface {
	FetchRaw(ctx context.Context, query string, limit int) ([]RawItem, error)
}
