package cache

import (
	"context"
	"time"
)

// Cache là contract cho cache layer (Redis ở production, fake in-memory ở test)
type Cache interface {
	// Get unmarshal value vào dest.
	// found = false: cache miss, dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu value (JSON) với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key match glob pattern (vd: "bees:*")
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error

	// Counter helpers cho login throttling
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
