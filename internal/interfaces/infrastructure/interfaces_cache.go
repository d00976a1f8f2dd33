package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entity kinds used as cache key prefixes.
const (
	CacheKindTeacher = "teacher"
	CacheKindCourse  = "course"
	CacheKindStudent = "student"
)

// CacheService caches catalog entity details so the hot read paths avoid the
// database. Cached data is advisory only; validators always read the entity
// store, never the cache.
type CacheService interface {
	GetEntity(ctx context.Context, kind string, id uuid.UUID) ([]byte, error)
	SetEntity(ctx context.Context, kind string, id uuid.UUID, data interface{}, ttl time.Duration) error
	InvalidateEntity(ctx context.Context, kind string, id uuid.UUID) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error

	Health(ctx context.Context) error
	Close() error
}
