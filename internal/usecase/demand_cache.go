package usecase

import (
	"context"
	"time"
)

// DemandsCacheKey holds the serialized demand list served by the feed.
const DemandsCacheKey = "demands:list"

type DemandCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
