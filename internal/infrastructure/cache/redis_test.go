package cache

import (
	"context"
	"testing"
	"time"

	"tutor-board/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_DisabledIsNoop(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	require.NoError(t, r.SetJSON(ctx, "k", []int{1}, time.Minute))

	var out []int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "demands:*"))
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", new(string))
	assert.NoError(t, err)
	assert.False(t, hit)
}
