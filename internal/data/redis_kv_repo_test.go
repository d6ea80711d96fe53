package data

import (
	"context"
	"testing"
	"time"

	"github.com/pmsadmin/console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKVRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	repo := NewRedisKVRepo(client, RedisKVOptions{Prefix: "pms-test:", TTL: 5 * time.Minute})
	exerciseKV(t, repo)

	ctx := context.Background()
	require.NoError(t, repo.Health(ctx))

	t.Run("keys are prefixed and expire", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "adminToken", "x"))
		ttl := client.TTL(ctx, "pms-test:adminToken").Val()
		assert.True(t, ttl > 0 && ttl <= 5*time.Minute)
	})

	t.Run("zero ttl persists", func(t *testing.T) {
		forever := NewRedisKVRepo(client, RedisKVOptions{Prefix: "pms-test-forever:"})
		require.NoError(t, forever.Set(ctx, "lang", "zh"))
		assert.Equal(t, time.Duration(-1), client.TTL(ctx, "pms-test-forever:lang").Val())
	})
}
