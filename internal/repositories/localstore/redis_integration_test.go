//go:build integration
// +build integration

package localstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/party-share/internal/codec"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
	"github.com/KirkDiggler/party-share/internal/repositories/localstore"
	"github.com/KirkDiggler/party-share/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	ctx := context.Background()

	repo := localstore.NewRedisRepository(&localstore.RedisRepoConfig{
		Client: client,
		TTL:    time.Minute,
	})

	t.Run("missing key is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "partyData")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("stores snapshot json", func(t *testing.T) {
		snap := testutils.CreateTestSnapshot("dark", "虎杖悠仁", "i_ch2")
		data, err := codec.Marshal(snap)
		require.NoError(t, err)

		require.NoError(t, repo.Set(ctx, "partyData", string(data)))

		value, err := repo.Get(ctx, "partyData")
		require.NoError(t, err)
		restored, err := codec.Unmarshal([]byte(value))
		require.NoError(t, err)
		assert.Equal(t, snap, restored)

		ttl, err := client.TTL(ctx, "party:partyData").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
