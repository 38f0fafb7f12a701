package repository

import (
	"context"
	"sync"
	"testing"

	"relaybot/domain/entities"
	"relaybot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_ChannelConfig(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	store := NewPostgresStore(testDB.DB)
	ctx := context.Background()

	t.Run("missing channel returns nil", func(t *testing.T) {
		config, err := store.GetChannelConfig(ctx, testutil.ChannelKey(1, 99))
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("save then replace", func(t *testing.T) {
		key := testutil.ChannelKey(1, 1)
		config := testutil.CreateTestChannelConfig(key, "en", "ja", "de")
		require.NoError(t, store.SaveChannelConfig(ctx, config))

		got, err := store.GetChannelConfig(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, config, got)

		config.Languages = []string{"fr", "ko"}
		config.Settings.ShowFlags = false
		config.Settings.EmbedColor = 0xabcdef
		require.NoError(t, store.SaveChannelConfig(ctx, config))

		got, err = store.GetChannelConfig(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []string{"fr", "ko"}, got.Languages)
		assert.False(t, got.Settings.ShowFlags)
		assert.Equal(t, 0xabcdef, got.Settings.EmbedColor)
	})

	t.Run("delete reports existence", func(t *testing.T) {
		key := testutil.ChannelKey(1, 2)
		require.NoError(t, store.SaveChannelConfig(ctx, testutil.CreateTestChannelConfig(key)))

		deleted, err := store.DeleteChannelConfig(ctx, key)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.DeleteChannelConfig(ctx, key)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("list ordered", func(t *testing.T) {
		require.NoError(t, store.SaveChannelConfig(ctx, testutil.CreateTestChannelConfig(testutil.ChannelKey(2, 5))))
		require.NoError(t, store.SaveChannelConfig(ctx, testutil.CreateTestChannelConfig(testutil.ChannelKey(2, 3))))

		configs, err := store.ListChannelConfigs(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(configs), 2)
		for i := 1; i < len(configs); i++ {
			prev, cur := configs[i-1].Key, configs[i].Key
			assert.True(t, prev.GuildID < cur.GuildID || (prev.GuildID == cur.GuildID && prev.ChannelID < cur.ChannelID))
		}
	})
}

func TestPostgresStore_UserLanguages(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	store := NewPostgresStore(testDB.DB)
	ctx := context.Background()

	_, ok, err := store.GetUserLanguage(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetUserLanguage(ctx, "u1", "ja"))
	require.NoError(t, store.SetUserLanguage(ctx, "u1", "es"))

	language, ok, err := store.GetUserLanguage(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "es", language)
}

func TestPostgresStore_Stats(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	store := NewPostgresStore(testDB.DB)
	ctx := context.Background()
	keyA := testutil.ChannelKey(1, 1)
	keyB := testutil.ChannelKey(1, 2)

	stats, err := store.GetChannelStats(ctx, keyA)
	require.NoError(t, err)
	assert.Equal(t, &entities.ChannelStats{}, stats)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.IncrementRelayed(ctx, keyA)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := store.IncrementRelayed(ctx, keyB)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err = store.GetChannelStats(ctx, keyA)
	require.NoError(t, err)
	assert.Equal(t, &entities.ChannelStats{Overall: 20, Channel: 10}, stats)

	stats, err = store.IncrementRelayed(ctx, keyB)
	require.NoError(t, err)
	assert.Equal(t, &entities.ChannelStats{Overall: 21, Channel: 11}, stats)
}
