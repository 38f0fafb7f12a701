package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"relaybot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "translation_data.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	return store, path
}

func readDocument(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestJSONStore_MissingFileStartsEmpty(t *testing.T) {
	t.Parallel()
	store, path := newTestJSONStore(t)
	ctx := context.Background()

	config, err := store.GetChannelConfig(ctx, entities.ChannelKey{GuildID: "1", ChannelID: "2"})
	require.NoError(t, err)
	assert.Nil(t, config)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "reads never create the file")
}

func TestJSONStore_ChannelConfigLifecycle(t *testing.T) {
	t.Parallel()
	store, path := newTestJSONStore(t)
	ctx := context.Background()
	key := entities.ChannelKey{GuildID: "g1", ChannelID: "c1"}

	config := entities.NewChannelConfig(key, []string{"en", "ja"})
	config.Settings.EmbedColor = 0xff0000
	require.NoError(t, store.SaveChannelConfig(ctx, config))

	got, err := store.GetChannelConfig(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, config, got)

	doc := readDocument(t, path)
	assert.Equal(t, map[string]any{"g1": map[string]any{"c1": []any{"en", "ja"}}}, doc["translation_channels"])
	settings := doc["channel_settings"].(map[string]any)["g1"].(map[string]any)["c1"].(map[string]any)
	assert.Equal(t, float64(0xff0000), settings["embed_color"])
	assert.Equal(t, true, settings["show_flags"])

	deleted, err := store.DeleteChannelConfig(ctx, key)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = store.GetChannelConfig(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJSONStore_DeleteUnconfiguredDoesNotWrite(t *testing.T) {
	t.Parallel()
	store, path := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetUserLanguage(ctx, "u1", "ja"))
	before, err := os.Stat(path)
	require.NoError(t, err)

	// Let a rewrite show up as a newer modification time
	time.Sleep(20 * time.Millisecond)

	deleted, err := store.DeleteChannelConfig(ctx, entities.ChannelKey{GuildID: "g", ChannelID: "none"})
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestJSONStore_UserLanguages(t *testing.T) {
	t.Parallel()
	store, _ := newTestJSONStore(t)
	ctx := context.Background()

	_, ok, err := store.GetUserLanguage(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetUserLanguage(ctx, "u1", "ja"))
	require.NoError(t, store.SetUserLanguage(ctx, "u1", "de"))

	code, ok, err := store.GetUserLanguage(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "de", code)
}

func TestJSONStore_IncrementRelayedIsAtomic(t *testing.T) {
	t.Parallel()
	store, path := newTestJSONStore(t)
	ctx := context.Background()
	keyA := entities.ChannelKey{GuildID: "g", ChannelID: "a"}
	keyB := entities.ChannelKey{GuildID: "g", ChannelID: "b"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
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

	stats, err := store.GetChannelStats(ctx, keyA)
	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.Overall)
	assert.Equal(t, int64(20), stats.Channel)

	reloaded, err := NewJSONStore(path)
	require.NoError(t, err)
	stats, err = reloaded.GetChannelStats(ctx, keyB)
	require.NoError(t, err)
	assert.Equal(t, &entities.ChannelStats{Overall: 40, Channel: 20}, stats)
}

func TestJSONStore_LoadsExistingDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "translation_data.json")
	original := `{
  "translation_channels": {"g1": {"c1": ["en", "ja"], "c2": ["de", "fr"]}},
  "user_languages": {"u1": "ko"},
  "channel_settings": {"g1": {"c1": {"auto_delete": true, "auto_delete_seconds": 5, "show_flags": false, "embed_color": 255, "max_translation_length": 100}}},
  "translation_stats": {"overall": 7, "by_channel": {"g1-c1": 7}},
  "legacy_notes": {"kept": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	store, err := NewJSONStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	c1, err := store.GetChannelConfig(ctx, entities.ChannelKey{GuildID: "g1", ChannelID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, entities.Settings{
		AutoDelete: true, AutoDeleteSeconds: 5, ShowFlags: false, EmbedColor: 255, MaxTranslationLength: 100,
	}, c1.Settings)

	c2, err := store.GetChannelConfig(ctx, entities.ChannelKey{GuildID: "g1", ChannelID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultSettings(), c2.Settings, "missing settings fall back to defaults")

	all, err := store.ListChannelConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c1", all[0].Key.ChannelID)
	assert.Equal(t, "c2", all[1].Key.ChannelID)

	// A write keeps every key, known or not
	require.NoError(t, store.SetUserLanguage(ctx, "u2", "en"))
	doc := readDocument(t, path)
	assert.Equal(t, map[string]any{"kept": true}, doc["legacy_notes"])
	assert.Equal(t, map[string]any{"u1": "ko", "u2": "en"}, doc["user_languages"])
	assert.Equal(t, map[string]any{"overall": float64(7), "by_channel": map[string]any{"g1-c1": float64(7)}}, doc["translation_stats"])
}

func TestJSONStore_PartialSettingsGetDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "translation_data.json")
	original := `{"translation_channels": {"g": {"c": ["en", "ja"]}}, "channel_settings": {"g": {"c": {"auto_delete": true}}}}`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	store, err := NewJSONStore(path)
	require.NoError(t, err)

	config, err := store.GetChannelConfig(context.Background(), entities.ChannelKey{GuildID: "g", ChannelID: "c"})
	require.NoError(t, err)

	expected := entities.DefaultSettings()
	expected.AutoDelete = true
	assert.Equal(t, expected, config.Settings)
}

func TestJSONStore_RoundTripIsStable(t *testing.T) {
	t.Parallel()
	store, path := newTestJSONStore(t)
	ctx := context.Background()

	key := entities.ChannelKey{GuildID: "g", ChannelID: "c"}
	require.NoError(t, store.SaveChannelConfig(ctx, entities.NewChannelConfig(key, []string{"en", "ja"})))
	require.NoError(t, store.SetUserLanguage(ctx, "u", "ja"))
	_, err := store.IncrementRelayed(ctx, key)
	require.NoError(t, err)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	reloaded, err := NewJSONStore(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.SetUserLanguage(ctx, "u", "ja"))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestNewJSONStore_MalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "translation_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path)
	assert.ErrorContains(t, err, "failed to load state file")
}

func TestJSONStore_FailedWriteKeepsPreviousState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "translation_data.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	err = store.SetUserLanguage(ctx, "u", "ja")
	require.Error(t, err)

	_, ok, err := store.GetUserLanguage(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)
}
