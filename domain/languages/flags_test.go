package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFlagTable(t *testing.T) {
	table := DefaultFlagTable()

	assert.Equal(t, 12, table.Len())
	assert.Equal(t, "🇯🇵", table.Flag("ja"))
	assert.Equal(t, "🇨🇳", table.Flag("ZH-CN"))
	assert.Equal(t, "", table.Flag("xx"))
}

func TestLoadFlagTable(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		table, err := LoadFlagTable(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Equal(t, 12, table.Len())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flags.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"EN": "🇬🇧", "nl": "🇳🇱"}`), 0o644))

		table, err := LoadFlagTable(path)
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
		assert.Equal(t, "🇬🇧", table.Flag("en"))
		assert.Equal(t, "", table.Flag("ja"))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flags.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o644))

		_, err := LoadFlagTable(path)
		assert.Error(t, err)
	})
}

func TestFlagTable_Entries(t *testing.T) {
	table := NewFlagTable(map[string]string{"ja": "J", "de": "D", "en": "E"})

	assert.Equal(t, []Entry{{"de", "D"}, {"en", "E"}, {"ja", "J"}}, table.Entries())
}
