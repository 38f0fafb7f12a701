package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{"no database name", "postgres://u:p@host:5432", "", "postgres://u:p@host:5432"},
		{"plain", "postgres://u:p@host:5432", "relay", "postgres://u:p@host:5432/relay?sslmode=disable"},
		{"trailing slash", "postgres://u:p@host:5432/", "relay", "postgres://u:p@host:5432/relay?sslmode=disable"},
		{"existing query", "postgres://u:p@host:5432?connect_timeout=5", "relay", "postgres://u:p@host:5432/relay?connect_timeout=5&sslmode=disable"},
		{"existing sslmode", "postgres://u:p@host:5432?sslmode=require", "relay", "postgres://u:p@host:5432/relay?sslmode=require"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
