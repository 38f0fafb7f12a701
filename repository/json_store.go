package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"relaybot/domain/entities"

	"github.com/google/renameio/v2"
	log "github.com/sirupsen/logrus"
)

// JSONStore keeps all state in a single JSON document.
// The whole document is rewritten atomically (temp file, then rename) after every mutation.
type JSONStore struct {
	path string
	mu   sync.RWMutex
	doc  *document
}

// NewJSONStore loads the document at path; a missing file starts an empty store
func NewJSONStore(path string) (*JSONStore, error) {
	store := &JSONStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		store.doc = newDocument()
		log.WithField("path", path).Info("No state file found, starting empty")
	case err != nil:
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	default:
		doc, err := decodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load state file %s: %w", path, err)
		}
		store.doc = doc
		log.WithFields(log.Fields{
			"path":    path,
			"guilds":  len(doc.channels),
			"users":   len(doc.users),
			"overall": doc.stats.Overall,
		}).Info("Loaded state file")
	}

	return store, nil
}

// GetChannelConfig returns the channel's configuration, or nil when not configured
func (s *JSONStore) GetChannelConfig(_ context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.channelConfig(key), nil
}

// SaveChannelConfig creates or replaces the channel's languages and settings
func (s *JSONStore) SaveChannelConfig(_ context.Context, config *entities.ChannelConfig) error {
	return s.mutate(func(doc *document) bool {
		doc.putChannelConfig(config)
		return true
	})
}

// DeleteChannelConfig removes the channel; nothing is written when it was not configured
func (s *JSONStore) DeleteChannelConfig(_ context.Context, key entities.ChannelKey) (bool, error) {
	var deleted bool
	err := s.mutate(func(doc *document) bool {
		deleted = doc.removeChannel(key)
		return deleted
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// ListChannelConfigs returns every configured channel ordered by guild then channel
func (s *JSONStore) ListChannelConfigs(_ context.Context) ([]*entities.ChannelConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configs []*entities.ChannelConfig
	for guildID, channels := range s.doc.channels {
		for channelID := range channels {
			if config := s.doc.channelConfig(entities.ChannelKey{GuildID: guildID, ChannelID: channelID}); config != nil {
				configs = append(configs, config)
			}
		}
	}
	sort.Slice(configs, func(i, j int) bool {
		if configs[i].Key.GuildID != configs[j].Key.GuildID {
			return configs[i].Key.GuildID < configs[j].Key.GuildID
		}
		return configs[i].Key.ChannelID < configs[j].Key.ChannelID
	})
	return configs, nil
}

// GetUserLanguage returns the user's language and whether one is set
func (s *JSONStore) GetUserLanguage(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.doc.users[userID]
	return code, ok, nil
}

// SetUserLanguage stores the user's language
func (s *JSONStore) SetUserLanguage(_ context.Context, userID, language string) error {
	return s.mutate(func(doc *document) bool {
		doc.users[userID] = language
		return true
	})
}

// IncrementRelayed adds one to the overall and per-channel counters
func (s *JSONStore) IncrementRelayed(_ context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	var stats entities.ChannelStats
	err := s.mutate(func(doc *document) bool {
		doc.stats.Overall++
		doc.stats.ByChannel[key.StatsKey()]++
		stats = entities.ChannelStats{
			Overall: doc.stats.Overall,
			Channel: doc.stats.ByChannel[key.StatsKey()],
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetChannelStats returns the overall and per-channel counters
func (s *JSONStore) GetChannelStats(_ context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &entities.ChannelStats{
		Overall: s.doc.stats.Overall,
		Channel: s.doc.stats.ChannelCount(key),
	}, nil
}

// Close flushes nothing; every mutation is already on disk
func (s *JSONStore) Close() error {
	return nil
}

// mutate applies fn under the write lock and persists the document when fn reports a change.
// A failed write restores the previous in-memory state.
func (s *JSONStore) mutate(fn func(doc *document) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.doc.clone()
	if !fn(s.doc) {
		return nil
	}

	if err := s.persist(); err != nil {
		s.doc = backup
		return err
	}
	return nil
}

// persist writes the document to a temp file in the same directory and renames it over the target
func (s *JSONStore) persist() error {
	data, err := s.doc.encode()
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}
