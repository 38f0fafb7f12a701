package repository

import (
	"context"
	"errors"
	"fmt"

	"relaybot/database"
	"relaybot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// overallStatKey is the translation_stats row holding the global counter
const overallStatKey = "overall"

// PostgresStore persists state row by row in Postgres
type PostgresStore struct {
	db *database.DB
	q  Queryable
}

// NewPostgresStore creates a store backed by the given connection pool
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db.Pool}
}

// GetChannelConfig returns the channel's configuration, or nil when not configured
func (s *PostgresStore) GetChannelConfig(ctx context.Context, key entities.ChannelKey) (*entities.ChannelConfig, error) {
	query := `
		SELECT languages, auto_delete, auto_delete_seconds, show_flags, embed_color, max_translation_length
		FROM translation_channels
		WHERE guild_id = $1 AND channel_id = $2
	`

	config := &entities.ChannelConfig{Key: key}
	err := s.q.QueryRow(ctx, query, key.GuildID, key.ChannelID).Scan(
		&config.Languages,
		&config.Settings.AutoDelete,
		&config.Settings.AutoDeleteSeconds,
		&config.Settings.ShowFlags,
		&config.Settings.EmbedColor,
		&config.Settings.MaxTranslationLength,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel config for %s: %w", key, err)
	}

	return config, nil
}

// SaveChannelConfig upserts the channel's languages and settings
func (s *PostgresStore) SaveChannelConfig(ctx context.Context, config *entities.ChannelConfig) error {
	query := `
		INSERT INTO translation_channels (
			guild_id, channel_id, languages,
			auto_delete, auto_delete_seconds, show_flags, embed_color, max_translation_length
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (guild_id, channel_id) DO UPDATE SET
			languages = EXCLUDED.languages,
			auto_delete = EXCLUDED.auto_delete,
			auto_delete_seconds = EXCLUDED.auto_delete_seconds,
			show_flags = EXCLUDED.show_flags,
			embed_color = EXCLUDED.embed_color,
			max_translation_length = EXCLUDED.max_translation_length,
			updated_at = NOW()
	`

	_, err := s.q.Exec(ctx, query,
		config.Key.GuildID,
		config.Key.ChannelID,
		config.Languages,
		config.Settings.AutoDelete,
		config.Settings.AutoDeleteSeconds,
		config.Settings.ShowFlags,
		config.Settings.EmbedColor,
		config.Settings.MaxTranslationLength,
	)
	if err != nil {
		return fmt.Errorf("failed to save channel config for %s: %w", config.Key, err)
	}
	return nil
}

// DeleteChannelConfig removes the channel's row and reports whether it existed
func (s *PostgresStore) DeleteChannelConfig(ctx context.Context, key entities.ChannelKey) (bool, error) {
	tag, err := s.q.Exec(ctx,
		`DELETE FROM translation_channels WHERE guild_id = $1 AND channel_id = $2`,
		key.GuildID, key.ChannelID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete channel config for %s: %w", key, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListChannelConfigs returns every configured channel ordered by guild then channel
func (s *PostgresStore) ListChannelConfigs(ctx context.Context) ([]*entities.ChannelConfig, error) {
	query := `
		SELECT guild_id, channel_id, languages, auto_delete, auto_delete_seconds,
		       show_flags, embed_color, max_translation_length
		FROM translation_channels
		ORDER BY guild_id, channel_id
	`

	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel configs: %w", err)
	}
	defer rows.Close()

	var configs []*entities.ChannelConfig
	for rows.Next() {
		config := &entities.ChannelConfig{}
		if err := rows.Scan(
			&config.Key.GuildID,
			&config.Key.ChannelID,
			&config.Languages,
			&config.Settings.AutoDelete,
			&config.Settings.AutoDeleteSeconds,
			&config.Settings.ShowFlags,
			&config.Settings.EmbedColor,
			&config.Settings.MaxTranslationLength,
		); err != nil {
			return nil, fmt.Errorf("failed to scan channel config: %w", err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel configs: %w", err)
	}

	return configs, nil
}

// GetUserLanguage returns the user's language and whether one is set
func (s *PostgresStore) GetUserLanguage(ctx context.Context, userID string) (string, bool, error) {
	var language string
	err := s.q.QueryRow(ctx, `SELECT language FROM user_languages WHERE user_id = $1`, userID).Scan(&language)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get language for user %s: %w", userID, err)
	}
	return language, true, nil
}

// SetUserLanguage upserts the user's language
func (s *PostgresStore) SetUserLanguage(ctx context.Context, userID, language string) error {
	query := `
		INSERT INTO user_languages (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()
	`
	if _, err := s.q.Exec(ctx, query, userID, language); err != nil {
		return fmt.Errorf("failed to set language for user %s: %w", userID, err)
	}
	return nil
}

// IncrementRelayed bumps the overall and per-channel counters in one transaction
func (s *PostgresStore) IncrementRelayed(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	query := `
		INSERT INTO translation_stats (stat_key, count)
		VALUES ($1, 1)
		ON CONFLICT (stat_key) DO UPDATE SET count = translation_stats.count + 1
		RETURNING count
	`

	var stats entities.ChannelStats
	err := s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, overallStatKey).Scan(&stats.Overall); err != nil {
			return fmt.Errorf("failed to increment overall counter: %w", err)
		}
		if err := tx.QueryRow(ctx, query, key.StatsKey()).Scan(&stats.Channel); err != nil {
			return fmt.Errorf("failed to increment channel counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetChannelStats returns the overall and per-channel counters
func (s *PostgresStore) GetChannelStats(ctx context.Context, key entities.ChannelKey) (*entities.ChannelStats, error) {
	query := `
		SELECT
			COALESCE((SELECT count FROM translation_stats WHERE stat_key = $1), 0),
			COALESCE((SELECT count FROM translation_stats WHERE stat_key = $2), 0)
	`

	var stats entities.ChannelStats
	if err := s.q.QueryRow(ctx, query, overallStatKey, key.StatsKey()).Scan(&stats.Overall, &stats.Channel); err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", key, err)
	}
	return &stats, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
