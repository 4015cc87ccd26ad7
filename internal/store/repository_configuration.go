package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// configurationRepository is the PostgreSQL-backed implementation of
// [ConfigurationRepository]. The table holds at most one row; SaveConfiguration
// inserts it on first use and replaces the payload afterwards.
type configurationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConfigurationRepository constructs a [ConfigurationRepository] backed by
// the provided database connection and logger.
func NewConfigurationRepository(db *DB, logger *logger.Logger) ConfigurationRepository {
	logger.Debug().Msg("creating configuration repository")
	return &configurationRepository{
		db:     db,
		logger: logger,
	}
}

// GetConfiguration retrieves the configuration singleton. A missing row maps
// to [ErrConfigurationNotFound].
func (r *configurationRepository) GetConfiguration(ctx context.Context) (models.Configuration, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getConfiguration)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*configurationRepository.GetConfiguration").Msg("error: row is nil")
		return models.Configuration{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanConfigurationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Configuration{}, ErrConfigurationNotFound
		}
		log.Err(err).Str("func", "*configurationRepository.GetConfiguration").Msg("error: scanning error")
		return models.Configuration{}, err
	}

	return found, nil
}

// SaveConfiguration replaces the configuration payload, creating the
// singleton row when none exists yet.
func (r *configurationRepository) SaveConfiguration(ctx context.Context, data models.ConfigurationData) (models.Configuration, error) {
	log := logger.FromContext(ctx)

	encoded, err := encodeDocument(data)
	if err != nil {
		log.Err(err).Str("func", "*configurationRepository.SaveConfiguration").Msg("error: encoding data")
		return models.Configuration{}, ErrEncodingDocument
	}

	existing, err := r.GetConfiguration(ctx)
	switch {
	case errors.Is(err, ErrConfigurationNotFound):
		row := r.db.QueryRowContext(ctx, insertConfiguration, uuid.Must(uuid.NewV7()), encoded)
		saved, err := scanConfigurationRow(row)
		if err != nil {
			log.Err(err).Str("func", "*configurationRepository.SaveConfiguration").Msg("error: scanning inserted row")
			return models.Configuration{}, err
		}
		return saved, nil
	case err != nil:
		return models.Configuration{}, err
	}

	row := r.db.QueryRowContext(ctx, updateConfiguration, existing.ID, encoded)
	saved, err := scanConfigurationRow(row)
	if err != nil {
		log.Err(err).Str("func", "*configurationRepository.SaveConfiguration").Msg("error: scanning updated row")
		return models.Configuration{}, err
	}

	return saved, nil
}

func scanConfigurationRow(row rowScanner) (models.Configuration, error) {
	var (
		c    models.Configuration
		data []byte
	)
	if err := row.Scan(&c.ID, &data, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Configuration{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c.Data); err != nil {
			return models.Configuration{}, fmt.Errorf("decoding data column: %w", err)
		}
	}
	return c, nil
}
