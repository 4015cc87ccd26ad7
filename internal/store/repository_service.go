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

// serviceRepository is the PostgreSQL-backed implementation of
// [ServiceRepository]. It mirrors the page repository: JSONB payloads keyed
// by unique title.
type serviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewServiceRepository constructs a [ServiceRepository] backed by the
// provided database connection and logger.
func NewServiceRepository(db *DB, logger *logger.Logger) ServiceRepository {
	logger.Debug().Msg("creating service repository")
	return &serviceRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertService inserts a service entry under the given title or, when the
// title already exists, replaces its payload wholesale.
func (r *serviceRepository) UpsertService(ctx context.Context, title string, data models.ServiceData) (models.Service, error) {
	log := logger.FromContext(ctx)

	encoded, err := encodeDocument(data)
	if err != nil {
		log.Err(err).Str("func", "*serviceRepository.UpsertService").Msg("error: encoding data")
		return models.Service{}, ErrEncodingDocument
	}

	row := r.db.QueryRowContext(ctx, upsertService, uuid.Must(uuid.NewV7()), title, encoded)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*serviceRepository.UpsertService").Msg("error: row is nil")
		return models.Service{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanServiceRow(row)
	if err != nil {
		log.Err(err).Str("func", "*serviceRepository.UpsertService").Msg("error: scanning error")
		return models.Service{}, err
	}

	return saved, nil
}

// GetServiceByTitle retrieves one service entry by its unique title.
func (r *serviceRepository) GetServiceByTitle(ctx context.Context, title string) (models.Service, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getServiceByTitle, title)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*serviceRepository.GetServiceByTitle").Msg("error: row is nil")
		return models.Service{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanServiceRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, ErrServiceNotFound
		}
		log.Err(err).Str("func", "*serviceRepository.GetServiceByTitle").Msg("error: scanning error")
		return models.Service{}, err
	}

	return found, nil
}

// ListServiceTitles returns every stored service title in lexical order.
func (r *serviceRepository) ListServiceTitles(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listServiceTitles)
	if err != nil {
		log.Err(err).Str("func", "*serviceRepository.ListServiceTitles").Msg("error: querying titles")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			log.Err(err).Str("func", "*serviceRepository.ListServiceTitles").Msg("error: scanning error")
			return nil, ErrScanningRows
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*serviceRepository.ListServiceTitles").Msg("error: iterating rows")
		return nil, ErrScanningRows
	}

	return titles, nil
}

// ListServices returns one page of service entries, newest first, together
// with the total count for pagination.
func (r *serviceRepository) ListServices(ctx context.Context, page models.PageRequest) ([]models.Service, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countServices).Scan(&total); err != nil {
		log.Err(err).Str("func", "*serviceRepository.ListServices").Msg("error: counting services")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listServices, page.Limit, page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*serviceRepository.ListServices").Msg("error: querying services")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	services := make([]models.Service, 0, page.Limit)
	for rows.Next() {
		s, err := scanServiceRow(rows)
		if err != nil {
			log.Err(err).Str("func", "*serviceRepository.ListServices").Msg("error: scanning error")
			return nil, 0, ErrScanningRows
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*serviceRepository.ListServices").Msg("error: iterating rows")
		return nil, 0, ErrScanningRows
	}

	return services, total, nil
}

func scanServiceRow(row rowScanner) (models.Service, error) {
	var (
		s    models.Service
		data []byte
	)
	if err := row.Scan(&s.ID, &s.Title, &data, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return models.Service{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.Data); err != nil {
			return models.Service{}, fmt.Errorf("decoding data column: %w", err)
		}
	}
	return s, nil
}
