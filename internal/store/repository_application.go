// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// applicationRepository is the PostgreSQL-backed implementation of
// [ApplicationRepository]. Attachment URLs are stored in a JSONB "files"
// column keyed by logical slot name.
type applicationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewApplicationRepository constructs an [ApplicationRepository] backed by
// the provided database connection and logger.
func NewApplicationRepository(db *DB, logger *logger.Logger) ApplicationRepository {
	logger.Debug().Msg("creating application repository")
	return &applicationRepository{
		db:     db,
		logger: logger,
	}
}

// CreateApplication persists a new application and returns the canonical
// database representation with server-assigned timestamps.
func (r *applicationRepository) CreateApplication(ctx context.Context, application models.Application) (models.Application, error) {
	log := logger.FromContext(ctx)

	files, err := encodeDocument(application.Files)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CreateApplication").Msg("error: encoding files")
		return models.Application{}, ErrEncodingDocument
	}

	row := r.db.QueryRowContext(ctx, createApplication,
		application.ID, application.FirstName, application.LastName, application.Email,
		application.Phone, application.AvailableFrom, application.Location,
		application.ExpectedSalary, files, application.Status, application.PositionID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*applicationRepository.CreateApplication").Msg("error: row is nil")
		return models.Application{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanApplicationRow(row)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CreateApplication").Msg("error: scanning error")
		return models.Application{}, err
	}

	return saved, nil
}

// GetApplication retrieves one application by id.
func (r *applicationRepository) GetApplication(ctx context.Context, id uuid.UUID) (models.Application, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getApplicationByID, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*applicationRepository.GetApplication").Msg("error: row is nil")
		return models.Application{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanApplicationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Application{}, ErrApplicationNotFound
		}
		log.Err(err).Str("func", "*applicationRepository.GetApplication").Msg("error: scanning error")
		return models.Application{}, err
	}

	return found, nil
}

// ListApplications returns one page of applications matching the filter,
// newest first, together with the total count of matches for pagination.
func (r *applicationRepository) ListApplications(ctx context.Context, filter ApplicationFilter, page models.PageRequest) ([]models.Application, int64, error) {
	log := logger.FromContext(ctx)

	where := applicationConditions(filter)

	countBuilder := sq.Select("COUNT(*)").From("applications").PlaceholderFormat(sq.Dollar)
	for _, cond := range where {
		countBuilder = countBuilder.Where(cond)
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplications").Msg("error: building count query")
		return nil, 0, ErrBuildingSQLQuery
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplications").Msg("error: counting applications")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	listBuilder := sq.Select("id", "first_name", "last_name", "email", "phone", "available_from",
		"location", "expected_salary", "files", "status", "position_id", "created_at", "updated_at").
		From("applications").
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		PlaceholderFormat(sq.Dollar)
	for _, cond := range where {
		listBuilder = listBuilder.Where(cond)
	}
	query, args, err := listBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplications").Msg("error: building list query")
		return nil, 0, ErrBuildingSQLQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplications").Msg("error: querying applications")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	applications, err := collectApplications(rows)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplications").Msg("error: scanning rows")
		return nil, 0, err
	}

	return applications, total, nil
}

// ListApplicationsByPosition returns every application linked to the given
// posting, newest first. Used when a posting is deleted so stored attachment
// files can be cleaned up before the rows go away.
func (r *applicationRepository) ListApplicationsByPosition(ctx context.Context, positionID uuid.UUID) ([]models.Application, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listApplicationsByPosition, positionID)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplicationsByPosition").Msg("error: querying applications")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	applications, err := collectApplications(rows)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.ListApplicationsByPosition").Msg("error: scanning rows")
		return nil, err
	}

	return applications, nil
}

// CountApplicationsByMonth aggregates application volume per calendar month
// over the whole table, oldest month first.
func (r *applicationRepository) CountApplicationsByMonth(ctx context.Context) ([]MonthBucket, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"EXTRACT(YEAR FROM created_at)::int AS year",
		"EXTRACT(MONTH FROM created_at)::int AS month",
		"COUNT(*) AS count").
		From("applications").
		GroupBy("1", "2").
		OrderBy("1", "2").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByMonth").Msg("error: building query")
		return nil, ErrBuildingSQLQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByMonth").Msg("error: querying month buckets")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	buckets := make([]MonthBucket, 0)
	for rows.Next() {
		var (
			b     MonthBucket
			month int
		)
		if err := rows.Scan(&b.Year, &month, &b.Count); err != nil {
			log.Err(err).Str("func", "*applicationRepository.CountApplicationsByMonth").Msg("error: scanning error")
			return nil, ErrScanningRows
		}
		b.Month = time.Month(month)
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByMonth").Msg("error: iterating rows")
		return nil, ErrScanningRows
	}

	return buckets, nil
}

// CountApplicationsByPosition aggregates application volume per posting,
// busiest posting first. Applications with no posting form a bucket whose
// Position is nil.
func (r *applicationRepository) CountApplicationsByPosition(ctx context.Context) ([]PositionBucket, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("p.name", "COUNT(*) AS count").
		From("applications a").
		LeftJoin("positions p ON p.id = a.position_id").
		GroupBy("p.name").
		OrderBy("count DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByPosition").Msg("error: building query")
		return nil, ErrBuildingSQLQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByPosition").Msg("error: querying position buckets")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	buckets := make([]PositionBucket, 0)
	for rows.Next() {
		var b PositionBucket
		if err := rows.Scan(&b.Position, &b.Count); err != nil {
			log.Err(err).Str("func", "*applicationRepository.CountApplicationsByPosition").Msg("error: scanning error")
			return nil, ErrScanningRows
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*applicationRepository.CountApplicationsByPosition").Msg("error: iterating rows")
		return nil, ErrScanningRows
	}

	return buckets, nil
}

// UpdateApplicationStatus moves an application to a new review state and
// returns the row after the change.
func (r *applicationRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (models.Application, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateApplicationStatus, id, status)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*applicationRepository.UpdateApplicationStatus").Msg("error: row is nil")
		return models.Application{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanApplicationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Application{}, ErrApplicationNotFound
		}
		log.Err(err).Str("func", "*applicationRepository.UpdateApplicationStatus").Msg("error: scanning error")
		return models.Application{}, err
	}

	return saved, nil
}

// DeleteApplication removes one application. Deleting an unknown id returns
// [ErrApplicationNotFound].
func (r *applicationRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteApplication, id)
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.DeleteApplication").Msg("error: executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*applicationRepository.DeleteApplication").Msg("error: rows affected")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// DeleteApplicationsByPosition removes every application linked to the given
// posting. Removing zero rows is not an error.
func (r *applicationRepository) DeleteApplicationsByPosition(ctx context.Context, positionID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteApplicationsByPosition, positionID); err != nil {
		log.Err(err).Str("func", "*applicationRepository.DeleteApplicationsByPosition").Msg("error: executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// applicationConditions translates the filter into squirrel WHERE clauses.
// Unassigned wins over PositionID when both are set.
func applicationConditions(filter ApplicationFilter) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}
	if filter.Unassigned {
		conds = append(conds, sq.Eq{"position_id": nil})
	} else if filter.PositionID != nil {
		conds = append(conds, sq.Eq{"position_id": *filter.PositionID})
	}
	return conds
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicationRow(row rowScanner) (models.Application, error) {
	var (
		a     models.Application
		files []byte
	)
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.AvailableFrom,
		&a.Location, &a.ExpectedSalary, &files, &a.Status, &a.PositionID,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Application{}, err
	}
	if len(files) > 0 {
		if err := json.Unmarshal(files, &a.Files); err != nil {
			return models.Application{}, fmt.Errorf("decoding files column: %w", err)
		}
	}
	return a, nil
}

func collectApplications(rows *sql.Rows) ([]models.Application, error) {
	applications := make([]models.Application, 0)
	for rows.Next() {
		a, err := scanApplicationRow(rows)
		if err != nil {
			return nil, ErrScanningRows
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrScanningRows
	}
	return applications, nil
}

// encodeDocument marshals a JSONB column value.
func encodeDocument(v any) ([]byte, error) {
	return json.Marshal(v)
}
