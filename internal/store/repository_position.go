// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// positionRepository is the PostgreSQL-backed implementation of
// [PositionRepository]. Reads are joined against the applications table so
// every posting carries its applicant count.
type positionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPositionRepository constructs a [PositionRepository] backed by the
// provided database connection and logger.
func NewPositionRepository(db *DB, logger *logger.Logger) PositionRepository {
	logger.Debug().Msg("creating position repository")
	return &positionRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePosition persists a new job posting and returns the canonical
// database representation with server-assigned timestamps.
func (r *positionRepository) CreatePosition(ctx context.Context, position models.Position) (models.Position, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPosition,
		position.ID, position.Name, position.Location, position.Type,
		position.WhatWeOffer, position.WhyWeAreLooking, position.Responsibilities, position.Skills)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*positionRepository.CreatePosition").Msg("error: row is nil")
		return models.Position{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.Position
	if err := row.Scan(&saved.ID, &saved.Name, &saved.Location, &saved.Type,
		&saved.WhatWeOffer, &saved.WhyWeAreLooking, &saved.Responsibilities, &saved.Skills,
		&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*positionRepository.CreatePosition").Msg("error: scanning error")
		return models.Position{}, err
	}

	return saved, nil
}

// GetPosition retrieves one posting joined with its application count and
// the per-applicant summaries, newest application first.
func (r *positionRepository) GetPosition(ctx context.Context, id uuid.UUID) (models.PositionWithApplications, error) {
	log := logger.FromContext(ctx)

	var found models.PositionWithApplications
	row := r.db.QueryRowContext(ctx, getPositionWithCount, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*positionRepository.GetPosition").Msg("error: row is nil")
		return models.PositionWithApplications{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&found.ID, &found.Name, &found.Location, &found.Type,
		&found.WhatWeOffer, &found.WhyWeAreLooking, &found.Responsibilities, &found.Skills,
		&found.CreatedAt, &found.UpdatedAt, &found.ApplicationsCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PositionWithApplications{}, ErrPositionNotFound
		}
		log.Err(err).Str("func", "*positionRepository.GetPosition").Msg("error: scanning error")
		return models.PositionWithApplications{}, err
	}

	summaries, err := r.applicationSummaries(ctx, id)
	if err != nil {
		return models.PositionWithApplications{}, err
	}
	found.Applications = summaries

	return found, nil
}

// ListPositions returns one page of postings with their application counts,
// newest first, together with the total number of postings for pagination.
// Applicant summaries are only loaded on single-posting reads.
func (r *positionRepository) ListPositions(ctx context.Context, page models.PageRequest) ([]models.PositionWithApplications, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countPositions).Scan(&total); err != nil {
		log.Err(err).Str("func", "*positionRepository.ListPositions").Msg("error: counting positions")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listPositionsWithCount, page.Limit, page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*positionRepository.ListPositions").Msg("error: querying positions")
		return nil, 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	positions := make([]models.PositionWithApplications, 0, page.Limit)
	for rows.Next() {
		var p models.PositionWithApplications
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Type,
			&p.WhatWeOffer, &p.WhyWeAreLooking, &p.Responsibilities, &p.Skills,
			&p.CreatedAt, &p.UpdatedAt, &p.ApplicationsCount); err != nil {
			log.Err(err).Str("func", "*positionRepository.ListPositions").Msg("error: scanning error")
			return nil, 0, ErrScanningRows
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*positionRepository.ListPositions").Msg("error: iterating rows")
		return nil, 0, ErrScanningRows
	}

	return positions, total, nil
}

// UpdatePosition applies a partial update built from the non-nil fields of
// update and returns the posting after the change.
func (r *positionRepository) UpdatePosition(ctx context.Context, id uuid.UUID, update models.PositionUpdate) (models.Position, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("positions").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(`RETURNING id, name, location, type, what_we_offer, why_we_are_looking,
			responsibilities, skills, created_at, updated_at`).
		PlaceholderFormat(sq.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Location != nil {
		builder = builder.Set("location", *update.Location)
	}
	if update.Type != nil {
		builder = builder.Set("type", *update.Type)
	}
	if update.WhatWeOffer != nil {
		builder = builder.Set("what_we_offer", *update.WhatWeOffer)
	}
	if update.WhyWeAreLooking != nil {
		builder = builder.Set("why_we_are_looking", *update.WhyWeAreLooking)
	}
	if update.Responsibilities != nil {
		builder = builder.Set("responsibilities", *update.Responsibilities)
	}
	if update.Skills != nil {
		builder = builder.Set("skills", *update.Skills)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*positionRepository.UpdatePosition").Msg("error: building query")
		return models.Position{}, ErrBuildingSQLQuery
	}

	var saved models.Position
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&saved.ID, &saved.Name, &saved.Location, &saved.Type,
		&saved.WhatWeOffer, &saved.WhyWeAreLooking, &saved.Responsibilities, &saved.Skills,
		&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Position{}, ErrPositionNotFound
		}
		log.Err(err).Str("func", "*positionRepository.UpdatePosition").Msg("error: scanning error")
		return models.Position{}, err
	}

	return saved, nil
}

// DeletePosition removes a posting. Deleting an unknown id returns
// [ErrPositionNotFound].
func (r *positionRepository) DeletePosition(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deletePosition, id)
	if err != nil {
		log.Err(err).Str("func", "*positionRepository.DeletePosition").Msg("error: executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*positionRepository.DeletePosition").Msg("error: rows affected")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrPositionNotFound
	}

	return nil
}

func (r *positionRepository) applicationSummaries(ctx context.Context, positionID uuid.UUID) ([]models.ApplicationSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, applicationSummariesByPosition, positionID)
	if err != nil {
		log.Err(err).Str("func", "*positionRepository.applicationSummaries").Msg("error: querying summaries")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.ApplicationSummary, 0)
	for rows.Next() {
		var s models.ApplicationSummary
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Status, &s.CreatedAt); err != nil {
			log.Err(err).Str("func", "*positionRepository.applicationSummaries").Msg("error: scanning error")
			return nil, ErrScanningRows
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*positionRepository.applicationSummaries").Msg("error: iterating rows")
		return nil, ErrScanningRows
	}

	return summaries, nil
}
