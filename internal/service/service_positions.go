// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// positionService manages job postings. Deleting a posting also removes its
// applications and their stored attachments, so a removed opening leaves no
// orphaned files behind.
type positionService struct {
	positionRepository    store.PositionRepository
	applicationRepository store.ApplicationRepository
	fileStore             FileStore
	logger                *logger.Logger
}

// NewPositionService constructs a PositionService.
func NewPositionService(positionRepository store.PositionRepository, applicationRepository store.ApplicationRepository, fileStore FileStore, logger *logger.Logger) PositionService {
	return &positionService{
		positionRepository:    positionRepository,
		applicationRepository: applicationRepository,
		fileStore:             fileStore,
		logger:                logger,
	}
}

// CreatePosition validates and persists a new posting.
func (p *positionService) CreatePosition(ctx context.Context, position models.Position) (models.Position, error) {
	log := logger.FromContext(ctx)

	if position.Name == "" || position.Location == "" || !models.ValidPositionType(position.Type) {
		log.Error().Str("name", position.Name).Str("type", string(position.Type)).Msg("invalid position data provided")
		return models.Position{}, ErrInvalidDataProvided
	}

	position.ID = utils.NewUUID()
	created, err := p.positionRepository.CreatePosition(ctx, position)
	if err != nil {
		log.Err(err).Str("name", position.Name).Msg("position creation failed")
		return models.Position{}, fmt.Errorf("position creation failed: %w", err)
	}

	return created, nil
}

// GetPosition retrieves one posting with its application count and
// summaries.
func (p *positionService) GetPosition(ctx context.Context, id string) (models.PositionWithApplications, error) {
	log := logger.FromContext(ctx)

	positionID, err := uuid.Parse(id)
	if err != nil {
		return models.PositionWithApplications{}, ErrInvalidID
	}

	position, err := p.positionRepository.GetPosition(ctx, positionID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("position lookup failed")
		return models.PositionWithApplications{}, fmt.Errorf("position lookup failed: %w", err)
	}

	return position, nil
}

// ListPositions returns one page of postings with applicant counts.
func (p *positionService) ListPositions(ctx context.Context, page models.PageRequest) (models.Paginated[models.PositionWithApplications], error) {
	log := logger.FromContext(ctx)

	page = page.Normalize()
	positions, total, err := p.positionRepository.ListPositions(ctx, page)
	if err != nil {
		log.Err(err).Msg("position listing failed")
		return models.Paginated[models.PositionWithApplications]{}, fmt.Errorf("position listing failed: %w", err)
	}

	return models.NewPaginated(positions, total, page.Page, page.Limit), nil
}

// UpdatePosition applies a partial update. A position type outside the
// declared set is rejected before touching the database.
func (p *positionService) UpdatePosition(ctx context.Context, id string, update models.PositionUpdate) (models.Position, error) {
	log := logger.FromContext(ctx)

	positionID, err := uuid.Parse(id)
	if err != nil {
		return models.Position{}, ErrInvalidID
	}
	if update.Type != nil && !models.ValidPositionType(*update.Type) {
		return models.Position{}, ErrInvalidDataProvided
	}

	updated, err := p.positionRepository.UpdatePosition(ctx, positionID, update)
	if err != nil {
		log.Err(err).Str("id", id).Msg("position update failed")
		return models.Position{}, fmt.Errorf("position update failed: %w", err)
	}

	return updated, nil
}

// DeletePosition removes a posting together with its applications and their
// stored attachments. Attachment removal is best-effort: a file that cannot
// be deleted never blocks removal of the database rows.
func (p *positionService) DeletePosition(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	positionID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	applications, err := p.applicationRepository.ListApplicationsByPosition(ctx, positionID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("listing applications for position deletion failed")
		return fmt.Errorf("listing applications for position deletion failed: %w", err)
	}

	for _, application := range applications {
		for _, url := range application.Files.URLs() {
			p.fileStore.DeleteByURL(ctx, url)
		}
	}

	if err := p.applicationRepository.DeleteApplicationsByPosition(ctx, positionID); err != nil {
		log.Err(err).Str("id", id).Msg("deleting applications for position failed")
		return fmt.Errorf("deleting applications for position failed: %w", err)
	}

	if err := p.positionRepository.DeletePosition(ctx, positionID); err != nil {
		log.Err(err).Str("id", id).Msg("position deletion failed")
		return fmt.Errorf("position deletion failed: %w", err)
	}

	return nil
}
