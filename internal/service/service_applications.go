// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// applicationsFolder is the upload subdirectory for applicant attachments.
const applicationsFolder = "applications"

// applicationService manages job applications submitted through the public
// careers form. Attachments arrive as a keyed batch (cv, coverLetter, ...)
// and are stored all-or-nothing before the database row is written.
type applicationService struct {
	applicationRepository store.ApplicationRepository
	positionRepository    store.PositionRepository
	fileStore             FileStore
	logger                *logger.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(applicationRepository store.ApplicationRepository, positionRepository store.PositionRepository, fileStore FileStore, logger *logger.Logger) ApplicationService {
	return &applicationService{
		applicationRepository: applicationRepository,
		positionRepository:    positionRepository,
		fileStore:             fileStore,
		logger:                logger,
	}
}

// SubmitApplication validates the form fields, stores the keyed attachment
// batch, and persists the application. When file storage fails no attachment
// remains on disk; when persistence fails the already stored attachments are
// removed again.
//
// Returns:
//   - ErrInvalidDataProvided when first name or email is missing.
//   - ErrUnknownFileKey when an upload targets an undeclared slot.
//   - store.ErrPositionNotFound when the referenced posting does not exist.
//   - A *files.KeyError wrapping the per-file validation failure.
func (a *applicationService) SubmitApplication(ctx context.Context, application models.Application, uploads map[string]files.Upload) (models.Application, error) {
	log := logger.FromContext(ctx)

	if application.FirstName == "" || application.Email == "" {
		log.Error().Str("email", application.Email).Msg("invalid application data provided")
		return models.Application{}, ErrInvalidDataProvided
	}
	for key := range uploads {
		if !slices.Contains(models.ApplicationFileKeys, key) {
			return models.Application{}, fmt.Errorf("%w: %q", ErrUnknownFileKey, key)
		}
	}

	if application.PositionID != nil {
		if _, err := a.positionRepository.GetPosition(ctx, *application.PositionID); err != nil {
			log.Err(err).Str("positionId", application.PositionID.String()).Msg("position lookup for application failed")
			return models.Application{}, fmt.Errorf("position lookup for application failed: %w", err)
		}
	}

	saved, err := a.fileStore.SaveWithKeys(ctx, uploads, applicationsFolder, files.CategoryFile)
	if err != nil {
		log.Err(err).Msg("storing application attachments failed")
		return models.Application{}, fmt.Errorf("storing application attachments failed: %w", err)
	}

	application.ID = utils.NewUUID()
	application.Status = models.ApplicationPending
	application.Files = make(models.ApplicationFiles, len(models.ApplicationFileKeys))
	for _, key := range models.ApplicationFileKeys {
		if url, ok := saved[key]; ok {
			u := url
			application.Files[key] = &u
		} else {
			application.Files[key] = nil
		}
	}

	created, err := a.applicationRepository.CreateApplication(ctx, application)
	if err != nil {
		for _, url := range saved {
			a.fileStore.DeleteByURL(ctx, url)
		}
		log.Err(err).Str("email", application.Email).Msg("application creation failed")
		return models.Application{}, fmt.Errorf("application creation failed: %w", err)
	}

	return created, nil
}

// GetApplication retrieves one application by its string id.
func (a *applicationService) GetApplication(ctx context.Context, id string) (models.Application, error) {
	log := logger.FromContext(ctx)

	applicationID, err := uuid.Parse(id)
	if err != nil {
		return models.Application{}, ErrInvalidID
	}

	application, err := a.applicationRepository.GetApplication(ctx, applicationID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("application lookup failed")
		return models.Application{}, fmt.Errorf("application lookup failed: %w", err)
	}

	return application, nil
}

// ListApplications returns one page of applications matching the filter.
// filter.PositionID accepts a posting id or the literal "none" to select
// applications submitted without a position.
func (a *applicationService) ListApplications(ctx context.Context, filter ApplicationListFilter, page models.PageRequest) (models.Paginated[models.Application], error) {
	log := logger.FromContext(ctx)

	storeFilter := store.ApplicationFilter{}
	if filter.Status != "" {
		status := models.ApplicationStatus(filter.Status)
		if !models.ValidApplicationStatus(status) {
			return models.Paginated[models.Application]{}, ErrInvalidDataProvided
		}
		storeFilter.Status = status
	}
	switch filter.PositionID {
	case "":
	case "none":
		storeFilter.Unassigned = true
	default:
		positionID, err := uuid.Parse(filter.PositionID)
		if err != nil {
			return models.Paginated[models.Application]{}, ErrInvalidID
		}
		storeFilter.PositionID = &positionID
	}

	page = page.Normalize()
	applications, total, err := a.applicationRepository.ListApplications(ctx, storeFilter, page)
	if err != nil {
		log.Err(err).Msg("application listing failed")
		return models.Paginated[models.Application]{}, fmt.Errorf("application listing failed: %w", err)
	}

	return models.NewPaginated(applications, total, page.Page, page.Limit), nil
}

// GetApplicationStatistics aggregates application volumes for the admin
// dashboard: headline totals, a month-by-month breakdown, and per-posting
// counts. year narrows the monthly breakdown to one year; month (1-12,
// requires year) additionally singles out that month. Zero means no filter.
// The headline totals always cover the whole table.
func (a *applicationService) GetApplicationStatistics(ctx context.Context, year, month int) (models.ApplicationStatistics, error) {
	log := logger.FromContext(ctx)

	if month != 0 && (month < 1 || month > 12) {
		return models.ApplicationStatistics{}, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidDataProvided)
	}
	if month != 0 && year == 0 {
		return models.ApplicationStatistics{}, fmt.Errorf("%w: month filter requires a year", ErrInvalidDataProvided)
	}

	months, err := a.applicationRepository.CountApplicationsByMonth(ctx)
	if err != nil {
		log.Err(err).Msg("monthly application aggregation failed")
		return models.ApplicationStatistics{}, fmt.Errorf("monthly application aggregation failed: %w", err)
	}
	positions, err := a.applicationRepository.CountApplicationsByPosition(ctx)
	if err != nil {
		log.Err(err).Msg("per-position application aggregation failed")
		return models.ApplicationStatistics{}, fmt.Errorf("per-position application aggregation failed: %w", err)
	}

	now := time.Now()
	stats := models.ApplicationStatistics{
		MonthlyDistribution: make([]models.MonthlyCount, 0, len(months)),
		ByPosition:          make([]models.PositionCount, 0, len(positions)),
	}

	for _, b := range months {
		stats.Summary.TotalApplications += b.Count
		if b.Year == now.Year() && b.Month == now.Month() {
			stats.Summary.ThisMonthCount = b.Count
		}
		if year != 0 && b.Year != year {
			continue
		}
		entry := models.MonthlyCount{Year: b.Year, Month: monthAbbrev(b.Month), Count: b.Count}
		stats.MonthlyDistribution = append(stats.MonthlyDistribution, entry)
		if month != 0 && b.Month == time.Month(month) {
			filtered := entry
			stats.FilteredMonth = &filtered
		}
	}
	// a filtered month with no applications still renders, with count zero
	if month != 0 && stats.FilteredMonth == nil {
		stats.FilteredMonth = &models.MonthlyCount{Year: year, Month: monthAbbrev(time.Month(month))}
	}

	for _, b := range positions {
		name := "No position"
		if b.Position != nil {
			name = *b.Position
		}
		stats.ByPosition = append(stats.ByPosition, models.PositionCount{Position: name, Count: b.Count})
	}

	return stats, nil
}

// monthAbbrev renders a month the way the dashboard expects it ("Jan").
func monthAbbrev(m time.Month) string {
	return m.String()[:3]
}

// UpdateApplicationStatus moves an application to a new review state.
func (a *applicationService) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	log := logger.FromContext(ctx)

	applicationID, err := uuid.Parse(id)
	if err != nil {
		return models.Application{}, ErrInvalidID
	}
	if !models.ValidApplicationStatus(status) {
		return models.Application{}, ErrInvalidDataProvided
	}

	updated, err := a.applicationRepository.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		log.Err(err).Str("id", id).Msg("application status update failed")
		return models.Application{}, fmt.Errorf("application status update failed: %w", err)
	}

	return updated, nil
}

// DeleteApplication removes an application and its stored attachments.
// Attachment removal is best-effort and never blocks row deletion.
func (a *applicationService) DeleteApplication(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	applicationID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	application, err := a.applicationRepository.GetApplication(ctx, applicationID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("application lookup for deletion failed")
		return fmt.Errorf("application lookup for deletion failed: %w", err)
	}

	for _, url := range application.Files.URLs() {
		a.fileStore.DeleteByURL(ctx, url)
	}

	if err := a.applicationRepository.DeleteApplication(ctx, applicationID); err != nil {
		log.Err(err).Str("id", id).Msg("application deletion failed")
		return fmt.Errorf("application deletion failed: %w", err)
	}

	return nil
}
