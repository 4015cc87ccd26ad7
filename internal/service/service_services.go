package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/models"
)

// servicesFolder is the upload subdirectory for service entry images.
const servicesFolder = "services"

// serviceEntryService manages the CMS service catalog. It mirrors the page
// service: title-keyed JSON payloads with replace-on-update image slots.
type serviceEntryService struct {
	serviceRepository store.ServiceRepository
	fileStore         FileStore
	logger            *logger.Logger
}

// NewServiceEntryService constructs a ServiceEntryService.
func NewServiceEntryService(serviceRepository store.ServiceRepository, fileStore FileStore, logger *logger.Logger) ServiceEntryService {
	return &serviceEntryService{
		serviceRepository: serviceRepository,
		fileStore:         fileStore,
		logger:            logger,
	}
}

// SaveService creates or replaces the service entry stored under title.
func (s *serviceEntryService) SaveService(ctx context.Context, title string, serviceObj models.Document, images map[string]files.Upload) (models.Service, error) {
	log := logger.FromContext(ctx)

	if title == "" || serviceObj == nil {
		return models.Service{}, ErrInvalidDataProvided
	}

	folder := path.Join(servicesFolder, title, "images")
	merged, err := replaceFileSlots(ctx, s.fileStore, folder, files.CategoryImage, images, func() (models.FileMap, error) {
		existing, err := s.serviceRepository.GetServiceByTitle(ctx, title)
		if errors.Is(err, store.ErrServiceNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return existing.Data.Images, nil
	})
	if err != nil {
		log.Err(err).Str("title", title).Msg("storing service images failed")
		return models.Service{}, fmt.Errorf("storing service images failed: %w", err)
	}

	saved, err := s.serviceRepository.UpsertService(ctx, title, models.ServiceData{ServiceObj: serviceObj, Images: merged})
	if err != nil {
		log.Err(err).Str("title", title).Msg("service save failed")
		return models.Service{}, fmt.Errorf("service save failed: %w", err)
	}

	return saved, nil
}

// GetService retrieves one service entry by its unique title.
func (s *serviceEntryService) GetService(ctx context.Context, title string) (models.Service, error) {
	log := logger.FromContext(ctx)

	if title == "" {
		return models.Service{}, ErrInvalidDataProvided
	}

	entry, err := s.serviceRepository.GetServiceByTitle(ctx, title)
	if err != nil {
		log.Err(err).Str("title", title).Msg("service lookup failed")
		return models.Service{}, fmt.Errorf("service lookup failed: %w", err)
	}

	return entry, nil
}

// ListServiceTitles returns every stored service title.
func (s *serviceEntryService) ListServiceTitles(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	titles, err := s.serviceRepository.ListServiceTitles(ctx)
	if err != nil {
		log.Err(err).Msg("service title listing failed")
		return nil, fmt.Errorf("service title listing failed: %w", err)
	}

	return titles, nil
}

// ListServices returns one page of service entries.
func (s *serviceEntryService) ListServices(ctx context.Context, page models.PageRequest) (models.Paginated[models.Service], error) {
	log := logger.FromContext(ctx)

	page = page.Normalize()
	services, total, err := s.serviceRepository.ListServices(ctx, page)
	if err != nil {
		log.Err(err).Msg("service listing failed")
		return models.Paginated[models.Service]{}, fmt.Errorf("service listing failed: %w", err)
	}

	return models.NewPaginated(services, total, page.Page, page.Limit), nil
}
