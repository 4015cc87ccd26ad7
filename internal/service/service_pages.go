// SPDX-License-Identifier: Apache-2.0

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

// pagesFolder is the upload subdirectory for CMS page images.
const pagesFolder = "pages"

// pageService manages CMS page content. Image slots are replace-on-update:
// uploading a slot that already holds a file stores the new one and removes
// the old one from disk.
type pageService struct {
	pageRepository store.PageRepository
	fileStore      FileStore
	logger         *logger.Logger
}

// NewPageService constructs a PageService.
func NewPageService(pageRepository store.PageRepository, fileStore FileStore, logger *logger.Logger) PageService {
	return &pageService{
		pageRepository: pageRepository,
		fileStore:      fileStore,
		logger:         logger,
	}
}

// SavePage creates or replaces the page stored under title. The free-form
// page object is replaced wholesale; image slots are merged, with new uploads
// replacing whatever the slot held before.
func (p *pageService) SavePage(ctx context.Context, title string, pageObj models.Document, images map[string]files.Upload) (models.Page, error) {
	log := logger.FromContext(ctx)

	if title == "" || pageObj == nil {
		return models.Page{}, ErrInvalidDataProvided
	}

	merged, err := p.replaceImageSlots(ctx, title, images, func() (models.FileMap, error) {
		existing, err := p.pageRepository.GetPageByTitle(ctx, title)
		if errors.Is(err, store.ErrPageNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return existing.Data.Images, nil
	})
	if err != nil {
		log.Err(err).Str("title", title).Msg("storing page images failed")
		return models.Page{}, fmt.Errorf("storing page images failed: %w", err)
	}

	saved, err := p.pageRepository.UpsertPage(ctx, title, models.PageData{PageObj: pageObj, Images: merged})
	if err != nil {
		log.Err(err).Str("title", title).Msg("page save failed")
		return models.Page{}, fmt.Errorf("page save failed: %w", err)
	}

	return saved, nil
}

// GetPage retrieves one page by its unique title.
func (p *pageService) GetPage(ctx context.Context, title string) (models.Page, error) {
	log := logger.FromContext(ctx)

	if title == "" {
		return models.Page{}, ErrInvalidDataProvided
	}

	page, err := p.pageRepository.GetPageByTitle(ctx, title)
	if err != nil {
		log.Err(err).Str("title", title).Msg("page lookup failed")
		return models.Page{}, fmt.Errorf("page lookup failed: %w", err)
	}

	return page, nil
}

// ListPageTitles returns every stored page title.
func (p *pageService) ListPageTitles(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	titles, err := p.pageRepository.ListPageTitles(ctx)
	if err != nil {
		log.Err(err).Msg("page title listing failed")
		return nil, fmt.Errorf("page title listing failed: %w", err)
	}

	return titles, nil
}

// ListPages returns one page of CMS pages.
func (p *pageService) ListPages(ctx context.Context, page models.PageRequest) (models.Paginated[models.Page], error) {
	log := logger.FromContext(ctx)

	page = page.Normalize()
	pages, total, err := p.pageRepository.ListPages(ctx, page)
	if err != nil {
		log.Err(err).Msg("page listing failed")
		return models.Paginated[models.Page]{}, fmt.Errorf("page listing failed: %w", err)
	}

	return models.NewPaginated(pages, total, page.Page, page.Limit), nil
}

// replaceImageSlots stores the uploaded image batch for one content entry
// and merges the resulting URLs over the current slots, deleting the files
// the overwritten slots pointed at. loadExisting supplies the current slot
// map; a not-found error means a fresh entry with no slots.
func (p *pageService) replaceImageSlots(ctx context.Context, title string, images map[string]files.Upload, loadExisting func() (models.FileMap, error)) (models.FileMap, error) {
	return replaceFileSlots(ctx, p.fileStore, path.Join(pagesFolder, title, "images"), files.CategoryImage, images, loadExisting)
}

// replaceFileSlots is the shared replace-on-update slot logic used by pages,
// services, and the configuration singleton. loadExisting returns the
// current slot map, or nil when the entry does not exist yet.
func replaceFileSlots(ctx context.Context, fileStore FileStore, folder string, category files.Category, uploads map[string]files.Upload, loadExisting func() (models.FileMap, error)) (models.FileMap, error) {
	existing, err := loadExisting()
	if err != nil {
		return nil, err
	}

	merged := make(models.FileMap, len(existing)+len(uploads))
	for slot, url := range existing {
		merged[slot] = url
	}

	if len(uploads) == 0 {
		return merged, nil
	}

	saved, err := fileStore.SaveWithKeys(ctx, uploads, folder, category)
	if err != nil {
		return nil, err
	}

	for slot, url := range saved {
		if old, ok := merged[slot]; ok && old != "" && old != url {
			fileStore.DeleteByURL(ctx, old)
		}
		merged[slot] = url
	}

	return merged, nil
}
