// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/models"
)

// ─────────────────────────────────────────────
// Mock: store.PageRepository
// ─────────────────────────────────────────────

type mockPageRepository struct {
	upsertFn     func(ctx context.Context, title string, data models.PageData) (models.Page, error)
	getByTitleFn func(ctx context.Context, title string) (models.Page, error)
	listTitlesFn func(ctx context.Context) ([]string, error)
	listFn       func(ctx context.Context, page models.PageRequest) ([]models.Page, int64, error)
}

func (m *mockPageRepository) UpsertPage(ctx context.Context, title string, data models.PageData) (models.Page, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, title, data)
	}
	return models.Page{Title: title, Data: data}, nil
}

func (m *mockPageRepository) GetPageByTitle(ctx context.Context, title string) (models.Page, error) {
	if m.getByTitleFn != nil {
		return m.getByTitleFn(ctx, title)
	}
	return models.Page{}, store.ErrPageNotFound
}

func (m *mockPageRepository) ListPageTitles(ctx context.Context) ([]string, error) {
	if m.listTitlesFn != nil {
		return m.listTitlesFn(ctx)
	}
	return nil, nil
}

func (m *mockPageRepository) ListPages(ctx context.Context, page models.PageRequest) ([]models.Page, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return nil, 0, nil
}

func heroImage() map[string]files.Upload {
	return map[string]files.Upload{
		"hero": {Name: "hero.png", ContentType: "image/png", Size: 10, Content: []byte("x")},
	}
}

// ─────────────────────────────────────────────
// SavePage
// ─────────────────────────────────────────────

func TestPageService_Save_NewPage(t *testing.T) {
	var upserted models.PageData
	pageRepo := &mockPageRepository{
		upsertFn: func(_ context.Context, title string, data models.PageData) (models.Page, error) {
			assert.Equal(t, "about", title)
			upserted = data
			return models.Page{Title: title, Data: data}, nil
		},
	}
	fileStore := &mockFileStore{}
	svc := NewPageService(pageRepo, fileStore, logger.Nop())

	pageObj := models.Document{"heading": map[string]any{"en": "About"}}
	saved, err := svc.SavePage(context.Background(), "about", pageObj, heroImage())
	require.NoError(t, err)

	assert.Equal(t, pageObj, upserted.PageObj)
	assert.Equal(t, "http://host/uploads/pages/about/images/hero.pdf", upserted.Images["hero"])
	assert.Empty(t, fileStore.deleted, "nothing to replace on a fresh page")
	assert.Equal(t, "about", saved.Title)
}

func TestPageService_Save_ReplacesImageSlot(t *testing.T) {
	oldURL := "http://host/uploads/pages/about/images/hero-old.png"
	existing := models.Page{
		Title: "about",
		Data: models.PageData{
			PageObj: models.Document{"heading": "old"},
			Images:  models.FileMap{"hero": oldURL, "footer": "http://host/uploads/pages/about/images/footer.png"},
		},
	}

	var upserted models.PageData
	pageRepo := &mockPageRepository{
		getByTitleFn: func(context.Context, string) (models.Page, error) { return existing, nil },
		upsertFn: func(_ context.Context, title string, data models.PageData) (models.Page, error) {
			upserted = data
			return models.Page{Title: title, Data: data}, nil
		},
	}
	fileStore := &mockFileStore{}
	svc := NewPageService(pageRepo, fileStore, logger.Nop())

	_, err := svc.SavePage(context.Background(), "about", models.Document{"heading": "new"}, heroImage())
	require.NoError(t, err)

	// the overwritten slot's old file is gone, untouched slots survive
	assert.Equal(t, []string{oldURL}, fileStore.deleted)
	assert.Equal(t, "http://host/uploads/pages/about/images/hero.pdf", upserted.Images["hero"])
	assert.Equal(t, existing.Data.Images["footer"], upserted.Images["footer"])
}

func TestPageService_Save_KeepsSlotsWithoutUploads(t *testing.T) {
	existing := models.Page{
		Title: "about",
		Data:  models.PageData{Images: models.FileMap{"hero": "http://host/uploads/pages/about/images/hero.png"}},
	}
	var upserted models.PageData
	pageRepo := &mockPageRepository{
		getByTitleFn: func(context.Context, string) (models.Page, error) { return existing, nil },
		upsertFn: func(_ context.Context, title string, data models.PageData) (models.Page, error) {
			upserted = data
			return models.Page{Title: title, Data: data}, nil
		},
	}
	svc := NewPageService(pageRepo, &mockFileStore{}, logger.Nop())

	_, err := svc.SavePage(context.Background(), "about", models.Document{"heading": "new"}, nil)
	require.NoError(t, err)
	assert.Equal(t, existing.Data.Images, upserted.Images)
}

func TestPageService_Save_InvalidData(t *testing.T) {
	svc := NewPageService(&mockPageRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.SavePage(context.Background(), "", models.Document{}, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.SavePage(context.Background(), "about", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestPageService_Save_PropagatesLookupError(t *testing.T) {
	// Only a missing page means "fresh entry"; a real storage error must
	// abort the save.
	pageRepo := &mockPageRepository{
		getByTitleFn: func(context.Context, string) (models.Page, error) {
			return models.Page{}, store.ErrExecutingQuery
		},
	}
	svc := NewPageService(pageRepo, &mockFileStore{}, logger.Nop())

	_, err := svc.SavePage(context.Background(), "about", models.Document{"heading": "new"}, nil)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ─────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────

func TestPageService_Get_NotFound(t *testing.T) {
	svc := NewPageService(&mockPageRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.GetPage(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrPageNotFound)
}

func TestPageService_Get_EmptyTitle(t *testing.T) {
	svc := NewPageService(&mockPageRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.GetPage(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestPageService_ListTitles(t *testing.T) {
	pageRepo := &mockPageRepository{
		listTitlesFn: func(context.Context) ([]string, error) { return []string{"about", "home"}, nil },
	}
	svc := NewPageService(pageRepo, &mockFileStore{}, logger.Nop())

	titles, err := svc.ListPageTitles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "home"}, titles)
}
