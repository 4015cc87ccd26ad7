// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/models"
)

// ─────────────────────────────────────────────
// Mocks: store.ApplicationRepository, store.PositionRepository, FileStore
// ─────────────────────────────────────────────

type mockApplicationRepository struct {
	createFn         func(ctx context.Context, application models.Application) (models.Application, error)
	getFn            func(ctx context.Context, id uuid.UUID) (models.Application, error)
	listFn           func(ctx context.Context, filter store.ApplicationFilter, page models.PageRequest) ([]models.Application, int64, error)
	listByPositionFn func(ctx context.Context, positionID uuid.UUID) ([]models.Application, error)
	countByMonthFn   func(ctx context.Context) ([]store.MonthBucket, error)
	countByPosFn     func(ctx context.Context) ([]store.PositionBucket, error)
	updateStatusFn   func(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (models.Application, error)
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	deleteByPosFn    func(ctx context.Context, positionID uuid.UUID) error
}

func (m *mockApplicationRepository) CreateApplication(ctx context.Context, application models.Application) (models.Application, error) {
	if m.createFn != nil {
		return m.createFn(ctx, application)
	}
	return application, nil
}

func (m *mockApplicationRepository) GetApplication(ctx context.Context, id uuid.UUID) (models.Application, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Application{}, store.ErrApplicationNotFound
}

func (m *mockApplicationRepository) ListApplications(ctx context.Context, filter store.ApplicationFilter, page models.PageRequest) ([]models.Application, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, page)
	}
	return nil, 0, nil
}

func (m *mockApplicationRepository) ListApplicationsByPosition(ctx context.Context, positionID uuid.UUID) ([]models.Application, error) {
	if m.listByPositionFn != nil {
		return m.listByPositionFn(ctx, positionID)
	}
	return nil, nil
}

func (m *mockApplicationRepository) CountApplicationsByMonth(ctx context.Context) ([]store.MonthBucket, error) {
	if m.countByMonthFn != nil {
		return m.countByMonthFn(ctx)
	}
	return nil, nil
}

func (m *mockApplicationRepository) CountApplicationsByPosition(ctx context.Context) ([]store.PositionBucket, error) {
	if m.countByPosFn != nil {
		return m.countByPosFn(ctx)
	}
	return nil, nil
}

func (m *mockApplicationRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (models.Application, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return models.Application{}, store.ErrApplicationNotFound
}

func (m *mockApplicationRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockApplicationRepository) DeleteApplicationsByPosition(ctx context.Context, positionID uuid.UUID) error {
	if m.deleteByPosFn != nil {
		return m.deleteByPosFn(ctx, positionID)
	}
	return nil
}

type mockPositionRepository struct {
	createFn func(ctx context.Context, position models.Position) (models.Position, error)
	getFn    func(ctx context.Context, id uuid.UUID) (models.PositionWithApplications, error)
	listFn   func(ctx context.Context, page models.PageRequest) ([]models.PositionWithApplications, int64, error)
	updateFn func(ctx context.Context, id uuid.UUID, update models.PositionUpdate) (models.Position, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPositionRepository) CreatePosition(ctx context.Context, position models.Position) (models.Position, error) {
	if m.createFn != nil {
		return m.createFn(ctx, position)
	}
	return position, nil
}

func (m *mockPositionRepository) GetPosition(ctx context.Context, id uuid.UUID) (models.PositionWithApplications, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.PositionWithApplications{}, store.ErrPositionNotFound
}

func (m *mockPositionRepository) ListPositions(ctx context.Context, page models.PageRequest) ([]models.PositionWithApplications, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return nil, 0, nil
}

func (m *mockPositionRepository) UpdatePosition(ctx context.Context, id uuid.UUID, update models.PositionUpdate) (models.Position, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.Position{}, store.ErrPositionNotFound
}

func (m *mockPositionRepository) DeletePosition(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockFileStore records interactions and answers keyed saves with
// deterministic URLs.
type mockFileStore struct {
	saveFn         func(ctx context.Context, uploads []files.Upload, folder string, category files.Category) ([]string, []files.Failed)
	saveWithKeysFn func(ctx context.Context, uploads map[string]files.Upload, folder string, category files.Category) (map[string]string, error)
	deleted        []string
}

func (m *mockFileStore) Save(ctx context.Context, uploads []files.Upload, folder string, category files.Category) ([]string, []files.Failed) {
	if m.saveFn != nil {
		return m.saveFn(ctx, uploads, folder, category)
	}
	return nil, nil
}

func (m *mockFileStore) SaveWithKeys(ctx context.Context, uploads map[string]files.Upload, folder string, category files.Category) (map[string]string, error) {
	if m.saveWithKeysFn != nil {
		return m.saveWithKeysFn(ctx, uploads, folder, category)
	}
	result := make(map[string]string, len(uploads))
	for key := range uploads {
		result[key] = "http://host/uploads/" + folder + "/" + key + ".pdf"
	}
	return result, nil
}

func (m *mockFileStore) DeleteByURL(_ context.Context, fileURL string) {
	m.deleted = append(m.deleted, fileURL)
}

// ─────────────────────────────────────────────
// SubmitApplication
// ─────────────────────────────────────────────

func validApplication() models.Application {
	return models.Application{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Location:  "Berlin",
	}
}

func cvUpload() map[string]files.Upload {
	return map[string]files.Upload{
		"cv": {Name: "cv.pdf", ContentType: "application/pdf", Size: 64, Content: []byte("x")},
	}
}

func TestApplicationService_Submit_Success(t *testing.T) {
	var created models.Application
	appRepo := &mockApplicationRepository{
		createFn: func(_ context.Context, application models.Application) (models.Application, error) {
			created = application
			return application, nil
		},
	}
	fileStore := &mockFileStore{}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, fileStore, logger.Nop())

	got, err := svc.SubmitApplication(context.Background(), validApplication(), cvUpload())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, got.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// every declared slot is present, unused slots render null
	require.Len(t, created.Files, len(models.ApplicationFileKeys))
	require.NotNil(t, created.Files["cv"])
	assert.Equal(t, "http://host/uploads/applications/cv.pdf", *created.Files["cv"])
	for _, key := range models.ApplicationFileKeys {
		if key == "cv" {
			continue
		}
		value, present := created.Files[key]
		assert.True(t, present, "slot %q missing", key)
		assert.Nil(t, value)
	}
}

func TestApplicationService_Submit_MissingRequiredFields(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	application := validApplication()
	application.Email = ""
	_, err := svc.SubmitApplication(context.Background(), application, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestApplicationService_Submit_UnknownFileKey(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	uploads := map[string]files.Upload{
		"selfie": {Name: "selfie.png", ContentType: "image/png", Size: 10, Content: []byte("x")},
	}
	_, err := svc.SubmitApplication(context.Background(), validApplication(), uploads)
	assert.ErrorIs(t, err, ErrUnknownFileKey)
}

func TestApplicationService_Submit_UnknownPosition(t *testing.T) {
	positionID := uuid.New()
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	application := validApplication()
	application.PositionID = &positionID
	_, err := svc.SubmitApplication(context.Background(), application, nil)
	assert.ErrorIs(t, err, store.ErrPositionNotFound)
}

func TestApplicationService_Submit_RollsBackFilesOnCreateFailure(t *testing.T) {
	appRepo := &mockApplicationRepository{
		createFn: func(context.Context, models.Application) (models.Application, error) {
			return models.Application{}, store.ErrExecutingQuery
		},
	}
	fileStore := &mockFileStore{}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, fileStore, logger.Nop())

	_, err := svc.SubmitApplication(context.Background(), validApplication(), cvUpload())
	require.Error(t, err)
	assert.Equal(t, []string{"http://host/uploads/applications/cv.pdf"}, fileStore.deleted)
}

func TestApplicationService_Submit_FileValidationFailure(t *testing.T) {
	keyErr := &files.KeyError{Key: "cv", Err: files.ErrInvalidUpload}
	fileStore := &mockFileStore{
		saveWithKeysFn: func(context.Context, map[string]files.Upload, string, files.Category) (map[string]string, error) {
			return nil, keyErr
		},
	}
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, fileStore, logger.Nop())

	_, err := svc.SubmitApplication(context.Background(), validApplication(), cvUpload())
	var got *files.KeyError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "cv", got.Key)
}

// ─────────────────────────────────────────────
// ListApplications
// ─────────────────────────────────────────────

func TestApplicationService_List_FilterMapping(t *testing.T) {
	positionID := uuid.New()

	tests := []struct {
		name   string
		filter ApplicationListFilter
		want   store.ApplicationFilter
	}{
		{
			name:   "no filter",
			filter: ApplicationListFilter{},
			want:   store.ApplicationFilter{},
		},
		{
			name:   "status only",
			filter: ApplicationListFilter{Status: "approved"},
			want:   store.ApplicationFilter{Status: models.ApplicationApproved},
		},
		{
			name:   "unassigned literal",
			filter: ApplicationListFilter{PositionID: "none"},
			want:   store.ApplicationFilter{Unassigned: true},
		},
		{
			name:   "position id",
			filter: ApplicationListFilter{PositionID: positionID.String()},
			want:   store.ApplicationFilter{PositionID: &positionID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got store.ApplicationFilter
			appRepo := &mockApplicationRepository{
				listFn: func(_ context.Context, filter store.ApplicationFilter, _ models.PageRequest) ([]models.Application, int64, error) {
					got = filter
					return nil, 0, nil
				},
			}
			svc := NewApplicationService(appRepo, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

			_, err := svc.ListApplications(context.Background(), tt.filter, models.PageRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplicationService_List_InvalidStatus(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.ListApplications(context.Background(), ApplicationListFilter{Status: "archived"}, models.PageRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestApplicationService_List_InvalidPositionID(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.ListApplications(context.Background(), ApplicationListFilter{PositionID: "bogus"}, models.PageRequest{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestApplicationService_List_Pagination(t *testing.T) {
	appRepo := &mockApplicationRepository{
		listFn: func(_ context.Context, _ store.ApplicationFilter, page models.PageRequest) ([]models.Application, int64, error) {
			assert.Equal(t, int64(2), page.Page)
			return []models.Application{{FirstName: "Jane"}}, 11, nil
		},
	}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	result, err := svc.ListApplications(context.Background(), ApplicationListFilter{}, models.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.TotalItems)
	assert.Equal(t, int64(2), result.TotalPages)
	assert.Equal(t, int64(2), result.CurrentPage)
	assert.Len(t, result.Data, 1)
}

// ─────────────────────────────────────────────
// UpdateApplicationStatus / DeleteApplication
// ─────────────────────────────────────────────

func TestApplicationService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.UpdateApplicationStatus(context.Background(), uuid.NewString(), "archived")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestApplicationService_UpdateStatus_Success(t *testing.T) {
	id := uuid.New()
	appRepo := &mockApplicationRepository{
		updateStatusFn: func(_ context.Context, gotID uuid.UUID, status models.ApplicationStatus) (models.Application, error) {
			assert.Equal(t, id, gotID)
			return models.Application{ID: gotID, Status: status}, nil
		},
	}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	updated, err := svc.UpdateApplicationStatus(context.Background(), id.String(), models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
}

func TestApplicationService_Delete_RemovesAttachmentsFirst(t *testing.T) {
	id := uuid.New()
	cvURL := "http://host/uploads/applications/cv.pdf"

	var deletedRow bool
	appRepo := &mockApplicationRepository{
		getFn: func(context.Context, uuid.UUID) (models.Application, error) {
			return models.Application{ID: id, Files: models.ApplicationFiles{"cv": &cvURL, "other": nil}}, nil
		},
		deleteFn: func(_ context.Context, gotID uuid.UUID) error {
			assert.Equal(t, id, gotID)
			deletedRow = true
			return nil
		},
	}
	fileStore := &mockFileStore{}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, fileStore, logger.Nop())

	require.NoError(t, svc.DeleteApplication(context.Background(), id.String()))
	assert.Equal(t, []string{cvURL}, fileStore.deleted)
	assert.True(t, deletedRow)
}

func TestApplicationService_Delete_InvalidID(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepository{}, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	assert.ErrorIs(t, svc.DeleteApplication(context.Background(), "bogus"), ErrInvalidID)
}

// ─────────────────────────────────────────────
// GetApplicationStatistics
// ─────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func statisticsRepo() *mockApplicationRepository {
	now := time.Now()
	return &mockApplicationRepository{
		countByMonthFn: func(_ context.Context) ([]store.MonthBucket, error) {
			return []store.MonthBucket{
				{Year: 2019, Month: time.December, Count: 4},
				{Year: 2020, Month: time.September, Count: 10},
				{Year: now.Year(), Month: now.Month(), Count: 15},
			}, nil
		},
		countByPosFn: func(_ context.Context) ([]store.PositionBucket, error) {
			return []store.PositionBucket{
				{Position: strPtr("Backend Developer"), Count: 18},
				{Position: nil, Count: 3},
			}, nil
		},
	}
}

func TestApplicationService_Statistics_Summary(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	stats, err := svc.GetApplicationStatistics(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(29), stats.Summary.TotalApplications)
	assert.Equal(t, int64(15), stats.Summary.ThisMonthCount)
	assert.Len(t, stats.MonthlyDistribution, 3)
	assert.Equal(t, "Dec", stats.MonthlyDistribution[0].Month)
	assert.Nil(t, stats.FilteredMonth)
}

func TestApplicationService_Statistics_UnassignedBucketLabel(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	stats, err := svc.GetApplicationStatistics(context.Background(), 0, 0)
	require.NoError(t, err)

	require.Len(t, stats.ByPosition, 2)
	assert.Equal(t, "Backend Developer", stats.ByPosition[0].Position)
	assert.Equal(t, int64(18), stats.ByPosition[0].Count)
	assert.Equal(t, "No position", stats.ByPosition[1].Position)
}

func TestApplicationService_Statistics_YearFilterNarrowsDistribution(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	stats, err := svc.GetApplicationStatistics(context.Background(), 2019, 0)
	require.NoError(t, err)

	require.Len(t, stats.MonthlyDistribution, 1)
	assert.Equal(t, 2019, stats.MonthlyDistribution[0].Year)
	// headline totals stay global
	assert.Equal(t, int64(29), stats.Summary.TotalApplications)
}

func TestApplicationService_Statistics_FilteredMonth(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	stats, err := svc.GetApplicationStatistics(context.Background(), 2020, 9)
	require.NoError(t, err)

	require.NotNil(t, stats.FilteredMonth)
	assert.Equal(t, 2020, stats.FilteredMonth.Year)
	assert.Equal(t, "Sep", stats.FilteredMonth.Month)
	assert.Equal(t, int64(10), stats.FilteredMonth.Count)
}

func TestApplicationService_Statistics_EmptyFilteredMonthRendersZero(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	stats, err := svc.GetApplicationStatistics(context.Background(), 2020, 2)
	require.NoError(t, err)

	require.NotNil(t, stats.FilteredMonth)
	assert.Equal(t, "Feb", stats.FilteredMonth.Month)
	assert.Equal(t, int64(0), stats.FilteredMonth.Count)
}

func TestApplicationService_Statistics_InvalidFilters(t *testing.T) {
	svc := NewApplicationService(statisticsRepo(), &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.GetApplicationStatistics(context.Background(), 2020, 13)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	// a month filter without a year is ambiguous and rejected
	_, err = svc.GetApplicationStatistics(context.Background(), 0, 9)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestApplicationService_Statistics_AggregationError(t *testing.T) {
	appRepo := &mockApplicationRepository{
		countByMonthFn: func(_ context.Context) ([]store.MonthBucket, error) {
			return nil, store.ErrExecutingQuery
		},
	}
	svc := NewApplicationService(appRepo, &mockPositionRepository{}, &mockFileStore{}, logger.Nop())

	_, err := svc.GetApplicationStatistics(context.Background(), 0, 0)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}
