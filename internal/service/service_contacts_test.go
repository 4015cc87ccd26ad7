package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/models"
)

type mockContactRepository struct {
	createFn func(ctx context.Context, contact models.Contact) (models.Contact, error)
	listFn   func(ctx context.Context, page models.PageRequest) ([]models.Contact, int64, error)
}

func (m *mockContactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if m.createFn != nil {
		return m.createFn(ctx, contact)
	}
	return contact, nil
}

func (m *mockContactRepository) ListContacts(ctx context.Context, page models.PageRequest) ([]models.Contact, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return nil, 0, nil
}

func TestContactService_Submit_Success(t *testing.T) {
	var created models.Contact
	repo := &mockContactRepository{
		createFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
			created = contact
			return contact, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	contact := models.Contact{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Message:  "Hello there",
	}
	got, err := svc.SubmitContact(context.Background(), contact)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Jane Doe", got.FullName)
}

func TestContactService_Submit_StripsScriptTags(t *testing.T) {
	var created models.Contact
	repo := &mockContactRepository{
		createFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
			created = contact
			return contact, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	contact := models.Contact{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Message:  `<p>Hi</p><script>alert("x")</script>`,
	}
	_, err := svc.SubmitContact(context.Background(), contact)
	require.NoError(t, err)

	assert.Equal(t, "<p>Hi</p>", created.Message)
	assert.NotContains(t, created.Message, "script")
}

func TestContactService_Submit_MissingFields(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, logger.Nop())

	tests := []struct {
		name    string
		contact models.Contact
	}{
		{"missing name", models.Contact{Email: "jane@example.com", Message: "Hi"}},
		{"missing email", models.Contact{FullName: "Jane Doe", Message: "Hi"}},
		{"missing message", models.Contact{FullName: "Jane Doe", Email: "jane@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitContact(context.Background(), tt.contact)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestContactService_List_WrapsStorageError(t *testing.T) {
	repo := &mockContactRepository{
		listFn: func(context.Context, models.PageRequest) ([]models.Contact, int64, error) {
			return nil, 0, store.ErrExecutingQuery
		},
	}
	svc := NewContactService(repo, logger.Nop())

	_, err := svc.ListContacts(context.Background(), models.PageRequest{})
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestContactService_List_Pagination(t *testing.T) {
	repo := &mockContactRepository{
		listFn: func(_ context.Context, page models.PageRequest) ([]models.Contact, int64, error) {
			assert.Equal(t, int64(1), page.Page)
			assert.Equal(t, int64(10), page.Limit)
			return []models.Contact{{FullName: "Jane Doe"}}, 1, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	result, err := svc.ListContacts(context.Background(), models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalItems)
	assert.Len(t, result.Data, 1)
}
