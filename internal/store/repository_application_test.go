package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

func newTestApplicationRepo(t *testing.T) (*applicationRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &applicationRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func applicationColumns() []string {
	return []string{"id", "first_name", "last_name", "email", "phone", "available_from",
		"location", "expected_salary", "files", "status", "position_id", "created_at", "updated_at"}
}

func TestCreateApplication_DecodesFiles(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	now := time.Now()
	id := uuid.New()
	filesJSON := []byte(`{"cv":"http://host/uploads/applications/cv-1.pdf","coverLetter":null}`)

	rows := sqlmock.NewRows(applicationColumns()).
		AddRow(id, "Ada", "Lovelace", "ada@example.com", "", "", "", nil, filesJSON, "pending", nil, now, now)

	mock.ExpectQuery("INSERT INTO applications").
		WillReturnRows(rows)

	created, err := repo.CreateApplication(context.Background(), models.Application{
		ID:        id,
		FirstName: "Ada",
		Email:     "ada@example.com",
		Status:    models.ApplicationPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cv := created.Files["cv"]
	if cv == nil || *cv != "http://host/uploads/applications/cv-1.pdf" {
		t.Errorf("unexpected cv slot: %v", cv)
	}
	if created.Files["coverLetter"] != nil {
		t.Errorf("expected empty coverLetter slot, got %v", *created.Files["coverLetter"])
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetApplication(context.Background(), uuid.New())
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestListApplications_StatusFilter(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(applicationColumns()).
		AddRow(uuid.New(), "Ada", "", "ada@example.com", "", "", "", nil, []byte(`{}`), "approved", nil, now, now)
	mock.ExpectQuery("SELECT (.+) FROM applications").
		WillReturnRows(rows)

	applications, total, err := repo.ListApplications(context.Background(),
		ApplicationFilter{Status: models.ApplicationApproved},
		models.PageRequest{Page: 1, Limit: 10}.Normalize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(applications) != 1 {
		t.Fatalf("expected one approved application, got total=%d len=%d", total, len(applications))
	}
	if applications[0].Status != models.ApplicationApproved {
		t.Errorf("unexpected status %s", applications[0].Status)
	}
}

func TestListApplications_UnassignedFilter(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM applications").
		WillReturnRows(sqlmock.NewRows(applicationColumns()))

	applications, total, err := repo.ListApplications(context.Background(),
		ApplicationFilter{Unassigned: true},
		models.PageRequest{Page: 1, Limit: 10}.Normalize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(applications) != 0 {
		t.Errorf("expected empty result, got total=%d len=%d", total, len(applications))
	}
}

func TestUpdateApplicationStatus_NotFound(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE applications").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateApplicationStatus(context.Background(), uuid.New(), models.ApplicationApproved)
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestDeleteApplicationsByPosition_NoRowsIsFine(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM applications").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteApplicationsByPosition(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCountApplicationsByMonth_ReturnsOrderedBuckets(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"year", "month", "count"}).
		AddRow(2025, 9, 10).
		AddRow(2025, 10, 15)

	mock.ExpectQuery("SELECT EXTRACT\\(YEAR FROM created_at\\)").
		WillReturnRows(rows)

	buckets, err := repo.CountApplicationsByMonth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Year != 2025 || buckets[0].Month != time.September || buckets[0].Count != 10 {
		t.Errorf("unexpected first bucket: %+v", buckets[0])
	}
	if buckets[1].Month != time.October || buckets[1].Count != 15 {
		t.Errorf("unexpected second bucket: %+v", buckets[1])
	}
}

func TestCountApplicationsByMonth_QueryError(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXTRACT\\(YEAR FROM created_at\\)").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountApplicationsByMonth(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCountApplicationsByPosition_NullPositionBucket(t *testing.T) {
	repo, mock, db := newTestApplicationRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "count"}).
		AddRow("Backend Developer", 18).
		AddRow(nil, 3)

	mock.ExpectQuery("SELECT p.name, COUNT\\(\\*\\)").
		WillReturnRows(rows)

	buckets, err := repo.CountApplicationsByPosition(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Position == nil || *buckets[0].Position != "Backend Developer" {
		t.Errorf("unexpected first bucket position: %v", buckets[0].Position)
	}
	if buckets[1].Position != nil {
		t.Errorf("expected nil position for unassigned bucket, got %v", *buckets[1].Position)
	}
	if buckets[1].Count != 3 {
		t.Errorf("expected count 3 for unassigned bucket, got %d", buckets[1].Count)
	}
}
