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

func newTestPositionRepo(t *testing.T) (*positionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &positionRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func positionColumns() []string {
	return []string{"id", "name", "location", "type", "what_we_offer", "why_we_are_looking",
		"responsibilities", "skills", "created_at", "updated_at"}
}

func TestCreatePosition_Success(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	now := time.Now()
	position := models.Position{
		ID:       uuid.New(),
		Name:     "Backend Engineer",
		Location: "Berlin",
		Type:     models.PositionFullTime,
	}

	rows := sqlmock.NewRows(positionColumns()).
		AddRow(position.ID, position.Name, position.Location, string(position.Type), "", "", "", "", now, now)

	mock.ExpectQuery("INSERT INTO positions").
		WillReturnRows(rows)

	created, err := repo.CreatePosition(context.Background(), position)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != position.Name {
		t.Errorf("expected name %s, got %s", position.Name, created.Name)
	}
}

func TestGetPosition_WithApplications(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	now := time.Now()
	id := uuid.New()
	applicantID := uuid.New()

	positionRows := sqlmock.NewRows(append(positionColumns(), "applications_count")).
		AddRow(id, "Backend Engineer", "Berlin", "Full-time", "", "", "", "", now, now, 1)
	mock.ExpectQuery("SELECT (.+) FROM positions p").
		WithArgs(id).
		WillReturnRows(positionRows)

	summaryRows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "status", "created_at"}).
		AddRow(applicantID, "Ada", "Lovelace", "ada@example.com", "pending", now)
	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs(id).
		WillReturnRows(summaryRows)

	found, err := repo.GetPosition(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ApplicationsCount != 1 {
		t.Errorf("expected 1 application, got %d", found.ApplicationsCount)
	}
	if len(found.Applications) != 1 || found.Applications[0].Email != "ada@example.com" {
		t.Errorf("unexpected summaries: %+v", found.Applications)
	}
}

func TestGetPosition_NotFound(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM positions p").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPosition(context.Background(), uuid.New())
	if !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestUpdatePosition_PartialUpdate(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	now := time.Now()
	id := uuid.New()
	name := "Senior Backend Engineer"

	rows := sqlmock.NewRows(positionColumns()).
		AddRow(id, name, "Berlin", "Full-time", "", "", "", "", now, now)

	mock.ExpectQuery("UPDATE positions SET").
		WillReturnRows(rows)

	updated, err := repo.UpdatePosition(context.Background(), id, models.PositionUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != name {
		t.Errorf("expected name %s, got %s", name, updated.Name)
	}
}

func TestDeletePosition_NotFound(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM positions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeletePosition(context.Background(), uuid.New())
	if !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestListPositions_ReturnsTotal(t *testing.T) {
	repo, mock, db := newTestPositionRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(append(positionColumns(), "applications_count")).
		AddRow(uuid.New(), "Backend Engineer", "Berlin", "Full-time", "", "", "", "", now, now, 3)
	mock.ExpectQuery("SELECT (.+) FROM positions p").
		WillReturnRows(rows)

	positions, total, err := repo.ListPositions(context.Background(), models.PageRequest{Page: 1, Limit: 10}.Normalize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	if len(positions) != 1 || positions[0].ApplicationsCount != 3 {
		t.Errorf("unexpected page: %+v", positions)
	}
}
