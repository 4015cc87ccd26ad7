package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// UserRepository persists admin accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindUserByCompletionToken(ctx context.Context, token string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// PositionRepository persists job postings and serves the joined
// position-with-applications reads.
type PositionRepository interface {
	CreatePosition(ctx context.Context, position models.Position) (models.Position, error)
	GetPosition(ctx context.Context, id uuid.UUID) (models.PositionWithApplications, error)
	ListPositions(ctx context.Context, page models.PageRequest) ([]models.PositionWithApplications, int64, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, update models.PositionUpdate) (models.Position, error)
	DeletePosition(ctx context.Context, id uuid.UUID) error
}

// ApplicationFilter narrows application listings. Zero values mean "no
// filter"; Unassigned selects applications without a position.
type ApplicationFilter struct {
	Status     models.ApplicationStatus
	PositionID *uuid.UUID
	Unassigned bool
}

// MonthBucket is one calendar month's application count as aggregated by
// the store.
type MonthBucket struct {
	Year  int
	Month time.Month
	Count int64
}

// PositionBucket is the per-posting application count. Position is nil for
// applications submitted without a posting.
type PositionBucket struct {
	Position *string
	Count    int64
}

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application models.Application) (models.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (models.Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter, page models.PageRequest) ([]models.Application, int64, error)
	ListApplicationsByPosition(ctx context.Context, positionID uuid.UUID) ([]models.Application, error)
	CountApplicationsByMonth(ctx context.Context) ([]MonthBucket, error)
	CountApplicationsByPosition(ctx context.Context) ([]PositionBucket, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (models.Application, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	DeleteApplicationsByPosition(ctx context.Context, positionID uuid.UUID) error
}

// ContactRepository persists contact-us leads.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	ListContacts(ctx context.Context, page models.PageRequest) ([]models.Contact, int64, error)
}

// PageRepository persists CMS pages keyed by unique title.
type PageRepository interface {
	UpsertPage(ctx context.Context, title string, data models.PageData) (models.Page, error)
	GetPageByTitle(ctx context.Context, title string) (models.Page, error)
	ListPageTitles(ctx context.Context) ([]string, error)
	ListPages(ctx context.Context, page models.PageRequest) ([]models.Page, int64, error)
}

// ServiceRepository persists CMS service entries keyed by unique title.
type ServiceRepository interface {
	UpsertService(ctx context.Context, title string, data models.ServiceData) (models.Service, error)
	GetServiceByTitle(ctx context.Context, title string) (models.Service, error)
	ListServiceTitles(ctx context.Context) ([]string, error)
	ListServices(ctx context.Context, page models.PageRequest) ([]models.Service, int64, error)
}

// ConfigurationRepository persists the site configuration singleton.
type ConfigurationRepository interface {
	GetConfiguration(ctx context.Context) (models.Configuration, error)
	SaveConfiguration(ctx context.Context, data models.ConfigurationData) (models.Configuration, error)
}

// Repositories aggregates every repository implementation behind one
// constructor so the service layer receives a single dependency.
type Repositories struct {
	Users          UserRepository
	Positions      PositionRepository
	Applications   ApplicationRepository
	Contacts       ContactRepository
	Pages          PageRepository
	Services       ServiceRepository
	Configurations ConfigurationRepository
}

// NewRepositories wires all repositories to the shared database handle.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(db, log),
		Positions:      NewPositionRepository(db, log),
		Applications:   NewApplicationRepository(db, log),
		Contacts:       NewContactRepository(db, log),
		Pages:          NewPageRepository(db, log),
		Services:       NewServiceRepository(db, log),
		Configurations: NewConfigurationRepository(db, log),
	}
}
