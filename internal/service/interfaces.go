package service

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

import (
	"context"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/models"
)

// FileStore is the slice of the upload store the services depend on.
// Satisfied by [files.Store]; narrowed to an interface so service tests can
// substitute an in-memory fake.
type FileStore interface {
	Save(ctx context.Context, uploads []files.Upload, folder string, category files.Category) ([]string, []files.Failed)
	SaveWithKeys(ctx context.Context, uploads map[string]files.Upload, folder string, category files.Category) (map[string]string, error)
	DeleteByURL(ctx context.Context, fileURL string)
}

// UploadResult is the outcome of a homogeneous batch upload: the public URLs
// of the stored files plus the entries that were rejected. A rejected entry
// never fails the batch.
type UploadResult struct {
	URLs   []string       `json:"urls"`
	Failed []files.Failed `json:"failed"`
}

// FileService exposes the upload store as a standalone admin surface for
// media batches no owning document claims (banners, ad-hoc assets).
type FileService interface {
	UploadFiles(ctx context.Context, uploads []files.Upload, folder string, category files.Category) (UploadResult, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CompleteProfileInput carries the fields an invited admin submits to claim
// their account.
type CompleteProfileInput struct {
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type UserService interface {
	InviteAdmin(ctx context.Context, email string) (models.User, error)
	ResendInvite(ctx context.Context, email string) (models.User, error)
	CompleteProfile(ctx context.Context, token string, input CompleteProfileInput) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
}

type PositionService interface {
	CreatePosition(ctx context.Context, position models.Position) (models.Position, error)
	GetPosition(ctx context.Context, id string) (models.PositionWithApplications, error)
	ListPositions(ctx context.Context, page models.PageRequest) (models.Paginated[models.PositionWithApplications], error)
	UpdatePosition(ctx context.Context, id string, update models.PositionUpdate) (models.Position, error)
	DeletePosition(ctx context.Context, id string) error
}

// ApplicationListFilter narrows admin application listings. PositionID takes
// either a posting id or the literal "none" to select unassigned
// applications.
type ApplicationListFilter struct {
	Status     string
	PositionID string
}

type ApplicationService interface {
	SubmitApplication(ctx context.Context, application models.Application, uploads map[string]files.Upload) (models.Application, error)
	GetApplication(ctx context.Context, id string) (models.Application, error)
	ListApplications(ctx context.Context, filter ApplicationListFilter, page models.PageRequest) (models.Paginated[models.Application], error)
	GetApplicationStatistics(ctx context.Context, year, month int) (models.ApplicationStatistics, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error)
	DeleteApplication(ctx context.Context, id string) error
}

type ContactService interface {
	SubmitContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	ListContacts(ctx context.Context, page models.PageRequest) (models.Paginated[models.Contact], error)
}

type PageService interface {
	SavePage(ctx context.Context, title string, pageObj models.Document, images map[string]files.Upload) (models.Page, error)
	GetPage(ctx context.Context, title string) (models.Page, error)
	ListPageTitles(ctx context.Context) ([]string, error)
	ListPages(ctx context.Context, page models.PageRequest) (models.Paginated[models.Page], error)
}

type ServiceEntryService interface {
	SaveService(ctx context.Context, title string, serviceObj models.Document, images map[string]files.Upload) (models.Service, error)
	GetService(ctx context.Context, title string) (models.Service, error)
	ListServiceTitles(ctx context.Context) ([]string, error)
	ListServices(ctx context.Context, page models.PageRequest) (models.Paginated[models.Service], error)
}

type ConfigurationService interface {
	GetConfiguration(ctx context.Context) (models.Configuration, error)
	SaveConfiguration(ctx context.Context, configObj models.Document, media map[string]files.Upload) (models.Configuration, error)
}

// Seeder creates the bootstrap super-admin account at startup.
type Seeder interface {
	Seed(ctx context.Context) error
}
