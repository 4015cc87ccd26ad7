package service

import (
	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/mail"
	"github.com/mkamel/corsite-backend/internal/store"
)

type Services struct {
	AuthService          AuthService
	UserService          UserService
	PositionService      PositionService
	ApplicationService   ApplicationService
	ContactService       ContactService
	PageService          PageService
	ServiceEntryService  ServiceEntryService
	ConfigurationService ConfigurationService
	FileService          FileService
	Seeder               Seeder
}

func NewServices(repositories *store.Repositories, fileStore FileStore, sender mail.Sender, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:          NewAuthService(repositories.Users, cfg.App, logger),
		UserService:          NewUserService(repositories.Users, sender, cfg.App, logger),
		PositionService:      NewPositionService(repositories.Positions, repositories.Applications, fileStore, logger),
		ApplicationService:   NewApplicationService(repositories.Applications, repositories.Positions, fileStore, logger),
		ContactService:       NewContactService(repositories.Contacts, logger),
		PageService:          NewPageService(repositories.Pages, fileStore, logger),
		ServiceEntryService:  NewServiceEntryService(repositories.Services, fileStore, logger),
		ConfigurationService: NewConfigurationService(repositories.Configurations, fileStore, logger),
		FileService:          NewFileService(fileStore, logger),
		Seeder:               NewSeeder(repositories.Users, cfg.Seed, logger),
	}
}
