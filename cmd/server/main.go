package main

import (
	"context"
	"fmt"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/handler"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/mail"
	"github.com/mkamel/corsite-backend/internal/server"
	"github.com/mkamel/corsite-backend/internal/service"
	"github.com/mkamel/corsite-backend/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("corsite-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repositories := store.NewRepositories(db, log)
	fileStore := files.NewStore(cfg.Storage.Uploads, log)
	sender := mail.NewSMTPSender(cfg.Mail, log)

	services := service.NewServices(repositories, fileStore, sender, cfg, log)

	if err := services.Seeder.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error seeding super admin")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
