package http

import (
	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
)

type Handler struct {
	services *service.Services
	uploads  config.Uploads

	logger *logger.Logger
}

func NewHandler(services *service.Services, uploads config.Uploads, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		uploads:  uploads,
		logger:   logger,
	}
}
