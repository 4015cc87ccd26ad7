package handler

import (
	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/handler/http"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.Storage.Uploads, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
