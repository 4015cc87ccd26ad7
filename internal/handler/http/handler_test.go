package http

import (
	"io"
	"strings"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
)

// newTestHandler builds a Handler around the given service set with a no-op
// logger and the default upload layout.
func newTestHandler(services *service.Services) *Handler {
	uploads := config.Uploads{Dir: "uploads", HostURL: "http://localhost:8080"}
	return NewHandler(services, uploads, logger.Nop())
}

// jsonBody wraps a JSON literal as a request body.
func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
