// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"net/http"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/localize"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/internal/utils"
)

// respond writes data as the JSON response body, localizing it to the
// request's negotiated locale first unless the request asked for the raw
// payload.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	ctx := r.Context()

	if !utils.LocalizationBypassed(ctx) {
		data = localize.Localize(data, utils.GetLocaleFromContext(ctx))
	}

	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing JSON response failed")
	}
}

// respondError maps a service-layer error onto an HTTP status code and
// writes a plain-text error response. Handlers with context-specific mapping
// (e.g. login collapsing not-found into 401) run their own switch first and
// fall back to this for the remaining cases.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var keyErr *files.KeyError

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrUnknownFileKey),
		errors.Is(err, service.ErrInviteTokenExpired),
		errors.As(err, &keyErr):
		log.Err(err).Msg("invalid request data")
		http.Error(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPositionNotFound),
		errors.Is(err, store.ErrApplicationNotFound),
		errors.Is(err, store.ErrPageNotFound),
		errors.Is(err, store.ErrServiceNotFound),
		errors.Is(err, store.ErrConfigurationNotFound):
		log.Err(err).Msg("resource not found")
		http.Error(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, store.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrProfileAlreadyCompleted):
		log.Err(err).Msg("conflicting request")
		http.Error(w, err.Error(), http.StatusConflict)

	default:
		log.Err(err).Msg("unexpected error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
