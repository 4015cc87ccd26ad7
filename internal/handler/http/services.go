package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// saveService accepts multipart/form-data: a "serviceObj" field holding the
// free-form service JSON plus one file part per image slot to replace.
func (h *Handler) saveService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uploads, err := parseUploads(r)
	if err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var serviceObj models.Document
	if raw := r.FormValue("serviceObj"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &serviceObj); err != nil {
			log.Err(err).Msg("invalid serviceObj JSON")
			http.Error(w, "invalid serviceObj JSON", http.StatusBadRequest)
			return
		}
	}

	saved, err := h.services.ServiceEntryService.SaveService(ctx, chi.URLParam(r, "title"), serviceObj, uploads)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, saved, http.StatusOK)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, err := h.services.ServiceEntryService.GetService(ctx, chi.URLParam(r, "title"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, entry, http.StatusOK)
}

func (h *Handler) listServiceTitles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	titles, err := h.services.ServiceEntryService.ListServiceTitles(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, titles, http.StatusOK)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services, err := h.services.ServiceEntryService.ListServices(ctx, parsePageRequest(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, services, http.StatusOK)
}
