package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

func (h *Handler) getConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	configuration, err := h.services.ConfigurationService.GetConfiguration(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, configuration, http.StatusOK)
}

// saveConfiguration accepts multipart/form-data: a "configObj" field holding
// the free-form configuration JSON plus media file parts routed by content
// type into the image and video slots.
func (h *Handler) saveConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uploads, err := parseUploads(r)
	if err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var configObj models.Document
	if raw := r.FormValue("configObj"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &configObj); err != nil {
			log.Err(err).Msg("invalid configObj JSON")
			http.Error(w, "invalid configObj JSON", http.StatusBadRequest)
			return
		}
	}

	saved, err := h.services.ConfigurationService.SaveConfiguration(ctx, configObj, uploads)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, saved, http.StatusOK)
}
