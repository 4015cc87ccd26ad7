package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ContactService.SubmitContact(ctx, contact)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contacts, err := h.services.ContactService.ListContacts(ctx, parsePageRequest(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, contacts, http.StatusOK)
}
