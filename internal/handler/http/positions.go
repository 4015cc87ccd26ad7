// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

func (h *Handler) createPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var position models.Position
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.PositionService.CreatePosition(ctx, position)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) getPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	position, err := h.services.PositionService.GetPosition(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, position, http.StatusOK)
}

func (h *Handler) listPositions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	positions, err := h.services.PositionService.ListPositions(ctx, parsePageRequest(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, positions, http.StatusOK)
}

func (h *Handler) updatePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var update models.PositionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.PositionService.UpdatePosition(ctx, chi.URLParam(r, "id"), update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) deletePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.PositionService.DeletePosition(ctx, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
