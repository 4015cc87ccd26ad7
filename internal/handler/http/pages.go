// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/models"
)

// savePage accepts multipart/form-data: a "pageObj" field holding the
// free-form page JSON plus one file part per image slot to replace.
func (h *Handler) savePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uploads, err := parseUploads(r)
	if err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var pageObj models.Document
	if raw := r.FormValue("pageObj"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pageObj); err != nil {
			log.Err(err).Msg("invalid pageObj JSON")
			http.Error(w, "invalid pageObj JSON", http.StatusBadRequest)
			return
		}
	}

	saved, err := h.services.PageService.SavePage(ctx, chi.URLParam(r, "title"), pageObj, uploads)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, saved, http.StatusOK)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.services.PageService.GetPage(ctx, chi.URLParam(r, "title"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, page, http.StatusOK)
}

func (h *Handler) listPageTitles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	titles, err := h.services.PageService.ListPageTitles(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, titles, http.StatusOK)
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pages, err := h.services.PageService.ListPages(ctx, parsePageRequest(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, pages, http.StatusOK)
}
