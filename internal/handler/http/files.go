// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
)

// uploadFiles stores an ad-hoc media batch for the admin panel. The request
// is multipart/form-data carrying "path" (destination sub-folder), "type"
// (image | video | file), and any number of file parts under "files".
// Rejected files come back listed next to the stored URLs; they do not fail
// the request.
func (h *Handler) uploadFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uploads, err := parseUploadList(r, "files")
	if err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	result, err := h.services.FileService.UploadFiles(ctx, uploads,
		r.FormValue("path"), files.Category(r.FormValue("type")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, result, http.StatusCreated)
}
