package http

import (
	"net/http"
	"strconv"

	"github.com/mkamel/corsite-backend/models"
)

// parsePageRequest reads the "page" and "limit" query parameters.
// Missing or malformed values fall back to the defaults applied by
// [models.PageRequest.Normalize].
func parsePageRequest(r *http.Request) models.PageRequest {
	var page models.PageRequest
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil {
		page.Page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
		page.Limit = v
	}
	return page.Normalize()
}
