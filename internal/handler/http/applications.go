// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
	"github.com/mkamel/corsite-backend/models"
)

// submitApplication accepts the public careers form as multipart/form-data:
// text fields plus up to one file per declared attachment slot.
func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	uploads, err := parseUploads(r)
	if err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	application := models.Application{
		FirstName:     r.FormValue("firstName"),
		LastName:      r.FormValue("lastName"),
		Email:         r.FormValue("email"),
		Phone:         r.FormValue("phone"),
		AvailableFrom: r.FormValue("availableFrom"),
		Location:      r.FormValue("location"),
	}
	if salary := r.FormValue("expectedSalary"); salary != "" {
		value, err := strconv.ParseInt(salary, 10, 64)
		if err != nil {
			log.Err(err).Str("expectedSalary", salary).Msg("invalid expected salary")
			http.Error(w, "invalid expected salary", http.StatusBadRequest)
			return
		}
		application.ExpectedSalary = &value
	}
	if positionID := r.FormValue("positionId"); positionID != "" {
		id, err := uuid.Parse(positionID)
		if err != nil {
			log.Err(err).Str("positionId", positionID).Msg("invalid position id")
			http.Error(w, service.ErrInvalidID.Error(), http.StatusBadRequest)
			return
		}
		application.PositionID = &id
	}

	created, err := h.services.ApplicationService.SubmitApplication(ctx, application, uploads)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	application, err := h.services.ApplicationService.GetApplication(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, application, http.StatusOK)
}

// listApplications supports ?status= and ?positionId= filters; positionId
// accepts a posting id or the literal "none" for unassigned applications.
func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := service.ApplicationListFilter{
		Status:     r.URL.Query().Get("status"),
		PositionID: r.URL.Query().Get("positionId"),
	}

	applications, err := h.services.ApplicationService.ListApplications(ctx, filter, parsePageRequest(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, applications, http.StatusOK)
}

// getApplicationStatistics serves the aggregate application volumes shown on
// the admin dashboard. Optional ?year= and ?month= narrow the monthly
// breakdown; month requires year.
func (h *Handler) getApplicationStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	year, err := queryInt(r, "year")
	if err != nil {
		log.Err(err).Msg("invalid year")
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		log.Err(err).Msg("invalid month")
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	stats, err := h.services.ApplicationService.GetApplicationStatistics(ctx, year, month)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, stats, http.StatusOK)
}

// queryInt reads an optional integer query parameter; absent means zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// statusUpdateRequest is the JSON body of PATCH /api/applications/{id}/status.
type statusUpdateRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (h *Handler) updateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ApplicationService.UpdateApplicationStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.ApplicationService.DeleteApplication(ctx, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
