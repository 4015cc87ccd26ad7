// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/service"
	"github.com/mkamel/corsite-backend/internal/utils"
)

// inviteRequest is the JSON body of POST /api/users/invite and
// POST /api/users/resend-invite.
type inviteRequest struct {
	Email string `json:"email"`
}

// completeProfileRequest is the JSON body of
// POST /api/users/complete-profile.
type completeProfileRequest struct {
	Token string `json:"token"`
	service.CompleteProfileInput
}

func (h *Handler) inviteAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.InviteAdmin(ctx, req.Email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, user.Public(), http.StatusCreated)
}

func (h *Handler) resendInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.ResendInvite(ctx, req.Email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, user.Public(), http.StatusOK)
}

func (h *Handler) completeProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req completeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.CompleteProfile(ctx, req.Token, req.CompleteProfileInput)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, user.Public(), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.services.UserService.GetUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, user.Public(), http.StatusOK)
}

// currentUser returns the account behind the presented token.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in authenticated context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID.String())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, r, user.Public(), http.StatusOK)
}
