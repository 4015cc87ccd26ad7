package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkamel/corsite-backend/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(h.withLocale)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Post("/api/users/complete-profile", h.completeProfile)

		r.Get("/api/positions", h.listPositions)
		r.Get("/api/positions/{id}", h.getPosition)

		r.Post("/api/applications", h.submitApplication)
		r.Post("/api/contacts", h.submitContact)

		r.Get("/api/pages", h.listPageTitles)
		r.Get("/api/pages/{title}", h.getPage)
		r.Get("/api/services", h.listServiceTitles)
		r.Get("/api/services/{title}", h.getService)
		r.Get("/api/configuration", h.getConfiguration)
	})

	// routes for any authenticated admin
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRole(models.RoleAdmin, models.RoleSuperAdmin))

		r.Post("/api/positions", h.createPosition)
		r.Patch("/api/positions/{id}", h.updatePosition)
		r.Delete("/api/positions/{id}", h.deletePosition)

		r.Get("/api/applications", h.listApplications)
		r.Get("/api/applications/statistics", h.getApplicationStatistics)
		r.Get("/api/applications/{id}", h.getApplication)
		r.Patch("/api/applications/{id}/status", h.updateApplicationStatus)
		r.Delete("/api/applications/{id}", h.deleteApplication)

		r.Get("/api/contacts", h.listContacts)

		r.Get("/api/pages/list", h.listPages)
		r.Put("/api/pages/{title}", h.savePage)
		r.Get("/api/services/list", h.listServices)
		r.Put("/api/services/{title}", h.saveService)
		r.Put("/api/configuration", h.saveConfiguration)

		r.Post("/api/files/upload", h.uploadFiles)

		r.Get("/api/users/me", h.currentUser)
	})

	// routes reserved for the super admin
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRole(models.RoleSuperAdmin))

		r.Post("/api/users/invite", h.inviteAdmin)
		r.Post("/api/users/resend-invite", h.resendInvite)
		r.Get("/api/users/{id}", h.getUser)
	})

	// stored uploads are served verbatim under the upload dir path, matching
	// the host-relative part of persisted file URLs
	uploadPrefix := "/" + strings.Trim(h.uploads.Dir, "/")
	fileServer := http.StripPrefix(uploadPrefix, http.FileServer(http.Dir(h.uploads.Dir)))
	router.Get(uploadPrefix+"/*", fileServer.ServeHTTP)

	return router
}
