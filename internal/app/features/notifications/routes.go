// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/freighthub/internal/app/system/auth"
)

// Routes returns the notifications subrouter; mounted under /notifications.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.List)
	return r
}
