// internal/app/features/contracts/routes.go
package contracts

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Routes returns the contracts subrouter; mounted under /contracts.
// Assignment is a vendor action, approval and the pending list are
// customer actions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireKind(models.KindVendor))
		r.Post("/assign", h.Assign)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireKind(models.KindCustomer))
		r.Post("/approve", h.Approve)
		r.Get("/pending", h.Pending)
	})
	return r
}
