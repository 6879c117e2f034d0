// internal/app/features/contracts/handler.go
package contracts

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/app/features/shared/respond"
	"github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	"github.com/dalemusser/freighthub/internal/app/system/approval"
	"github.com/dalemusser/freighthub/internal/app/system/assignment"
	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/app/system/timeouts"
	"github.com/dalemusser/freighthub/internal/apperror"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Handler serves the contract assignment and approval endpoints.
type Handler struct {
	Assigner *assignment.Coordinator
	Approver *approval.Coordinator
	Repo     *customerrepostore.Store
	Log      *zap.Logger
}

func NewHandler(assigner *assignment.Coordinator, approver *approval.Coordinator, repo *customerrepostore.Store, logger *zap.Logger) *Handler {
	return &Handler{Assigner: assigner, Approver: approver, Repo: repo, Log: logger}
}

// Assign handles POST /contracts/assign (vendor side).
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req assignment.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, apperror.Validationf("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Assigner.Assign(ctx, user, req)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// Approve handles POST /contracts/approve (customer side).
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var dec approval.Decision
	if err := json.NewDecoder(r.Body).Decode(&dec); err != nil {
		respond.Error(w, h.Log, apperror.Validationf("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Approver.Approve(ctx, user, dec)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// pendingResponse wraps the pending list so the body stays an object.
type pendingResponse struct {
	Pending []models.ProductEntry `json:"pending"`
}

// Pending handles GET /contracts/pending (customer side).
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Repo.Pending(ctx, user.Scope, user.CompanyID)
	if err != nil {
		respond.Error(w, h.Log, apperror.Wrap(err, "load pending assignments"))
		return
	}
	if pending == nil {
		pending = []models.ProductEntry{}
	}
	respond.JSON(w, http.StatusOK, pendingResponse{Pending: pending})
}
