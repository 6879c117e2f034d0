// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/app/features/shared/respond"
	"github.com/dalemusser/freighthub/internal/app/store/mailbox"
	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/app/system/timeouts"
	"github.com/dalemusser/freighthub/internal/apperror"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Handler serves a user's persisted notification mailbox.
type Handler struct {
	Mailbox *mailboxstore.Store
	Log     *zap.Logger
}

func NewHandler(mailbox *mailboxstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Mailbox: mailbox, Log: logger}
}

type listResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// List handles GET /notifications. The recipient group follows the
// signed-in user's company kind.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Mailbox.ForUser(ctx, user.Kind, user.Scope, user.ID)
	if err != nil {
		respond.Error(w, h.Log, apperror.Wrap(err, "load mailbox"))
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	respond.JSON(w, http.StatusOK, listResponse{Notifications: list})
}
