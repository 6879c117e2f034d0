// internal/app/system/notify/dispatcher.go
package notify

import (
	"context"
	"strconv"
	"strings"
	"time"

	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.uber.org/zap"
)

// PushGateway delivers a notification to a user's live channel. Delivery is
// best effort; persistence in the mailbox is the source of truth.
type PushGateway interface {
	Push(ctx context.Context, userID string, n models.Notification) error
}

// Source identifies the company a notification is about, as shown to the
// recipient.
type Source struct {
	Name      string
	CompanyID string
	Scope     string
}

// Message is one notification to fan out to a company's admin users.
type Message struct {
	Group     string // models.RecipientCustomer or models.RecipientVendor
	Scope     string // recipient company's collection id
	CompanyID string // recipient company id
	Title     string
	Text      string
	Priority  string
	Creator   string // user id of the actor
	ActionID  string // contract id the notification links to
	Source    Source
}

// Dispatcher persists notifications to recipient mailboxes and then pushes
// them to any live sessions.
type Dispatcher struct {
	mailbox  *mailboxstore.Store
	push     PushGateway
	idPrefix string
	zapLog   *zap.Logger
}

func NewDispatcher(mailbox *mailboxstore.Store, push PushGateway, idPrefix string, zapLog *zap.Logger) *Dispatcher {
	return &Dispatcher{mailbox: mailbox, push: push, idPrefix: idPrefix, zapLog: zapLog}
}

// newID builds the notification id from the recipient company and the
// current clock, matching the ids the rest of the platform generates.
func (d *Dispatcher) newID(companyID string, at time.Time) string {
	return d.idPrefix + strings.ToUpper(companyID) + strconv.FormatInt(at.UnixMilli(), 10)
}

// Dispatch persists m to every admin mailbox of the recipient company and
// then attempts live delivery. A push failure is logged and swallowed; a
// mailbox failure is returned so the caller can record the step.
func (d *Dispatcher) Dispatch(ctx context.Context, m Message) error {
	now := time.Now().UTC()
	n := models.Notification{
		ID:          d.newID(m.CompanyID, now),
		Type:        models.NotificationTypeProduct,
		Title:       m.Title,
		Text:        m.Text,
		Priority:    m.Priority,
		Creator:     m.Creator,
		ActionID:    m.ActionID,
		SourceName:  m.Source.Name,
		SourceID:    m.Source.CompanyID,
		SourceCID:   m.Source.Scope,
		TimeCreated: now,
	}

	if err := d.mailbox.AppendToAdmins(ctx, m.Group, m.Scope, m.CompanyID, n); err != nil {
		return err
	}

	if d.push == nil {
		return nil
	}
	ids, err := d.mailbox.AdminUserIDs(ctx, m.Group, m.Scope, m.CompanyID)
	if err != nil {
		d.zapLog.Warn("push recipient lookup failed",
			zap.String("company_id", m.CompanyID), zap.Error(err))
		return nil
	}
	for _, uid := range ids {
		if err := d.push.Push(ctx, uid, n); err != nil {
			d.zapLog.Warn("live push failed",
				zap.String("user_id", uid),
				zap.String("notification_id", n.ID),
				zap.Error(err))
		}
	}
	return nil
}
