package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
	"go.uber.org/zap"
)

// fakePush records live deliveries and optionally fails them.
type fakePush struct {
	delivered map[string][]models.Notification
	fail      bool
}

func newFakePush() *fakePush {
	return &fakePush{delivered: map[string][]models.Notification{}}
}

func (f *fakePush) Push(_ context.Context, userID string, n models.Notification) error {
	if f.fail {
		return errors.New("channel gone")
	}
	f.delivered[userID] = append(f.delivered[userID], n)
	return nil
}

func TestDispatch_PersistsToAdminsAndPushes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mailbox := mailboxstore.New(db)
	push := newFakePush()
	d := notify.NewDispatcher(mailbox, push, "NTF", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "cust1", "u1")
	fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "cust1", "u2")

	err := d.Dispatch(ctx, notify.Message{
		Group:     models.RecipientCustomer,
		Scope:     "custco",
		CompanyID: "cust1",
		Title:     "Contract Assigned",
		Text:      "FTL C1 by Vendor Co is awaiting your approval",
		Priority:  models.PriorityNormal,
		Creator:   "vuser",
		ActionID:  "C1",
		Source:    notify.Source{Name: "Vendor Co", CompanyID: "vend1", Scope: "vendco"},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	for _, uid := range []string{"u1", "u2"} {
		ns, err := mailbox.ForUser(ctx, models.RecipientCustomer, "custco", uid)
		if err != nil {
			t.Fatalf("ForUser(%s) failed: %v", uid, err)
		}
		if len(ns) != 1 {
			t.Fatalf("user %s: expected 1 notification, got %d", uid, len(ns))
		}
		n := ns[0]
		if !strings.HasPrefix(n.ID, "NTFCUST1") {
			t.Errorf("notification id %q should start with prefix and upper company id", n.ID)
		}
		if n.Type != models.NotificationTypeProduct {
			t.Errorf("type: got %q", n.Type)
		}
		if n.SourceID != "vend1" || n.SourceCID != "vendco" || n.SourceName != "Vendor Co" {
			t.Errorf("source fields wrong: %+v", n)
		}
		if len(push.delivered[uid]) != 1 {
			t.Errorf("user %s: expected 1 live push, got %d", uid, len(push.delivered[uid]))
		}
	}
}

func TestDispatch_PushFailureIsSwallowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mailbox := mailboxstore.New(db)
	push := newFakePush()
	push.fail = true
	d := notify.NewDispatcher(mailbox, push, "NTF", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdminUser(ctx, models.RecipientVendor, "vendco", "vend1", "u1")

	err := d.Dispatch(ctx, notify.Message{
		Group:     models.RecipientVendor,
		Scope:     "vendco",
		CompanyID: "vend1",
		Title:     "Contract Approved",
		Text:      "approved",
		Priority:  models.PriorityNormal,
	})
	if err != nil {
		t.Fatalf("push failure must not fail the dispatch: %v", err)
	}

	ns, err := mailbox.ForUser(ctx, models.RecipientVendor, "vendco", "u1")
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if len(ns) != 1 {
		t.Errorf("mailbox persistence must survive push failure, got %d notifications", len(ns))
	}
}

func TestDispatch_NilGatewayPersistsOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mailbox := mailboxstore.New(db)
	d := notify.NewDispatcher(mailbox, nil, "NTF", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "cust1", "u1")

	err := d.Dispatch(ctx, notify.Message{
		Group:     models.RecipientCustomer,
		Scope:     "custco",
		CompanyID: "cust1",
		Title:     "Contract Assigned",
		Text:      "text",
		Priority:  models.PriorityNormal,
	})
	if err != nil {
		t.Fatalf("Dispatch without a gateway failed: %v", err)
	}
	ns, err := mailbox.ForUser(ctx, models.RecipientCustomer, "custco", "u1")
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if len(ns) != 1 {
		t.Errorf("expected persisted notification, got %d", len(ns))
	}
}
