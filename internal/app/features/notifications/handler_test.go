package notifications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/freighthub/internal/app/features/notifications"
	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
	"go.uber.org/zap"
)

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mailbox := mailboxstore.New(db)
	router := notifications.Routes(notifications.NewHandler(mailbox, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "cust1", "cu1")
	notifier := notify.NewDispatcher(mailbox, nil, "NTF", zap.NewNop())
	err := notifier.Dispatch(ctx, notify.Message{
		Group:     models.RecipientCustomer,
		Scope:     "custco",
		CompanyID: "cust1",
		Title:     "Contract Assigned",
		Text:      "FTL C1 by Vendor Co is awaiting your approval",
		Priority:  models.PriorityNormal,
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	user := testutil.CustomerUser("cust1", "custco")
	user.ID = admin.UID
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/", nil), user)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Notifications) != 1 || res.Notifications[0].Title != "Contract Assigned" {
		t.Errorf("unexpected mailbox: %+v", res.Notifications)
	}
}

func TestList_EmptyMailbox(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := notifications.Routes(notifications.NewHandler(mailboxstore.New(db), zap.NewNop()))

	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/", nil), testutil.CustomerUser("cust1", "custco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "\"notifications\":[]") {
		t.Errorf("empty mailbox must encode as [], got %s", rec.Body.String())
	}
}

func TestList_RequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := notifications.Routes(notifications.NewHandler(mailboxstore.New(db), zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous callers get 401, got %d", rec.Code)
	}
}
