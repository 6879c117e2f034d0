package mailboxstore_test

import (
	"testing"
	"time"

	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
)

func TestStore_AppendToAdmins_OnlyAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mailboxstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "CUST1", "U1")
	fixtures.CreateAdminUser(ctx, models.RecipientCustomer, "custco", "CUST1", "U2")

	// Non-admin user must not receive fan-out.
	member := models.CompanyUser{UID: "U3", CID: "CUST1", Role: "member", Notifications: []models.Notification{}}
	if err := store.InsertUser(ctx, models.RecipientCustomer, "custco", member); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	n := models.Notification{ID: "NTFCUST11", Title: "Contract Assigned", TimeCreated: time.Now().UTC()}
	if err := store.AppendToAdmins(ctx, models.RecipientCustomer, "custco", "CUST1", n); err != nil {
		t.Fatalf("AppendToAdmins failed: %v", err)
	}

	for _, uid := range []string{"U1", "U2"} {
		list, err := store.ForUser(ctx, models.RecipientCustomer, "custco", uid)
		if err != nil {
			t.Fatalf("ForUser(%s) failed: %v", uid, err)
		}
		if len(list) != 1 || list[0].ID != "NTFCUST11" {
			t.Errorf("expected one notification for %s, got %+v", uid, list)
		}
	}

	list, err := store.ForUser(ctx, models.RecipientCustomer, "custco", "U3")
	if err != nil {
		t.Fatalf("ForUser(U3) failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty mailbox for non-admin, got %+v", list)
	}
}

func TestStore_AdminUserIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mailboxstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdminUser(ctx, models.RecipientVendor, "vendco", "V1", "VU1")
	fixtures.CreateAdminUser(ctx, models.RecipientVendor, "vendco", "V1", "VU2")
	fixtures.CreateAdminUser(ctx, models.RecipientVendor, "vendco", "V2", "VU3")

	ids, err := store.AdminUserIDs(ctx, models.RecipientVendor, "vendco", "V1")
	if err != nil {
		t.Fatalf("AdminUserIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 admin ids for V1, got %v", ids)
	}
}

func TestStore_ForUser_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mailboxstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	list, err := store.ForUser(ctx, models.RecipientCustomer, "custco", "NOPE")
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if list != nil {
		t.Errorf("expected nil mailbox for unknown user, got %+v", list)
	}
}

func TestStore_UnknownGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mailboxstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.AppendToAdmins(ctx, "nobody", "custco", "CUST1", models.Notification{}); err == nil {
		t.Error("expected error for unknown recipient group")
	}
}
