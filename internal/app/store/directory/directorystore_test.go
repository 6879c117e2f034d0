package directorystore_test

import (
	"testing"

	directorystore "github.com/dalemusser/freighthub/internal/app/store/directory"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestByCompanyID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := directorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := models.Company{
		CompanyID: "vend1",
		Scope:     "vendco",
		Name:      "Vendor Co",
		Email:     "ops@vendco.test",
		Type:      "freight",
		Kind:      models.KindVendor,
	}
	if err := store.Insert(ctx, want); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.ByCompanyID(ctx, "vend1")
	if err != nil {
		t.Fatalf("ByCompanyID failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestByCompanyID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := directorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.ByCompanyID(ctx, "ghost"); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
