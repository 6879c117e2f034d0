package pincodestore_test

import (
	"testing"

	pincodestore "github.com/dalemusser/freighthub/internal/app/store/pincodes"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
)

func TestStore_ByContract(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pincodestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreatePincode(ctx, "vendco", "110001", "C1")
	fixtures.CreatePincode(ctx, "vendco", "110002", "C1")
	fixtures.CreatePincode(ctx, "vendco", "110003", "C2")

	rows, err := store.ByContract(ctx, "vendco", "C1")
	if err != nil {
		t.Fatalf("ByContract failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 pincodes for C1, got %d", len(rows))
	}
}

func TestStore_BulkMerge_UpsertsAndDeduplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pincodestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	merge := pincodestore.Merge{
		Pincode: "110001",
		Product: models.PincodeProduct{PID: "C1", Region: "north", Metro: true},
	}

	// First merge creates the pincode record in the customer scope.
	if err := store.BulkMerge(ctx, "custco", []pincodestore.Merge{merge}); err != nil {
		t.Fatalf("BulkMerge failed: %v", err)
	}
	p, err := store.Get(ctx, "custco", "110001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Products) != 1 || p.Products[0].PID != "C1" {
		t.Fatalf("expected one product entry for C1, got %+v", p.Products)
	}

	// Replaying the identical merge must not duplicate the entry.
	if err := store.BulkMerge(ctx, "custco", []pincodestore.Merge{merge}); err != nil {
		t.Fatalf("BulkMerge replay failed: %v", err)
	}
	p, err = store.Get(ctx, "custco", "110001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Products) != 1 {
		t.Errorf("expected set semantics on replay, got %d entries", len(p.Products))
	}

	// A different contract on the same pincode appends.
	other := pincodestore.Merge{
		Pincode: "110001",
		Product: models.PincodeProduct{PID: "C2", Region: "north", Metro: true},
	}
	if err := store.BulkMerge(ctx, "custco", []pincodestore.Merge{other}); err != nil {
		t.Fatalf("BulkMerge failed: %v", err)
	}
	p, err = store.Get(ctx, "custco", "110001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.Products) != 2 {
		t.Errorf("expected 2 product entries, got %d", len(p.Products))
	}
}
