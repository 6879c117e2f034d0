package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	catalogstore "github.com/dalemusser/freighthub/internal/app/store/catalog"
	customerrepostore "github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	pincodestore "github.com/dalemusser/freighthub/internal/app/store/pincodes"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCompany inserts a directory entry mapping companyID to scope.
func (f *Fixtures) CreateCompany(ctx context.Context, companyID, scope, name, kind string) models.Company {
	f.t.Helper()

	c := models.Company{
		CompanyID: companyID,
		Scope:     scope,
		Name:      name,
		Email:     companyID + "@test.com",
		Type:      "freight",
		Kind:      kind,
	}
	if _, err := f.db.Collection("companies").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create company %s: %v", companyID, err)
	}
	return c
}

// CreateContract inserts a catalog contract owned by the vendor.
func (f *Fixtures) CreateContract(ctx context.Context, vendorScope, contractID string, vendor models.Company) models.Contract {
	f.t.Helper()

	c := models.Contract{
		ContractID:  contractID,
		ProductName: "FTL " + contractID,
		VendorID:    vendor.CompanyID,
		VendorCID:   vendor.Scope,
		CompanyName: vendor.Name,
		Enabled:     true,
		Customers:   []models.CustomerLink{},
		Logs:        []models.LogEntry{},
	}
	if _, err := f.db.Collection(catalogstore.Prefix + vendorScope).InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create contract %s: %v", contractID, err)
	}
	return c
}

// CreateCustomerRepo inserts a customer repo document.
func (f *Fixtures) CreateCustomerRepo(ctx context.Context, scope, customerID string) models.CustomerRepo {
	f.t.Helper()

	r := models.CustomerRepo{
		CID:        customerID,
		CompanyID:  scope,
		Logo:       "logo-" + customerID,
		Products:   []models.ProductEntry{},
		Unapproved: []models.ProductEntry{},
		Vendors:    []models.VendorRelation{},
	}
	if _, err := f.db.Collection(customerrepostore.Prefix + scope).InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create customer repo for %s: %v", customerID, err)
	}
	return r
}

// CreateQuotation inserts a quotation from the customer with the given
// vendors able to respond.
func (f *Fixtures) CreateQuotation(ctx context.Context, quotationID string, customer models.Company, vendorIDs ...string) models.Quotation {
	f.t.Helper()

	vendors := make([]models.QuotationVendor, 0, len(vendorIDs))
	for _, v := range vendorIDs {
		vendors = append(vendors, models.QuotationVendor{VID: v})
	}
	q := models.Quotation{
		ID:          quotationID,
		CustomerID:  customer.CompanyID,
		CompanyID:   customer.Scope,
		CompanyName: customer.Name,
		Vendors:     vendors,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("quotations").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create quotation %s: %v", quotationID, err)
	}
	return q
}

// CreatePincode inserts a vendor-scope pincode record tagged with the
// contract.
func (f *Fixtures) CreatePincode(ctx context.Context, scope, pincode, contractID string) models.PincodeServiceability {
	f.t.Helper()

	p := models.PincodeServiceability{
		Pincode:   pincode,
		Region:    "north",
		SubRegion: "metro-north",
		Metro:     true,
		ODA:       false,
		Products:  []models.PincodeProduct{{PID: contractID}},
	}
	if _, err := f.db.Collection(pincodestore.Prefix + scope).InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create pincode %s: %v", pincode, err)
	}
	return p
}

// CreateAdminUser inserts an admin-role user into the group's mailbox
// collection for the scope.
func (f *Fixtures) CreateAdminUser(ctx context.Context, group, scope, companyID, userID string) models.CompanyUser {
	f.t.Helper()

	u := models.CompanyUser{
		UID:           userID,
		Name:          "user-" + userID,
		Email:         userID + "@test.com",
		Role:          "admin",
		Notifications: []models.Notification{},
	}
	var coll string
	switch group {
	case models.RecipientCustomer:
		u.CID = companyID
		coll = mailboxstore.CustomerPrefix + scope
	case models.RecipientVendor:
		u.VID = companyID
		coll = mailboxstore.VendorPrefix + scope
	default:
		f.t.Fatalf("unknown recipient group %q", group)
	}
	if _, err := f.db.Collection(coll).InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create user %s: %v", userID, err)
	}
	return u
}
