// internal/domain/models/product.go
package models

import "time"

// Approval stages carried on pending entries. "new" is a first assignment,
// "edit" is a modification of an already-approved contract. The set is
// closed; approval dispatch branches on exactly these two values.
const (
	StageNew  = "new"
	StageEdit = "edit"
)

// ProductType tags entries created by this service.
const ProductTypeFTL = "ftl"

// ResponseApproved is the customer response that approves a pending
// assignment; any other response string is treated as a rejection.
const ResponseApproved = "approved"

// ProductEntry is the denormalized contract view stored in a customer
// repo document. The same shape serves both lists: while the customer's
// decision is pending it lives in unapprovedProducts; approval moves it
// (with CreditUsed reset and Date restamped) into products. An entry is
// never in both lists for the same (customer, contract) pair.
type ProductEntry struct {
	PID         string  `bson:"pId" json:"pId"`
	ProductName string  `bson:"productName" json:"productName"`
	ProductType string  `bson:"productType" json:"productType"`
	Billing     Billing `bson:"billing" json:"billing"`

	// Vendor identity denormalized for display.
	VendorID   string `bson:"vendorId" json:"vendorId"`
	VendorName string `bson:"vendorName" json:"vendorName"`
	VendorCID  string `bson:"vendorCId" json:"vendorCId"`
	VendorLogo string `bson:"vendorLogo" json:"vendorLogo"`

	// Stage is "new" or "edit"; Type is "direct" or "quotation".
	Stage string `bson:"approvalType" json:"approvalType"`
	Type  string `bson:"type" json:"type"`

	// QuotationID is set when the assignment originated from a quotation.
	QuotationID string `bson:"quotationId,omitempty" json:"quotationId,omitempty"`

	Enabled    bool      `bson:"enabled" json:"enabled"`
	CreditUsed float64   `bson:"creditUsed" json:"creditUsed"`
	Date       time.Time `bson:"date" json:"date"`

	// Logo of the customer company, stamped during approval for the
	// vendor-side reverse index.
	Logo string `bson:"logo,omitempty" json:"logo,omitempty"`

	// Edits holds field overrides while an edit-stage entry awaits the
	// customer's decision; cleared when the edit is approved.
	Edits map[string]any `bson:"edits,omitempty" json:"edits,omitempty"`
}
