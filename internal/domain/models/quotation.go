// internal/domain/models/quotation.go
package models

import "time"

// Quotation is a customer-initiated request vendors can respond to by
// assigning a contract. One quotation maps to at most one active contract
// assignment per vendor; the per-vendor response state lives in the
// vendors array.
type Quotation struct {
	ID string `bson:"id" json:"id"`

	// Originating customer identity. CompanyID is the customer company's
	// collection scope.
	CustomerID  string `bson:"customerId" json:"customerId"`
	CompanyID   string `bson:"companyId" json:"companyId"`
	CompanyName string `bson:"companyName" json:"companyName"`

	Vendors []QuotationVendor `bson:"vendors" json:"vendors"`

	CreatedAt time.Time `bson:"timeCreated" json:"timeCreated"`
}

// QuotationVendor is one vendor's response state on a quotation.
type QuotationVendor struct {
	VID           string    `bson:"vId" json:"vId"`
	Responded     bool      `bson:"responded" json:"responded"`
	TimeResponded time.Time `bson:"timeResponded,omitempty" json:"timeResponded,omitempty"`
	PID           string    `bson:"pId,omitempty" json:"pId,omitempty"`
	ProductName   string    `bson:"productName,omitempty" json:"productName,omitempty"`
}

// QuotationSnapshot is the quotation view written onto a catalog contract
// when the vendor assigns it against a quotation.
type QuotationSnapshot struct {
	ID          string  `bson:"id" json:"id"`
	CustomerID  string  `bson:"customerId" json:"customerId"`
	CompanyID   string  `bson:"companyId" json:"companyId"`
	CompanyName string  `bson:"companyName" json:"companyName"`
	Billing     Billing `bson:"billing" json:"billing"`
}
