// internal/domain/models/vendorrepo.go
package models

import "time"

// VendorRepo is the per-vendor-company aggregate document: the reverse
// index of customer relations plus the vendor's quotation response records.
type VendorRepo struct {
	VID        string             `bson:"vId" json:"vId"`
	Customers  []CustomerRelation `bson:"customers" json:"customers"`
	Quotations []QuotationRecord  `bson:"quotations" json:"quotations"`
}

// CustomerRelation is the vendor-side mirror of a customer link,
// deduplicated by customer id.
type CustomerRelation struct {
	CID       string `bson:"cId" json:"cId"`
	CompanyID string `bson:"companyId" json:"companyId"`
	Name      string `bson:"name" json:"name"`
	Type      string `bson:"type" json:"type"`
	Logo      string `bson:"logo" json:"logo"`
	Email     string `bson:"email" json:"email"`
}

// QuotationRecord tracks the vendor's response to one customer quotation
// and the customer's eventual decision on the assigned contract.
type QuotationRecord struct {
	ID            string    `bson:"id" json:"id"`
	Responded     bool      `bson:"responded" json:"responded"`
	PID           string    `bson:"pId,omitempty" json:"pId,omitempty"`
	ProductName   string    `bson:"productName,omitempty" json:"productName,omitempty"`
	DateResponded time.Time `bson:"dateResponded,omitempty" json:"dateResponded,omitempty"`

	Rejected        bool   `bson:"rejected,omitempty" json:"rejected,omitempty"`
	RejectionReason string `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}
