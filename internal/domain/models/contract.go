// internal/domain/models/contract.go
package models

import "time"

// Contract is a vendor-offered freight service in the vendor's catalog
// collection. Contracts are never physically deleted; assignment and
// approval steps mutate the customers list, billing snapshots, and the
// append-only logs sequence.
type Contract struct {
	ContractID  string `bson:"contractId" json:"contractId"`
	ProductName string `bson:"productName" json:"productName"`

	// Owning vendor identity.
	VendorID    string `bson:"vendorId" json:"vendorId"`
	VendorCID   string `bson:"vendorCId" json:"vendorCId"`
	CompanyName string `bson:"companyName" json:"companyName"`
	CompanyLogo string `bson:"companyLogo" json:"companyLogo"`

	Enabled bool `bson:"isContractEnabled" json:"isContractEnabled"`

	Customers []CustomerLink `bson:"customers" json:"customers"`
	Logs      []LogEntry     `bson:"logs" json:"logs"`

	// Quotation holds the latest quotation snapshot written when the
	// contract was assigned against a customer quotation.
	Quotation *QuotationSnapshot `bson:"quotation,omitempty" json:"quotation,omitempty"`
}

// CustomerLink records one customer the contract has been offered to,
// with the billing terms agreed for that pair. Approved flips to true
// when the customer approves the assignment.
type CustomerLink struct {
	CustomerID   string  `bson:"customerId" json:"customerId"`
	CustomerName string  `bson:"customerName" json:"customerName"`
	CustomerCID  string  `bson:"customerCId" json:"customerCId"`
	Approved     bool    `bson:"approved" json:"approved"`
	Billing      Billing `bson:"billing" json:"billing"`
}

// LogEntry is one line of a contract's append-only history.
type LogEntry struct {
	Text string    `bson:"text" json:"text"`
	Time time.Time `bson:"time" json:"time"`
}
