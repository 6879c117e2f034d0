// internal/domain/models/billing.go
package models

// Assignment types recorded on billing snapshots and pending entries.
// "direct" means the vendor picked the customer; "quotation" means the
// vendor responded to a customer-initiated quotation.
const (
	AssignTypeDirect    = "direct"
	AssignTypeQuotation = "quotation"
)

// Billing schedule types. Exactly one of BillingDate / BillingRecursive is
// populated, selected by ScheduleType.
const (
	ScheduleDate      = "date"
	ScheduleRecursive = "recursive"
)

// Billing is the payment-terms snapshot tied to one customer+vendor pair.
// It is embedded in catalog customer links, pending assignments, and
// quotation records. Once a contract is approved the snapshot is immutable
// except for CreditUsed.
type Billing struct {
	PaymentType          string  `bson:"paymentType" json:"paymentType"`
	PaymentTime          string  `bson:"paymentTime" json:"paymentTime"`
	PrepaidPercent       float64 `bson:"prepaidPercent" json:"prepaidPercent"`
	PrepaidPercentOn     string  `bson:"prepaidPercentOn" json:"prepaidPercentOn"`
	CreditAmount         float64 `bson:"creditAmount" json:"creditAmount"`
	CreditAmountAssigned float64 `bson:"creditAmountAssigned" json:"creditAmountAssigned"`
	CreditUsed           float64 `bson:"creditUsed" json:"creditUsed"`

	ScheduleType     string `bson:"scheduleType" json:"scheduleType"` // "date" | "recursive"
	BillingDate      string `bson:"billingDate,omitempty" json:"billingDate,omitempty"`
	BillingRecursive int    `bson:"billingRecursiveDays,omitempty" json:"billingRecursiveDays,omitempty"`

	BillingInterestValue float64 `bson:"billingInterestValue" json:"billingInterestValue"`
	BillingInterestOn    string  `bson:"billingInterestOn" json:"billingInterestOn"`
	BillingInterestDays  int     `bson:"billingInterestDays" json:"billingInterestDays"`

	// Parties. VendorID is the billing vendor's company id; CompanyID is the
	// customer company's collection scope.
	VendorID    string `bson:"billingVId" json:"billingVId"`
	CustomerID  string `bson:"customerId" json:"customerId"`
	CompanyID   string `bson:"companyId" json:"companyId"`
	CompanyName string `bson:"companyName" json:"companyName"`

	// Type is the assignment type the snapshot was created under.
	Type string `bson:"type" json:"type"`
}
