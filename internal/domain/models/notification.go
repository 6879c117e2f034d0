// internal/domain/models/notification.go
package models

import "time"

// Notification types and priorities. Rejections are delivered to the
// vendor channel at high priority; everything else is normal.
const (
	NotificationTypeProduct = "product"

	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Recipient groups for notification fan-out.
const (
	RecipientCustomer = "customer"
	RecipientVendor   = "vendor"
)

// Notification is one append-only mailbox record. ID is generated as
// prefix + upper(companyId) + millis so records sort by creation time
// within a company.
type Notification struct {
	ID       string `bson:"id" json:"id"`
	Type     string `bson:"type" json:"type"`
	Title    string `bson:"title" json:"title"`
	Text     string `bson:"text" json:"text"`
	Priority string `bson:"priority" json:"priority"`

	// Creator is the acting user; ActionID correlates the record to the
	// contract that triggered it.
	Creator  string `bson:"creator" json:"creator"`
	ActionID string `bson:"actionId" json:"actionId"`

	// Source identifies the company the notification is about.
	SourceName string `bson:"sourceName" json:"sourceName"`
	SourceID   string `bson:"sourceId" json:"sourceId"`
	SourceCID  string `bson:"sourceCId" json:"sourceCId"`

	TimeCreated time.Time `bson:"timeCreated" json:"timeCreated"`
}
