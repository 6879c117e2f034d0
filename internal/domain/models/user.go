// internal/domain/models/user.go
package models

// CompanyUser is a user record inside a company-scoped users collection.
// Customer-side users carry cId, vendor-side users carry vId. The
// notifications list is the user's persisted mailbox (append-only).
type CompanyUser struct {
	UID   string `bson:"uId" json:"uId"`
	CID   string `bson:"cId,omitempty" json:"cId,omitempty"`
	VID   string `bson:"vId,omitempty" json:"vId,omitempty"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role" json:"role"` // "admin" users receive fan-out

	Notifications []Notification `bson:"notifications" json:"notifications"`
}
