// internal/domain/models/company.go
package models

// Company kinds in the directory.
const (
	KindVendor   = "vendor"
	KindCustomer = "customer"
)

// Company is a directory entry mapping a company id to its collection
// scope and display identity. Company-scoped collections (catalog, repo,
// pincodes, user mailboxes) are addressed by Scope.
type Company struct {
	CompanyID string `bson:"companyId" json:"companyId"`
	Scope     string `bson:"collectionId" json:"collectionId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Type      string `bson:"type" json:"type"`
	Kind      string `bson:"kind" json:"kind"` // "vendor" | "customer"
	Logo      string `bson:"logo" json:"logo"`
}
