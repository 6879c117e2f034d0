// internal/domain/models/customerrepo.go
package models

// CustomerRepo is the per-customer-company aggregate document. products
// holds approved contracts, unapprovedProducts holds pending assignments,
// and vendors is the reverse index of vendor relations with a counter of
// approved products per relation.
//
// Invariant: a vendors entry exists iff at least one approved product links
// the pair, and its products counter equals the number of such contracts.
type CustomerRepo struct {
	CID       string `bson:"cId" json:"cId"`
	CompanyID string `bson:"companyId" json:"companyId"`
	Logo      string `bson:"logo" json:"logo"`

	Products   []ProductEntry   `bson:"products" json:"products"`
	Unapproved []ProductEntry   `bson:"unapprovedProducts" json:"unapprovedProducts"`
	Vendors    []VendorRelation `bson:"vendors" json:"vendors"`
}

// VendorRelation links a customer company to a vendor with a count of
// approved products between them.
type VendorRelation struct {
	VID       string `bson:"vId" json:"vId"`
	CompanyID string `bson:"companyId" json:"companyId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Type      string `bson:"type" json:"type"`
	Products  int    `bson:"products" json:"products"`
}

// HasVendor reports whether the repo already carries a relation for the
// given vendor id.
func (r CustomerRepo) HasVendor(vendorID string) bool {
	for _, v := range r.Vendors {
		if v.VID == vendorID {
			return true
		}
	}
	return false
}

// PendingByContract returns the pending entries whose pId matches.
func (r CustomerRepo) PendingByContract(contractID string) []ProductEntry {
	var out []ProductEntry
	for _, p := range r.Unapproved {
		if p.PID == contractID {
			out = append(out, p)
		}
	}
	return out
}
