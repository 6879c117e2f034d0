// internal/domain/models/pincode.go
package models

// PincodeServiceability is the per-postal-code record of which contracts
// can deliver there and under what regional classification. The top-level
// classification fields are the vendor's source of truth; propagation
// merges them into the contract-tagged entries on approval.
type PincodeServiceability struct {
	Pincode string `bson:"pincode" json:"pincode"`

	Region    string `bson:"region" json:"region"`
	SubRegion string `bson:"subRegion" json:"subRegion"`
	Metro     bool   `bson:"metro" json:"metro"`
	ODA       bool   `bson:"oda" json:"oda"` // out-of-delivery-area

	Products []PincodeProduct `bson:"products" json:"products"`
}

// PincodeProduct is one contract-tagged service attribute entry on a
// pincode record.
type PincodeProduct struct {
	PID       string `bson:"pId" json:"pId"`
	Region    string `bson:"region,omitempty" json:"region,omitempty"`
	SubRegion string `bson:"subRegion,omitempty" json:"subRegion,omitempty"`
	Metro     bool   `bson:"metro" json:"metro"`
	ODA       bool   `bson:"oda" json:"oda"`
}
