// internal/app/store/vendorrepo/vendorrepostore.go
package vendorrepostore

import (
	"context"
	"time"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prefix for vendor repo collections; the full collection name is the
// prefix plus the vendor company's collection scope.
const Prefix = "vendorrepo_"

// Store maintains the vendor-side aggregates: the customers reverse index
// and the quotation response records.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(scope string) *mongo.Collection {
	return s.db.Collection(Prefix + scope)
}

// Get returns the vendor repo document, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, scope, vendorID string) (models.VendorRepo, error) {
	var r models.VendorRepo
	err := s.coll(scope).FindOne(ctx, bson.M{"vId": vendorID}).Decode(&r)
	return r, err
}

// AddCustomerRelation adds the customer to the vendor's reverse index,
// deduplicated by the full relation value. The repo document is created
// on first use.
func (s *Store) AddCustomerRelation(ctx context.Context, scope, vendorID string, rel models.CustomerRelation) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"vId": vendorID},
		bson.M{"$addToSet": bson.M{"customers": rel}},
		options.Update().SetUpsert(true))
	return err
}

// MarkQuotationResponded stamps the vendor's quotation record with the
// assigned contract after the customer approves it.
func (s *Store) MarkQuotationResponded(ctx context.Context, scope, vendorID, quotationID, contractID, productName string, at time.Time) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"vId": vendorID, "quotations.id": quotationID},
		bson.M{"$set": bson.M{
			"quotations.$.responded":     true,
			"quotations.$.pId":           contractID,
			"quotations.$.productName":   productName,
			"quotations.$.dateResponded": at,
		}})
	return err
}

// MarkQuotationRejected records the customer's rejection of a contract
// that was assigned against a quotation.
func (s *Store) MarkQuotationRejected(ctx context.Context, scope, vendorID, quotationID, reason string, at time.Time) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"vId": vendorID, "quotations.id": quotationID},
		bson.M{"$set": bson.M{
			"quotations.$.rejected":        true,
			"quotations.$.rejectionReason": reason,
			"quotations.$.dateResponded":   at,
		}})
	return err
}
