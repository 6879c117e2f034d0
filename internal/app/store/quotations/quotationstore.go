// internal/app/store/quotations/quotationstore.go
package quotationstore

import (
	"context"
	"time"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads and mutates the shared quotations collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("quotations")}
}

// Get returns the quotation with the given id, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, quotationID string) (models.Quotation, error) {
	var q models.Quotation
	err := s.c.FindOne(ctx, bson.M{"id": quotationID}).Decode(&q)
	return q, err
}

// Insert adds a new quotation document.
func (s *Store) Insert(ctx context.Context, q models.Quotation) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, q)
	return err
}

// RespondAndAssign marks the vendor's entry on the quotation as responded
// and stamps the assigned contract id and name. Returns the updated
// quotation, or mongo.ErrNoDocuments if no quotation matches the
// (quotation, vendor) pair.
func (s *Store) RespondAndAssign(ctx context.Context, quotationID, vendorID, contractID, productName string, at time.Time) (models.Quotation, error) {
	var q models.Quotation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"id": quotationID, "vendors.vId": vendorID},
		bson.M{"$set": bson.M{
			"vendors.$.responded":     true,
			"vendors.$.timeResponded": at,
			"vendors.$.pId":           contractID,
			"vendors.$.productName":   productName,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&q)
	return q, err
}
