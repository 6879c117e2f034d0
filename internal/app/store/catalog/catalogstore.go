// internal/app/store/catalog/catalogstore.go
package catalogstore

import (
	"context"
	"time"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prefix for vendor catalog collections; the full collection name is the
// prefix plus the vendor company's collection scope.
const Prefix = "catalog_"

// Store reads and mutates vendor product catalog collections. Every method
// takes the vendor scope because each vendor company has its own catalog
// collection.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(scope string) *mongo.Collection {
	return s.db.Collection(Prefix + scope)
}

// Get returns the contract with the given id, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, scope, contractID string) (models.Contract, error) {
	var c models.Contract
	err := s.coll(scope).FindOne(ctx, bson.M{"contractId": contractID}).Decode(&c)
	return c, err
}

// Insert adds a new contract document to the vendor's catalog.
func (s *Store) Insert(ctx context.Context, scope string, c models.Contract) error {
	_, err := s.coll(scope).InsertOne(ctx, c)
	return err
}

// PullCustomer removes the customer's link from the contract's customers
// list. Removing a link that is not there is a no-op.
func (s *Store) PullCustomer(ctx context.Context, scope, contractID, customerID string) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"contractId": contractID},
		bson.M{"$pull": bson.M{"customers": bson.M{"customerId": customerID}}})
	return err
}

// PushCustomer appends a customer link to the contract and returns the
// updated contract. Returns mongo.ErrNoDocuments if the contract does not
// exist.
func (s *Store) PushCustomer(ctx context.Context, scope, contractID string, link models.CustomerLink) (models.Contract, error) {
	var c models.Contract
	err := s.coll(scope).FindOneAndUpdate(ctx,
		bson.M{"contractId": contractID},
		bson.M{"$push": bson.M{"customers": link}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	return c, err
}

// SetQuotationSnapshot writes the quotation view onto the contract when it
// is assigned against a customer quotation.
func (s *Store) SetQuotationSnapshot(ctx context.Context, scope, contractID string, snap models.QuotationSnapshot) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"contractId": contractID},
		bson.M{"$set": bson.M{"quotation": snap}})
	return err
}

// AppendLog appends one entry to the contract's log sequence. If the entry
// time is zero it is stamped with now (UTC).
func (s *Store) AppendLog(ctx context.Context, scope, contractID string, entry models.LogEntry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"contractId": contractID},
		bson.M{"$push": bson.M{"logs": entry}})
	return err
}

// ApproveCustomerBilling marks the customer's link approved, replaces its
// billing snapshot, and appends the approval log entry in one update.
func (s *Store) ApproveCustomerBilling(ctx context.Context, scope, contractID, customerID string, billing models.Billing, entry models.LogEntry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"contractId": contractID, "customers.customerId": customerID},
		bson.M{
			"$set": bson.M{
				"customers.$.billing":  billing,
				"customers.$.approved": true,
			},
			"$push": bson.M{"logs": entry},
		})
	return err
}

// Enabled returns the contract's enabled flag, or mongo.ErrNoDocuments.
func (s *Store) Enabled(ctx context.Context, scope, contractID string) (bool, error) {
	var c struct {
		Enabled bool `bson:"isContractEnabled"`
	}
	err := s.coll(scope).FindOne(ctx,
		bson.M{"contractId": contractID},
		options.FindOne().SetProjection(bson.M{"isContractEnabled": 1})).Decode(&c)
	return c.Enabled, err
}
