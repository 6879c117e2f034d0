// internal/app/store/pincodes/pincodestore.go
package pincodestore

import (
	"context"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prefix for pincode serviceability collections; the full collection name
// is the prefix plus a company's collection scope.
const Prefix = "pincodes_"

// Store reads and mutates pincode serviceability collections.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(scope string) *mongo.Collection {
	return s.db.Collection(Prefix + scope)
}

// Get returns the record for one pincode, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, scope, pincode string) (models.PincodeServiceability, error) {
	var p models.PincodeServiceability
	err := s.coll(scope).FindOne(ctx, bson.M{"pincode": pincode}).Decode(&p)
	return p, err
}

// Insert adds a pincode record.
func (s *Store) Insert(ctx context.Context, scope string, p models.PincodeServiceability) error {
	_, err := s.coll(scope).InsertOne(ctx, p)
	return err
}

// ByContract returns every pincode record tagged with the contract.
func (s *Store) ByContract(ctx context.Context, scope, contractID string) ([]models.PincodeServiceability, error) {
	cur, err := s.coll(scope).Find(ctx, bson.M{"products.pId": contractID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.PincodeServiceability
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge is one pincode's contract-tagged attribute update.
type Merge struct {
	Pincode string
	Product models.PincodeProduct
}

// BulkMerge submits all merges as a single batch. Each merge adds the
// contract-tagged attribute entry to its pincode's products list with set
// semantics: an existing identical entry is not duplicated. Pincodes not
// yet present in the scope are created. Callers must not submit an empty
// batch (mongo rejects empty bulk writes); they skip the call instead.
func (s *Store) BulkMerge(ctx context.Context, scope string, merges []Merge) error {
	writes := make([]mongo.WriteModel, 0, len(merges))
	for _, m := range merges {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"pincode": m.Pincode}).
			SetUpdate(bson.M{"$addToSet": bson.M{"products": m.Product}}).
			SetUpsert(true))
	}
	_, err := s.coll(scope).BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
