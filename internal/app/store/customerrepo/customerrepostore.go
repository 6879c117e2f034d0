// internal/app/store/customerrepo/customerrepostore.go
package customerrepostore

import (
	"context"
	"time"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prefix for customer repo collections; the full collection name is the
// prefix plus the customer company's collection scope.
const Prefix = "repo_"

// Store reads and mutates customer repo documents: the per-company
// aggregates of approved products, pending assignments, and vendor
// relations. There is no cross-collection transaction; callers sequence
// multi-step updates and log each step.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(scope string) *mongo.Collection {
	return s.db.Collection(Prefix + scope)
}

// Get returns the repo document for the customer company, or
// mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, scope, customerID string) (models.CustomerRepo, error) {
	var r models.CustomerRepo
	err := s.coll(scope).FindOne(ctx, bson.M{"cId": customerID}).Decode(&r)
	return r, err
}

// Pending returns the customer's pending assignments.
func (s *Store) Pending(ctx context.Context, scope, customerID string) ([]models.ProductEntry, error) {
	r, err := s.Get(ctx, scope, customerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return r.Unapproved, nil
}

// InsertPending appends a pending assignment to the customer's unapproved
// list, creating the repo document if it does not exist yet.
func (s *Store) InsertPending(ctx context.Context, scope, customerID string, entry models.ProductEntry) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"cId": customerID},
		bson.M{
			"$push":        bson.M{"unapprovedProducts": entry},
			"$setOnInsert": bson.M{"companyId": scope},
		},
		options.Update().SetUpsert(true))
	return err
}

// RemovePending pulls every pending entry for the contract from the
// customer's unapproved list.
func (s *Store) RemovePending(ctx context.Context, scope, customerID, contractID string) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"cId": customerID, "unapprovedProducts.pId": contractID},
		bson.M{"$pull": bson.M{"unapprovedProducts": bson.M{"pId": contractID}}})
	return err
}

// RemoveApproved pulls every approved entry for the contract from the
// customer's products list. Re-assignment implicitly un-approves.
func (s *Store) RemoveApproved(ctx context.Context, scope, customerID, contractID string) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"cId": customerID, "products.pId": contractID},
		bson.M{"$pull": bson.M{"products": bson.M{"pId": contractID}}})
	return err
}

// HasApproved reports whether the customer already has an approved entry
// for the (contract, vendor) pair. This is the duplicate-action guard
// lookup: presence means the approval was already applied.
func (s *Store) HasApproved(ctx context.Context, scope, customerID, contractID, vendorID string) (bool, error) {
	n, err := s.coll(scope).CountDocuments(ctx, bson.M{
		"cId":      customerID,
		"products": bson.M{"$elemMatch": bson.M{"pId": contractID, "vendorId": vendorID}},
	})
	return n > 0, err
}

// MoveToApproved moves a pending entry into the approved list in one
// update: pull from unapprovedProducts, push into products, and either
// add the vendor relation (rel non-nil) or increment the existing
// relation's products counter.
//
// The filter excludes documents that already hold an approved entry for
// the same (contract, vendor) pair, so of two racing approvals only one
// write matches; the loser sees moved == false.
func (s *Store) MoveToApproved(ctx context.Context, scope, customerID string, entry models.ProductEntry, rel *models.VendorRelation) (bool, error) {
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	filter := bson.M{
		"cId": customerID,
		"products": bson.M{"$not": bson.M{
			"$elemMatch": bson.M{"pId": entry.PID, "vendorId": entry.VendorID},
		}},
	}
	update := bson.M{
		"$pull": bson.M{"unapprovedProducts": bson.M{"pId": entry.PID}},
		"$push": bson.M{"products": entry},
	}
	if rel != nil {
		update["$addToSet"] = bson.M{"vendors": *rel}
	} else {
		filter["vendors.vId"] = entry.VendorID
		update["$inc"] = bson.M{"vendors.$.products": 1}
	}

	res, err := s.coll(scope).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// PromoteEdit replaces the approved entry for the contract with the edited
// one and drops the pending entry. Edits never change identity, only
// content, so no vendor-relation or counter work happens here.
func (s *Store) PromoteEdit(ctx context.Context, scope, customerID string, entry models.ProductEntry) error {
	// Drop the superseded approved entry first so the push below cannot
	// leave two entries for the same contract.
	if err := s.RemoveApproved(ctx, scope, customerID, entry.PID); err != nil {
		return err
	}
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"cId": customerID, "unapprovedProducts.pId": entry.PID},
		bson.M{
			"$push": bson.M{"products": entry},
			"$pull": bson.M{"unapprovedProducts": bson.M{"pId": entry.PID}},
		})
	return err
}

// SetProductEnabled mirrors the vendor catalog's enabled flag onto the
// customer's approved entry for the contract.
func (s *Store) SetProductEnabled(ctx context.Context, scope, customerID, contractID string, enabled bool) error {
	_, err := s.coll(scope).UpdateOne(ctx,
		bson.M{"cId": customerID, "products.pId": contractID},
		bson.M{"$set": bson.M{"products.$.enabled": enabled}})
	return err
}
