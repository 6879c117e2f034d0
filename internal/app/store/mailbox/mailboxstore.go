// internal/app/store/mailbox/mailboxstore.go
package mailboxstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Prefixes for the two physical user-mailbox collection families.
const (
	CustomerPrefix = "customer_users_"
	VendorPrefix   = "vendor_users_"
)

// Store appends notification records to per-user mailboxes and resolves
// recipient user ids. Customer-side and vendor-side users live in separate
// collection families keyed by cId and vId respectively.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(group, scope string) (*mongo.Collection, string, error) {
	switch group {
	case models.RecipientCustomer:
		return s.db.Collection(CustomerPrefix + scope), "cId", nil
	case models.RecipientVendor:
		return s.db.Collection(VendorPrefix + scope), "vId", nil
	}
	return nil, "", fmt.Errorf("unknown recipient group %q", group)
}

// AppendToAdmins pushes the notification into the mailbox of every
// admin-role user of the company within the scope.
func (s *Store) AppendToAdmins(ctx context.Context, group, scope, companyID string, n models.Notification) error {
	c, key, err := s.coll(group, scope)
	if err != nil {
		return err
	}
	_, err = c.UpdateMany(ctx,
		bson.M{key: companyID, "role": "admin"},
		bson.M{"$push": bson.M{"notifications": n}})
	return err
}

// AdminUserIDs returns the user ids of the company's admin-role users,
// used as the push-delivery recipient set.
func (s *Store) AdminUserIDs(ctx context.Context, group, scope, companyID string) ([]string, error) {
	c, key, err := s.coll(group, scope)
	if err != nil {
		return nil, err
	}
	cur, err := c.Find(ctx,
		bson.M{key: companyID, "role": "admin"},
		options.Find().SetProjection(bson.M{"uId": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		UID string `bson:"uId"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UID)
	}
	return ids, nil
}

// InsertUser adds a user record to the group's collection for the scope.
func (s *Store) InsertUser(ctx context.Context, group, scope string, u models.CompanyUser) error {
	c, _, err := s.coll(group, scope)
	if err != nil {
		return err
	}
	_, err = c.InsertOne(ctx, u)
	return err
}

// ForUser returns one user's mailbox, newest record last (append order).
func (s *Store) ForUser(ctx context.Context, group, scope, userID string) ([]models.Notification, error) {
	c, _, err := s.coll(group, scope)
	if err != nil {
		return nil, err
	}
	var u models.CompanyUser
	if err := c.FindOne(ctx, bson.M{"uId": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return u.Notifications, nil
}
