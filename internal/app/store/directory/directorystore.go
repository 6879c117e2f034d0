// internal/app/store/directory/directorystore.go
package directorystore

import (
	"context"

	"github.com/dalemusser/freighthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the company directory: the single shared collection that maps
// a company id to its collection scope and display identity.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("companies")}
}

// ByCompanyID returns the directory entry for the company, or
// mongo.ErrNoDocuments.
func (s *Store) ByCompanyID(ctx context.Context, companyID string) (models.Company, error) {
	var c models.Company
	err := s.c.FindOne(ctx, bson.M{"companyId": companyID}).Decode(&c)
	return c, err
}

// Insert adds a directory entry.
func (s *Store) Insert(ctx context.Context, c models.Company) error {
	_, err := s.c.InsertOne(ctx, c)
	return err
}
