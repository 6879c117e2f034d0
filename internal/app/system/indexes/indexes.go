// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup and covers the shared collections only.
Company-scoped collections (catalog_*, repo_*, vendorrepo_*, pincodes_*,
user mailboxes) are created lazily per company by provisioning, so their
indexes are ensured there, not here. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCompanies(ctx, db); err != nil {
		problems = append(problems, "companies: "+err.Error())
	}
	if err := ensureQuotations(ctx, db); err != nil {
		problems = append(problems, "quotations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates the desired indexes, tolerating ones that already
// exist. Mongo/DocDB reports an equivalent existing index as an options
// conflict rather than a no-op, so that case is treated as success.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if strings.Contains(err.Error(), "IndexOptionsConflict") ||
				strings.Contains(err.Error(), "IndexKeySpecsConflict") {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			return err
		}
		zap.L().Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	return nil
}

func ensureCompanies(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("companies"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "companyId", Value: 1}},
			Options: options.Index().SetName("uniq_company_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "collectionId", Value: 1}},
			Options: options.Index().SetName("by_collection_id"),
		},
	})
}

func ensureQuotations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("quotations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_quotation_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}, {Key: "vendors.vId", Value: 1}},
			Options: options.Index().SetName("by_quotation_vendor"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetName("by_customer_id"),
		},
	})
}
