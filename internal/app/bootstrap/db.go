// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/app/system/indexes"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
)

// ConnectDB establishes the MongoDB connection and, when configured, the
// Redis push connection. A missing Redis address is not an error; live
// push is simply disabled.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	if appCfg.RedisAddr != "" {
		push, err := notify.NewRedisPush(appCfg.RedisAddr, appCfg.RedisPushChannelPrefix)
		if err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, err
		}
		logger.Info("connected to Redis for live push", zap.String("addr", appCfg.RedisAddr))
		deps.Push = push
	} else {
		logger.Info("live push disabled (no redis_addr configured)")
	}

	return deps, nil
}

// EnsureSchema sets up indexes on the shared collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
