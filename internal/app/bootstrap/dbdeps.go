// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/freighthub/internal/app/system/notify"
)

// DBDeps holds database/back-end dependencies for the app.
// Push is nil when live push is not configured.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Push          *notify.RedisPush
}
