// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/localkv"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends the app runs on. Mongo fields and Blobs are
// nil when that backend is not configured or could not be reached.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Blobs      storage.Store
	LocalBlobs *storage.Local // set when Blobs is the local store

	LocalKV *localkv.Store

	// Backend is the outcome of the one-time durable backend probe.
	Backend submission.Backend
	Local   *submission.LocalStore
}
