// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	documentstore "github.com/dalemusser/scivishub/internal/app/store/documents"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/indexes"
	"github.com/dalemusser/scivishub/internal/app/system/localkv"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB opens every backend. Only a failure to open the local fallback
// aborts startup; an unreachable MongoDB or blob store leaves the durable
// backend unavailable and submissions are kept locally.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	return OpenBackends(ctx, appCfg, logger)
}

// OpenBackends is ConnectDB without the WAFFLE core config, shared with
// the admin CLI.
func OpenBackends(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	kv, err := localkv.Open(appCfg.FallbackPath)
	if err != nil {
		return DBDeps{}, fmt.Errorf("open local fallback: %w", err)
	}
	deps.LocalKV = kv
	deps.Local = submission.NewLocalStore(kv)

	if err := openBlobs(ctx, appCfg, &deps, logger); err != nil {
		logger.Warn("blob store unavailable", zap.String("blob_type", appCfg.BlobType), zap.Error(err))
	}

	if appCfg.MongoURI != "" {
		client, err := connectMongo(ctx, appCfg)
		if err != nil {
			logger.Warn("MongoDB connect failed", zap.Error(err))
		} else {
			deps.MongoClient = client
			deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		}
	}

	// Interface values stay nil unless a backend really exists.
	var docs submission.DocumentStore
	if deps.MongoDatabase != nil {
		docs = documentstore.New(deps.MongoDatabase)
	}

	probeCtx, cancel := context.WithTimeout(ctx, connectTimeout(appCfg))
	defer cancel()
	deps.Backend = submission.Setup(probeCtx, docs, deps.Blobs, logger)
	if deps.Backend.Ok() {
		deps.Backend.Remote.SetURLExpiry(appCfg.BlobURLExpiry)
	}
	return deps, nil
}

func connectTimeout(appCfg AppConfig) time.Duration {
	if appCfg.MongoConnectTimeout > 0 {
		return appCfg.MongoConnectTimeout
	}
	return timeouts.Ping()
}

func connectMongo(ctx context.Context, appCfg AppConfig) (*mongo.Client, error) {
	d := connectTimeout(appCfg)
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetServerSelectionTimeout(d).
		SetConnectTimeout(d)
	return mongo.Connect(ctx, opts)
}

func openBlobs(ctx context.Context, appCfg AppConfig, deps *DBDeps, logger *zap.Logger) error {
	switch appCfg.BlobType {
	case BlobLocal:
		local, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.BlobLocalPath,
			BaseURL:  appCfg.BlobLocalURL,
		})
		if err != nil {
			return err
		}
		deps.Blobs = local
		deps.LocalBlobs = local
		logger.Info("local blob store ready",
			zap.String("path", appCfg.BlobLocalPath),
			zap.String("url", appCfg.BlobLocalURL))
	case BlobS3:
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Region: appCfg.BlobS3Region,
			Bucket: appCfg.BlobS3Bucket,
			Prefix: appCfg.BlobS3Prefix,
		})
		if err != nil {
			return err
		}
		deps.Blobs = s3
		logger.Info("S3 blob store ready", zap.String("bucket", appCfg.BlobS3Bucket))
	}
	return nil
}

// EnsureSchema creates the submission indexes when the durable backend is
// up. With the local fallback there is nothing to prepare.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if !deps.Backend.Ok() || deps.MongoDatabase == nil {
		logger.Info("skipping index setup; durable backend unavailable")
		return nil
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	return nil
}
