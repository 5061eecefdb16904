// Package cli implements scivisctl, the administrative command line for
// SciVisHub. It opens the same backends as the web service and exposes the
// operations the HTTP API does not: export, delete, sample seeding and the
// catalog report.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/scivishub/internal/app/bootstrap"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDebug bool
	appCfg    bootstrap.AppConfig

	logger *zap.Logger
)

// envOr returns SCIVISHUB_<key> when set, else def.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv("SCIVISHUB_" + key); ok {
		return v
	}
	return def
}

// NewRootCmd creates the root cobra command for scivisctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scivisctl",
		Short: "SciVisHub administration",
		Long:  "scivisctl exports, deletes and seeds benchmark submissions and reports on the test-case catalog.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(flagDebug)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			logger = l
			return nil
		},
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	f.StringVar(&appCfg.MongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB URI, blank for the local fallback only (or SCIVISHUB_MONGO_URI env)")
	f.StringVar(&appCfg.MongoDatabase, "mongo-database", envOr("MONGO_DATABASE", "scivishub"), "MongoDB database name (or SCIVISHUB_MONGO_DATABASE env)")
	f.DurationVar(&appCfg.MongoConnectTimeout, "mongo-connect-timeout", 10*time.Second, "Timeout for the MongoDB probe")
	f.StringVar(&appCfg.BlobType, "blob-type", envOr("BLOB_TYPE", bootstrap.BlobLocal), "Blob backend: local, s3 or none (or SCIVISHUB_BLOB_TYPE env)")
	f.StringVar(&appCfg.BlobLocalPath, "blob-local-path", envOr("BLOB_LOCAL_PATH", "./uploads"), "Local blob root (or SCIVISHUB_BLOB_LOCAL_PATH env)")
	f.StringVar(&appCfg.BlobLocalURL, "blob-local-url", envOr("BLOB_LOCAL_URL", "/files"), "URL prefix for local blobs (or SCIVISHUB_BLOB_LOCAL_URL env)")
	f.StringVar(&appCfg.BlobS3Region, "blob-s3-region", envOr("BLOB_S3_REGION", ""), "AWS region (or SCIVISHUB_BLOB_S3_REGION env)")
	f.StringVar(&appCfg.BlobS3Bucket, "blob-s3-bucket", envOr("BLOB_S3_BUCKET", ""), "S3 bucket (or SCIVISHUB_BLOB_S3_BUCKET env)")
	f.StringVar(&appCfg.BlobS3Prefix, "blob-s3-prefix", envOr("BLOB_S3_PREFIX", ""), "S3 key prefix (or SCIVISHUB_BLOB_S3_PREFIX env)")
	f.StringVar(&appCfg.FallbackPath, "fallback-path", envOr("FALLBACK_PATH", "./data/fallback.db"), "SQLite file of the local fallback (or SCIVISHUB_FALLBACK_PATH env)")
	f.StringVar(&appCfg.CatalogManifest, "catalog-manifest", envOr("CATALOG_MANIFEST", "./catalog/catalog.yaml"), "Catalog manifest (or SCIVISHUB_CATALOG_MANIFEST env)")

	root.AddCommand(
		newExportCmd(),
		newDeleteCmd(),
		newSeedCmd(),
		newStatsCmd(),
		newCatalogCmd(),
	)

	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openBackends opens the configured backends. The returned func closes
// them.
func openBackends(cmd *cobra.Command) (bootstrap.DBDeps, func(), error) {
	switch appCfg.BlobType {
	case bootstrap.BlobLocal, bootstrap.BlobS3, bootstrap.BlobNone:
	default:
		return bootstrap.DBDeps{}, nil, fmt.Errorf("--blob-type must be %q, %q or %q, got %q",
			bootstrap.BlobLocal, bootstrap.BlobS3, bootstrap.BlobNone, appCfg.BlobType)
	}

	deps, err := bootstrap.OpenBackends(cmd.Context(), appCfg, logger)
	if err != nil {
		return bootstrap.DBDeps{}, nil, err
	}
	if !deps.Backend.Ok() {
		fmt.Fprintln(cmd.ErrOrStderr(), "durable backend unavailable; using the local fallback only")
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Write())
		defer cancel()
		if err := bootstrap.CloseBackends(ctx, deps, logger); err != nil {
			logger.Warn("close backends", zap.Error(err))
		}
	}
	return deps, closeFn, nil
}
