// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// Blob backends accepted by blob_type.
const (
	BlobLocal = "local"
	BlobS3    = "s3"
	BlobNone  = "none"
)

// appConfigKeys defines the configuration keys for SciVisHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, blob_type, etc.
//   - Environment variables: SCIVISHUB_MONGO_URI, SCIVISHUB_BLOB_TYPE, etc.
//   - Command-line flags: --mongo_uri, --blob_type, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (blank disables the durable backend)"},
	{Name: "mongo_database", Default: "scivishub", Desc: "MongoDB database name"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "Timeout for the startup MongoDB probe"},

	// Blob storage
	{Name: "blob_type", Default: BlobLocal, Desc: "Blob backend: 'local', 's3' or 'none'"},
	{Name: "blob_local_path", Default: "./uploads", Desc: "Local blob root directory"},
	{Name: "blob_local_url", Default: "/files", Desc: "URL prefix for serving local blobs"},
	{Name: "blob_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "blob_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "blob_s3_prefix", Default: "", Desc: "S3 key prefix"},
	{Name: "blob_url_expiry", Default: "168h", Desc: "Presigned URL lifetime (max 168h)"},

	// Local fallback
	{Name: "fallback_path", Default: "./data/fallback.db", Desc: "SQLite file for submissions saved without the durable backend"},

	// Catalog
	{Name: "catalog_manifest", Default: "./catalog/catalog.yaml", Desc: "Catalog manifest listing the benchmark CSV sources"},

	// Browse-state cookie
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "scivishub-browse", Desc: "Browse-state cookie name"},

	// HTTP API
	{Name: "max_upload_mb", Default: 512, Desc: "Largest accepted submission request, in MiB"},
	{Name: "allowed_origins", Default: "*", Desc: "Comma-separated CORS origins for the JSON API"},
	{Name: "submit_rate_limit", Default: 30, Desc: "Submissions accepted per client per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// SCIVISHUB_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCIVISHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		// Blob storage
		BlobType:      strings.ToLower(strings.TrimSpace(appValues.String("blob_type"))),
		BlobLocalPath: appValues.String("blob_local_path"),
		BlobLocalURL:  appValues.String("blob_local_url"),
		BlobS3Region:  appValues.String("blob_s3_region"),
		BlobS3Bucket:  appValues.String("blob_s3_bucket"),
		BlobS3Prefix:  appValues.String("blob_s3_prefix"),
		BlobURLExpiry: appValues.Duration("blob_url_expiry", 168*time.Hour),

		FallbackPath:    appValues.String("fallback_path"),
		CatalogManifest: appValues.String("catalog_manifest"),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),

		MaxUploadMB:     appValues.Int("max_upload_mb"),
		AllowedOrigins:  splitList(appValues.String("allowed_origins")),
		SubmitRateLimit: appValues.Int("submit_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. A bad value
// aborts startup; an unreachable backend does not (see ConnectDB).
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required when mongo_uri is set")
		}
	}

	switch appCfg.BlobType {
	case BlobLocal:
		if appCfg.BlobLocalPath == "" {
			return fmt.Errorf("blob_local_path is required for blob_type=local")
		}
		if strings.Trim(appCfg.BlobLocalURL, "/") == "" {
			return fmt.Errorf("blob_local_url is required for blob_type=local")
		}
	case BlobS3:
		if appCfg.BlobS3Bucket == "" {
			return fmt.Errorf("blob_s3_bucket is required for blob_type=s3")
		}
	case BlobNone:
	default:
		return fmt.Errorf("blob_type must be %q, %q or %q, got %q", BlobLocal, BlobS3, BlobNone, appCfg.BlobType)
	}

	if appCfg.FallbackPath == "" {
		return fmt.Errorf("fallback_path is required")
	}
	if appCfg.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", appCfg.MaxUploadMB)
	}
	if appCfg.SubmitRateLimit < 0 {
		return fmt.Errorf("submit_rate_limit must not be negative, got %d", appCfg.SubmitRateLimit)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
