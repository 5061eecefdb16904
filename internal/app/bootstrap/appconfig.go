// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from environment variables (SCIVISHUB_*), configuration
// files, or command-line flags, loaded in LoadConfig. WAFFLE's CoreConfig
// covers framework-level settings such as ports, TLS and log level.
type AppConfig struct {
	// Durable document store. An empty URI means no durable backend:
	// every submission goes to the local fallback.
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration // bound on the startup probe

	// Blob storage
	BlobType      string // "local", "s3" or "none"
	BlobLocalPath string // root directory for local blobs
	BlobLocalURL  string // URL prefix local blobs are served under
	BlobS3Region  string
	BlobS3Bucket  string
	BlobS3Prefix  string
	BlobURLExpiry time.Duration // presigned URL lifetime (S3 only)

	// Local fallback medium (SQLite file)
	FallbackPath string

	// Catalog manifest (YAML)
	CatalogManifest string

	// Browse-state cookie
	SessionKey  string
	SessionName string

	// HTTP API
	MaxUploadMB     int
	AllowedOrigins  []string
	SubmitRateLimit int // creates per client per minute; 0 disables
}

// MaxUploadBytes is the multipart request ceiling in bytes.
func (c AppConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
