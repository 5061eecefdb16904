// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"os"
	"strings"
	"time"

	catalogs "github.com/dalemusser/scivishub/internal/app/catalog"
	catalogfeature "github.com/dalemusser/scivishub/internal/app/features/catalog"
	dashboardfeature "github.com/dalemusser/scivishub/internal/app/features/dashboard"
	healthfeature "github.com/dalemusser/scivishub/internal/app/features/health"
	submissionsfeature "github.com/dalemusser/scivishub/internal/app/features/submissions"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup, schema setup and
// Startup have completed. The catalog is loaded here, once; a catalog that
// cannot be read leaves the catalog endpoints serving an empty catalog.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	cat, err := catalogs.Load(afero.NewOsFs(), appCfg.CatalogManifest, logger)
	if err != nil {
		logger.Warn("catalog unavailable; serving an empty catalog",
			zap.String("manifest", appCfg.CatalogManifest),
			zap.Error(err))
		cat = catalogs.New(nil, nil)
	}
	return NewRouter(appCfg, deps, cat, coreCfg.Env == "prod", logger), nil
}

// NewRouter mounts every feature on a chi router. secure marks cookies
// Secure.
func NewRouter(appCfg AppConfig, deps DBDeps, cat *catalogs.Catalog, secure bool, logger *zap.Logger) http.Handler {
	persister := submission.NewPersister(deps.Backend, deps.Local, logger)
	loader := submission.NewLoader(deps.Backend, deps.Local, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Local blobs are served by the app itself; S3 URLs are presigned.
	if prefix := strings.Trim(appCfg.BlobLocalURL, "/"); deps.LocalBlobs != nil && prefix != "" {
		r.Get("/"+prefix+"/*", serveLocalBlob(deps.LocalBlobs))
	}

	sessionName := appCfg.SessionName
	if sessionName == "" {
		sessionName = catalogfeature.DefaultSessionName
	}
	store := catalogfeature.NewCookieStore(appCfg.SessionKey, secure, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		submissionsHandler := submissionsfeature.NewHandler(persister, loader, appCfg.MaxUploadBytes(), logger)
		if appCfg.SubmitRateLimit > 0 {
			submissionsHandler.Limiter = ratelimit.New(appCfg.SubmitRateLimit, time.Minute)
		}
		api.Mount("/submissions", submissionsfeature.Routes(submissionsHandler))

		dashboardHandler := dashboardfeature.NewHandler(loader, logger)
		api.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

		catalogHandler := catalogfeature.NewHandler(cat, store, sessionName, logger)
		api.Mount("/catalog", catalogfeature.Routes(catalogHandler))
	})

	return r
}

// serveLocalBlob serves files from the local blob store by the path after
// the mount prefix.
func serveLocalBlob(store *storage.Local) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullPath, err := store.GetFullPath(chi.URLParam(r, "*"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, fullPath)
	}
}
