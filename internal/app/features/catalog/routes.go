// internal/app/features/catalog/routes.go
package catalog

import "github.com/go-chi/chi/v5"

// Routes wires the catalog endpoints (mounted at "/api/catalog").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCatalog)
	r.Get("/report", h.ServeReport)
	return r
}
