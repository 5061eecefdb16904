// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/dalemusser/scivishub/internal/app/stats"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the contribution dashboard.
type Handler struct {
	Loader *submission.Loader
	Log    *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(loader *submission.Loader, logger *zap.Logger) *Handler {
	return &Handler{Loader: loader, Log: logger}
}

type dashboardResponse struct {
	Stats            stats.Stats            `json:"stats"`
	DomainBuckets    []stats.Bucket         `json:"domainBuckets"`
	AttributeBuckets []stats.Bucket         `json:"attributeBuckets"`
	Contributors     []stats.ContributorRow `json:"contributors"`
}

// ServeDashboard handles GET /api/dashboard. Every request loads the
// submission list and aggregates it afresh.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "dashboard load")
	defer cancel()

	subs := h.Loader.LoadAll(ctx)
	st := stats.Compute(subs)

	shared.WriteJSON(w, http.StatusOK, dashboardResponse{
		Stats:            st,
		DomainBuckets:    st.DomainBuckets(),
		AttributeBuckets: st.AttributeBuckets(),
		Contributors:     stats.ContributorTable(subs),
	})
}
