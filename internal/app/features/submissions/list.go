package submissions

import (
	"net/http"

	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/dalemusser/scivishub/internal/domain/models"
)

type listResponse struct {
	Submissions []models.Submission `json:"submissions"`
	Total       int                 `json:"total"`
}

// ServeList handles GET /api/submissions. Load failures degrade to an
// empty list rather than an error status.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "list submissions")
	defer cancel()

	subs := h.Loader.LoadAll(ctx)
	shared.WriteJSON(w, http.StatusOK, listResponse{Submissions: subs, Total: len(subs)})
}
