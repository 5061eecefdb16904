package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	// Client is nil when the durable backend was never initialized.
	Client *mongo.Client
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Log:    logger,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// Connected: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// Running on the local fallback: 200 and
//
//	{ "status":"fallback", "database":"not configured", "message":"…" }
//
// On ping failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		shared.WriteJSON(w, http.StatusOK, healthResponse{
			Status:   "fallback",
			Database: "not configured",
			Message:  "Submissions are stored locally",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		shared.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			Database: "disconnected",
			Message:  "Database unavailable",
			Error:    err.Error(),
		})
		return
	}

	shared.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "connected"})
}
