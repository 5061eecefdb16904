// internal/app/features/submissions/handler.go
package submissions

import (
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// DefaultMaxUpload bounds a whole multipart request when no limit is
// configured.
const DefaultMaxUpload int64 = 512 << 20

// multipartMemory is how much of a form is held in memory before parts
// spill to temporary files.
const multipartMemory = 32 << 20

// Handler serves the submission form endpoint and the submission list.
type Handler struct {
	Persister *submission.Persister
	Loader    *submission.Loader
	MaxUpload int64
	Limiter   *ratelimit.Limiter // per-client limit on creates; nil disables
	Log       *zap.Logger
}

// NewHandler constructs a submissions Handler. maxUpload <= 0 selects
// DefaultMaxUpload.
func NewHandler(p *submission.Persister, l *submission.Loader, maxUpload int64, logger *zap.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{
		Persister: p,
		Loader:    l,
		MaxUpload: maxUpload,
		Log:       logger,
	}
}
