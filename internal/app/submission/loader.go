package submission

import (
	"context"
	"fmt"

	"github.com/dalemusser/scivishub/internal/domain/models"
	"go.uber.org/zap"
)

// Loader reads the full submission list.
type Loader struct {
	remote Store // nil when the durable backend is unavailable
	local  Store
	log    *zap.Logger
}

// NewLoader selects the durable store from b, falling back to local.
func NewLoader(b Backend, local Store, log *zap.Logger) *Loader {
	l := &Loader{local: local, log: log}
	if b.Ok() {
		l.remote = b.Remote
	}
	return l
}

// LoadAll returns every submission. From the durable store they are
// newest first; from the local fallback they are in insertion order. When
// both reads fail the result is empty. The result is never nil.
func (l *Loader) LoadAll(ctx context.Context) []models.Submission {
	if l.remote != nil {
		subs, err := l.remote.LoadAll(ctx)
		if err == nil {
			return subs
		}
		l.log.Error("loading submissions failed; reading local fallback",
			zap.Error(fmt.Errorf("%w: %v", ErrLoadFailed, err)))
	}

	subs, err := l.local.LoadAll(ctx)
	if err != nil {
		l.log.Error("loading local submissions failed",
			zap.Error(fmt.Errorf("%w: %v", ErrLoadFailed, err)))
		return []models.Submission{}
	}
	return subs
}
