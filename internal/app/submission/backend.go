package submission

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// Backend is the result of probing the durable backend once at startup.
// Remote is set when the backend is usable; otherwise Err says why and all
// submission traffic goes to the local fallback.
type Backend struct {
	Remote *RemoteStore
	Err    error
}

// Ok reports whether the durable backend is usable.
func (b Backend) Ok() bool { return b.Remote != nil }

// Unavailable returns a Backend that routes everything to the fallback.
func Unavailable(reason error) Backend {
	if reason == nil {
		reason = ErrBackendUnavailable
	}
	return Backend{Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, reason)}
}

// Setup checks that both the document store and the blob store are
// configured and that the document store answers a ping. Either store may
// be nil.
func Setup(ctx context.Context, docs DocumentStore, blobs storage.Store, log *zap.Logger) Backend {
	switch {
	case docs == nil:
		return unavailable(log, fmt.Errorf("document store not configured"))
	case blobs == nil:
		return unavailable(log, fmt.Errorf("blob store not configured"))
	}
	if err := docs.Ping(ctx); err != nil {
		return unavailable(log, fmt.Errorf("document store ping: %w", err))
	}
	log.Info("durable submission backend ready")
	return Backend{Remote: NewRemoteStore(docs, blobs, log)}
}

func unavailable(log *zap.Logger, reason error) Backend {
	b := Unavailable(reason)
	log.Warn("durable submission backend unavailable; using local fallback", zap.Error(b.Err))
	return b
}
