package submission

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"go.uber.org/zap"
)

// SaveResult describes a completed save. Fallback is true when the
// submission went to the local store; Warning is set when that happened
// because the durable write was rejected.
type SaveResult struct {
	ID       string `json:"id"`
	Fallback bool   `json:"fallback"`
	Warning  string `json:"warning,omitempty"`
}

// Persister validates and stores submissions.
type Persister struct {
	remote Store // nil when the durable backend is unavailable
	local  Store
	log    *zap.Logger
	now    func() time.Time
}

// NewPersister selects the durable store from b, falling back to local.
func NewPersister(b Backend, local Store, log *zap.Logger) *Persister {
	p := &Persister{local: local, log: log, now: time.Now}
	if b.Ok() {
		p.remote = b.Remote
	}
	return p
}

// Save validates sub, assigns it a fresh id and stores it. Errors are a
// *ValidationError, an *UploadError, or a fatal local store failure. A
// rejected durable write is not an error: the submission is kept locally
// and the result carries a warning.
func (p *Persister) Save(ctx context.Context, sub *models.Submission, files FileSet, fn ProgressFunc) (SaveResult, error) {
	if err := Validate(sub); err != nil {
		return SaveResult{}, err
	}

	prog := newProgress(fn)
	sub.ID = NewID(p.now())
	sub.Timestamp = ""
	res := SaveResult{ID: sub.ID}

	if p.remote == nil {
		p.log.Debug("saving submission to local fallback", zap.String("id", sub.ID))
		if err := p.local.Save(ctx, sub, files, prog.report); err != nil {
			return SaveResult{}, err
		}
		res.Fallback = true
		prog.report("Complete!", 100)
		return res, nil
	}

	err := p.remote.Save(ctx, sub, files, prog.report)
	switch {
	case err == nil:
	case errors.Is(err, ErrDocumentWriteFailed):
		p.log.Warn("document write failed; saving submission locally",
			zap.String("id", sub.ID), zap.Error(err))
		sub.Timestamp = ""
		// The request context may be what failed the write; the local copy
		// gets its own deadline.
		fbCtx, cancel := timeouts.WithTimeout(context.WithoutCancel(ctx), timeouts.Write(), p.log, "local fallback save")
		lerr := p.local.Save(fbCtx, sub, files, prog.report)
		cancel()
		if lerr != nil {
			return SaveResult{}, lerr
		}
		res.Fallback = true
		res.Warning = "The submission was saved locally because the database rejected the write: " + err.Error()
	default:
		return SaveResult{}, err
	}

	p.log.Info("submission saved",
		zap.String("id", sub.ID),
		zap.Bool("fallback", res.Fallback),
		zap.Int("files", files.Count()))
	prog.report("Complete!", 100)
	return res, nil
}
