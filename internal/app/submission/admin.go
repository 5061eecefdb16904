package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dalemusser/scivishub/internal/domain/models"
	"go.uber.org/zap"
)

// Admin exposes the administrative operations that the public HTTP
// surface does not: delete, export and sample seeding.
type Admin struct {
	remote Store // nil when the durable backend is unavailable
	local  Store
	loader *Loader
	log    *zap.Logger
	now    func() time.Time
}

// NewAdmin returns an Admin over the same stores the Persister uses.
func NewAdmin(b Backend, local Store, log *zap.Logger) *Admin {
	a := &Admin{local: local, loader: NewLoader(b, local, log), log: log, now: time.Now}
	if b.Ok() {
		a.remote = b.Remote
	}
	return a
}

// Delete removes the submission from both stores. Remote deletion removes
// every blob under the submission's prefix, including any left by an
// aborted save with the same id. When neither store held a document with
// id the cleanup still runs and ErrNotFound is returned.
func (a *Admin) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("submission: empty id")
	}

	found := false
	if a.remote != nil {
		if subs, err := a.remote.LoadAll(ctx); err == nil {
			found = containsID(subs, id)
		}
		if err := a.remote.Delete(ctx, id); err != nil {
			return fmt.Errorf("submission: delete %s: %w", id, err)
		}
	}
	if subs, err := a.local.LoadAll(ctx); err == nil && containsID(subs, id) {
		found = true
	}
	if err := a.local.Delete(ctx, id); err != nil {
		return fmt.Errorf("submission: delete local %s: %w", id, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func containsID(subs []models.Submission, id string) bool {
	for i := range subs {
		if subs[i].ID == id {
			return true
		}
	}
	return false
}

// Export writes every loaded submission as indented JSON.
func (a *Admin) Export(ctx context.Context, w io.Writer) (int, error) {
	subs := a.loader.LoadAll(ctx)
	if err := Export(w, subs); err != nil {
		return 0, err
	}
	return len(subs), nil
}

// Seed stores the sample submissions when no submissions exist. It returns
// the number stored.
func (a *Admin) Seed(ctx context.Context) (int, error) {
	if existing := a.loader.LoadAll(ctx); len(existing) > 0 {
		a.log.Info("submissions present; skipping sample seed", zap.Int("count", len(existing)))
		return 0, nil
	}

	target := a.local
	if a.remote != nil {
		target = a.remote
	}

	samples := SampleSubmissions(a.now())
	for i := range samples {
		if err := target.Save(ctx, &samples[i], nil, nil); err != nil {
			return i, fmt.Errorf("submission: seed %s: %w", samples[i].ID, err)
		}
	}
	a.log.Info("sample submissions seeded", zap.Int("count", len(samples)))
	return len(samples), nil
}

// Export writes subs as indented JSON.
func Export(w io.Writer, subs []models.Submission) error {
	if subs == nil {
		subs = []models.Submission{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(subs)
}

// ExportFileName is the download name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("scivisagentbench-submissions-%d.json", now.UnixMilli())
}
