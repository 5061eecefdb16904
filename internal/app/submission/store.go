package submission

import (
	"context"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Collection is the document store collection holding submissions.
const Collection = "submissions"

// Store persists and reads back submissions. RemoteStore and LocalStore
// are the two implementations; the Persister and Loader pick between them
// from the Backend returned by Setup.
type Store interface {
	// Save stores sub under sub.ID. A blank sub.Timestamp is assigned by
	// the store; a preset one is kept.
	Save(ctx context.Context, sub *models.Submission, files FileSet, report ProgressFunc) error
	// LoadAll returns every stored submission.
	LoadAll(ctx context.Context) ([]models.Submission, error)
	// Delete removes the submission and anything stored with it.
	Delete(ctx context.Context, id string) error
}
