package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// LocalKey is the key the fallback list is stored under.
const LocalKey = "submissions"

// KV is the local key/value medium. Values are read and written whole.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LocalStore keeps submissions as one JSON list under LocalKey. It never
// uploads content: files are recorded by name and size only and the
// timestamp is assigned locally.
type LocalStore struct {
	kv  KV
	now func() time.Time

	mu sync.Mutex
}

// NewLocalStore returns a LocalStore on kv.
func NewLocalStore(kv KV) *LocalStore {
	return &LocalStore{kv: kv, now: time.Now}
}

func (s *LocalStore) read(ctx context.Context) ([]models.Submission, error) {
	data, ok, err := s.kv.Get(ctx, LocalKey)
	if err != nil {
		return nil, err
	}
	list := []models.Submission{}
	if !ok || len(data) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode local submissions: %w", err)
	}
	return list, nil
}

func (s *LocalStore) write(ctx context.Context, list []models.Submission) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, LocalKey, data)
}

// Save appends sub to the list.
func (s *LocalStore) Save(ctx context.Context, sub *models.Submission, files FileSet, report ProgressFunc) error {
	if report != nil {
		report("Saving locally...", 90)
	}

	sub.Files = nameOnlyFiles(files)
	sub.MetadataPath = ""
	sub.MetadataURL = ""
	if sub.Timestamp == "" {
		sub.Timestamp = models.FormatTimestamp(s.now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	list = append(list, *sub)
	return s.write(ctx, list)
}

// LoadAll returns the list in insertion order.
func (s *LocalStore) LoadAll(ctx context.Context) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Files = normalizeFiles(list[i].Files)
	}
	return list, nil
}

// Delete drops every entry with id.
func (s *LocalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, sub := range list {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return s.write(ctx, kept)
}
