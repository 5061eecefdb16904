package submission_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	documentstore "github.com/dalemusser/scivishub/internal/app/store/documents"
	"github.com/dalemusser/scivishub/internal/app/system/localkv"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errBoom = errors.New("boom")

// memDocs is an in-memory document store that round-trips documents
// through BSON and fills server timestamps the way MongoDB does.
type memDocs struct {
	mu       sync.Mutex
	docs     map[string][]byte
	now      time.Time
	pingErr  error
	putErr   error
	queryErr error
}

func newMemDocs() *memDocs {
	return &memDocs{docs: map[string][]byte{}, now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memDocs) Ping(ctx context.Context) error { return m.pingErr }

func (m *memDocs) Put(ctx context.Context, collection, key string, doc bson.M) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := bson.M{"_id": key}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		if v == interface{}(documentstore.ServerTimestamp) {
			m.now = m.now.Add(time.Second)
			v = primitive.NewDateTimeFromTime(m.now)
		}
		out[k] = v
	}
	raw, err := bson.Marshal(out)
	if err != nil {
		return err
	}
	m.docs[collection+"/"+key] = raw
	return nil
}

func (m *memDocs) Query(ctx context.Context, collection, field string, dir documentstore.Direction) ([]bson.M, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []bson.M{}
	for k, raw := range m.docs {
		if filepath.Dir(k) != collection {
			continue
		}
		var d bson.M
		if err := bson.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	key := func(d bson.M) int64 {
		if t, ok := d[field].(primitive.DateTime); ok {
			return int64(t)
		}
		return 0
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == documentstore.Descending {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out, nil
}

func (m *memDocs) Delete(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, collection+"/"+key)
	return nil
}

func (m *memDocs) putRaw(t *testing.T, key string, doc bson.M) {
	t.Helper()
	doc["_id"] = key
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	m.mu.Lock()
	m.docs["submissions/"+key] = raw
	m.mu.Unlock()
}

func (m *memDocs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// failingBlobs fails every Put whose path contains failOn.
type failingBlobs struct {
	storage.Store
	failOn string
}

func (f *failingBlobs) Put(ctx context.Context, p string, r io.Reader, opts *storage.PutOptions) error {
	if f.failOn == "" || filepath.Base(p) == f.failOn {
		return errBoom
	}
	return f.Store.Put(ctx, p, r, opts)
}

// cancellingDocs cancels the caller's context during Put and reports the
// cancellation as the write error, the way a client disconnect surfaces.
type cancellingDocs struct {
	*memDocs
	cancel context.CancelFunc
}

func (c *cancellingDocs) Put(ctx context.Context, collection, key string, doc bson.M) error {
	c.cancel()
	<-ctx.Done()
	return ctx.Err()
}

// failingKV fails every call.
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, errBoom }
func (failingKV) Set(ctx context.Context, key string, value []byte) error    { return errBoom }

func newBlobs(t *testing.T) *storage.Memory {
	t.Helper()
	return storage.NewMemory(storage.MemoryConfig{BaseURL: "/files"})
}

func newKV(t *testing.T) *localkv.Store {
	t.Helper()
	kv, err := localkv.Open(filepath.Join(t.TempDir(), "fallback.db"))
	if err != nil {
		t.Fatalf("localkv.Open failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}
