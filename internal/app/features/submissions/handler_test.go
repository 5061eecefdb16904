package submissions_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/scivishub/internal/app/features/submissions"
	documentstore "github.com/dalemusser/scivishub/internal/app/store/documents"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/ratelimit"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/dalemusser/scivishub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// nopDocs accepts every call; the tests here never reach a document write
// they need to observe.
type nopDocs struct{}

func (nopDocs) Ping(context.Context) error                        { return nil }
func (nopDocs) Put(context.Context, string, string, bson.M) error { return nil }
func (nopDocs) Delete(context.Context, string, string) error      { return nil }
func (nopDocs) Query(context.Context, string, string, documentstore.Direction) ([]bson.M, error) {
	return []bson.M{}, nil
}

// fullDisk refuses every write.
type fullDisk struct{ storage.Store }

func (fullDisk) Put(context.Context, string, io.Reader, *storage.PutOptions) error {
	return errors.New("disk full")
}

func newFallbackHandler(t *testing.T) *submissions.Handler {
	t.Helper()
	log := zap.NewNop()
	b := submission.Unavailable(nil)
	local := testutil.NewLocalStore(t)
	return submissions.NewHandler(
		submission.NewPersister(b, local, log),
		submission.NewLoader(b, local, log),
		0, log)
}

func post(t *testing.T, h *submissions.Handler, form map[string][]string, files []testutil.MultipartFile) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", form, files)
	rec := httptest.NewRecorder()
	submissions.Routes(h).ServeHTTP(rec, req)
	return rec
}

func list(t *testing.T, h *submissions.Handler) []models.Submission {
	t.Helper()
	rec := httptest.NewRecorder()
	submissions.Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body struct {
		Submissions []models.Submission `json:"submissions"`
		Total       int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse list response: %v", err)
	}
	if body.Total != len(body.Submissions) {
		t.Errorf("total: got %d, want %d", body.Total, len(body.Submissions))
	}
	return body.Submissions
}

func TestCreate_FallbackRoundTrip(t *testing.T) {
	h := newFallbackHandler(t)

	rec := post(t, h, testutil.SubmissionForm(), []testutil.MultipartFile{
		{Field: "sourceData", Name: "brain.raw", Content: []byte("voxels")},
		{Field: "groundTruthImages", Name: "a.png", Content: []byte("png")},
		{Field: "groundTruthImages", Name: "b.png", Content: []byte("png")},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var res submission.SaveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if res.ID == "" {
		t.Error("expected an id")
	}
	if !res.Fallback {
		t.Error("expected fallback save")
	}

	subs := list(t, h)
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.ID != res.ID {
		t.Errorf("id: got %q, want %q", got.ID, res.ID)
	}
	if got.Dataset.Name != "Brain MRI Scan" {
		t.Errorf("dataset name: got %q, want %q", got.Dataset.Name, "Brain MRI Scan")
	}
	if n := got.Files.Count(models.RoleGroundTruthImages); n != 2 {
		t.Errorf("ground truth images: got %d, want 2", n)
	}
	if ref := got.Files[models.RoleSourceData][0]; ref.Name != "brain.raw" || ref.URL != "" {
		t.Errorf("source data ref: got %+v, want name only", ref)
	}
}

func TestCreate_MissingFieldIs400(t *testing.T) {
	h := newFallbackHandler(t)
	form := testutil.SubmissionForm()
	delete(form, "datasetName")

	rec := post(t, h, form, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	var body struct {
		Field string `json:"field"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Field != "datasetName" {
		t.Errorf("field: got %q, want %q", body.Field, "datasetName")
	}
	if subs := list(t, h); len(subs) != 0 {
		t.Errorf("expected nothing stored, got %d", len(subs))
	}
}

func TestCreate_MarkupOnlyFieldIsMissing(t *testing.T) {
	h := newFallbackHandler(t)
	form := testutil.SubmissionForm()
	form["taskDescription"] = []string{"<script>alert(1)</script>"}

	rec := post(t, h, form, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreate_StripsMarkup(t *testing.T) {
	h := newFallbackHandler(t)
	form := testutil.SubmissionForm()
	form["datasetName"] = []string{"<b>Brain</b> MRI"}
	form["attributeType"] = []string{"scalar-fields", "<i>other</i>"}

	rec := post(t, h, form, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	got := list(t, h)[0]
	if got.Dataset.Name != "Brain MRI" {
		t.Errorf("dataset name: got %q, want %q", got.Dataset.Name, "Brain MRI")
	}
	if !got.HasAttributeType("other") {
		t.Errorf("attribute types: got %v, want other included", got.Dataset.AttributeType)
	}
}

func TestCreate_UploadFailureIs502(t *testing.T) {
	log := zap.NewNop()
	blobs := fullDisk{storage.NewMemory(storage.MemoryConfig{BaseURL: "/files"})}
	b := submission.Backend{Remote: submission.NewRemoteStore(nopDocs{}, blobs, log)}
	local := testutil.NewLocalStore(t)
	h := submissions.NewHandler(submission.NewPersister(b, local, log), submission.NewLoader(b, local, log), 0, log)

	rec := post(t, h, testutil.SubmissionForm(), []testutil.MultipartFile{
		{Field: "sourceData", Name: "brain.raw", Content: []byte("voxels")},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadGateway, rec.Code, rec.Body.String())
	}

	// Upload failures never fall back to local storage.
	stored, err := local.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected nothing stored locally, got %d", len(stored))
	}
}

func TestCreate_NotMultipartIs400(t *testing.T) {
	h := newFallbackHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	submissions.Routes(h).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestList_Empty(t *testing.T) {
	if subs := list(t, newFallbackHandler(t)); len(subs) != 0 {
		t.Errorf("expected empty list, got %d", len(subs))
	}
}

func TestCreate_RateLimited(t *testing.T) {
	h := newFallbackHandler(t)
	h.Limiter = ratelimit.New(1, time.Minute)

	if rec := post(t, h, testutil.SubmissionForm(), nil); rec.Code != http.StatusCreated {
		t.Fatalf("first create: expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	rec := post(t, h, testutil.SubmissionForm(), nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second create: expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got == "" {
		t.Error("expected a Retry-After header")
	}

	// Listing is never limited.
	if subs := list(t, h); len(subs) != 1 {
		t.Errorf("expected 1 submission, got %d", len(subs))
	}
}
