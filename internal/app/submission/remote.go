package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	documentstore "github.com/dalemusser/scivishub/internal/app/store/documents"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DocumentStore is the document store contract RemoteStore needs.
type DocumentStore interface {
	Ping(ctx context.Context) error
	Put(ctx context.Context, collection, key string, doc bson.M) error
	Query(ctx context.Context, collection, field string, dir documentstore.Direction) ([]bson.M, error)
	Delete(ctx context.Context, collection, key string) error
}

// RemoteStore keeps files in the blob store and the submission document in
// the document store.
type RemoteStore struct {
	docs      DocumentStore
	blobs     storage.Store
	log       *zap.Logger
	now       func() time.Time
	urlExpiry time.Duration
}

// DefaultURLExpiry is the lifetime of presigned download URLs.
const DefaultURLExpiry = 7 * 24 * time.Hour

// NewRemoteStore returns a RemoteStore. Use Setup to check the backend is
// reachable first.
func NewRemoteStore(docs DocumentStore, blobs storage.Store, log *zap.Logger) *RemoteStore {
	return &RemoteStore{docs: docs, blobs: blobs, log: log, now: time.Now, urlExpiry: DefaultURLExpiry}
}

// SetURLExpiry changes the presigned URL lifetime. Non-positive values are
// ignored.
func (s *RemoteStore) SetURLExpiry(d time.Duration) {
	if d > 0 {
		s.urlExpiry = d
	}
}

// blobPrefix is the path prefix every blob of a submission lives under.
func blobPrefix(id string) string {
	return "submissions/" + id + "/"
}

// Save uploads every file in role order, then the metadata summary, then
// writes the document exactly once. Any upload failure aborts with an
// *UploadError; blobs already written are left in place. A rejected
// document write returns a *DocumentWriteError.
func (s *RemoteStore) Save(ctx context.Context, sub *models.Submission, files FileSet, report ProgressFunc) error {
	if report == nil {
		report = func(string, int) {}
	}
	report("Preparing upload...", 10)

	total := files.Count()
	done := 0
	refs := emptyFiles()
	used := map[string]bool{}

	for _, role := range models.FileRoles {
		for _, fh := range files[role] {
			report("Uploading "+roleLabel(role)+"...", 10+70*done/max(total, 1))

			ref, err := s.upload(ctx, sub.ID, role, fh, used)
			if err != nil {
				s.log.Warn("submission upload failed",
					zap.String("id", sub.ID),
					zap.String("role", role.String()),
					zap.String("file", fh.Name),
					zap.Error(err))
				return &UploadError{Role: role, File: fh.Name, Err: err}
			}
			refs[role] = append(refs[role], ref)
			done++
		}
	}
	sub.Files = refs

	report("Writing metadata summary...", 85)
	if err := s.putSummary(ctx, sub); err != nil {
		s.log.Warn("metadata summary upload failed", zap.String("id", sub.ID), zap.Error(err))
		return &UploadError{File: "metadata.json", Err: err}
	}

	report("Saving to database...", 90)
	doc, err := toDocument(sub)
	if err != nil {
		return &DocumentWriteError{ID: sub.ID, Err: err}
	}
	if sub.Timestamp == "" {
		doc["timestamp"] = documentstore.ServerTimestamp
	} else if t, perr := models.ParseTimestamp(sub.Timestamp); perr == nil {
		doc["timestamp"] = primitive.NewDateTimeFromTime(t)
	} else {
		doc["timestamp"] = sub.Timestamp
	}
	if err := s.docs.Put(ctx, Collection, sub.ID, doc); err != nil {
		return &DocumentWriteError{ID: sub.ID, Err: err}
	}

	// Display value until the next load returns the server's time.
	if sub.Timestamp == "" {
		sub.Timestamp = models.FormatTimestamp(s.now())
	}
	return nil
}

func (s *RemoteStore) upload(ctx context.Context, id string, role models.FileRole, fh FileHandle, used map[string]bool) (models.FileRef, error) {
	if fh.Open == nil {
		return models.FileRef{}, fmt.Errorf("no content")
	}
	rc, err := fh.Open()
	if err != nil {
		return models.FileRef{}, err
	}
	defer rc.Close()

	p := uniquePath(blobPrefix(id)+role.Folder()+"/"+sanitizeFilename(fh.Name), used)
	if err := s.blobs.Put(ctx, p, rc, &storage.PutOptions{ContentType: fh.ContentType}); err != nil {
		return models.FileRef{}, err
	}
	url, err := s.blobURL(ctx, p)
	if err != nil {
		return models.FileRef{}, err
	}
	return models.FileRef{
		Name:        fh.Name,
		URL:         url,
		Size:        fh.Size,
		ContentType: fh.ContentType,
		Path:        p,
	}, nil
}

// uniquePath returns p, or p with a numeric suffix before the extension
// when p was already handed out for this submission.
func uniquePath(p string, used map[string]bool) string {
	if !used[p] {
		used[p] = true
		return p
	}
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for n := 1; ; n++ {
		c := base + "-" + strconv.Itoa(n) + ext
		if !used[c] {
			used[c] = true
			return c
		}
	}
}

// blobURL returns a presigned URL where the backend supports it and the
// public URL otherwise.
func (s *RemoteStore) blobURL(ctx context.Context, p string) (string, error) {
	u, err := s.blobs.PresignedURL(ctx, p, &storage.PresignOptions{Expires: s.urlExpiry})
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, storage.ErrPresignNotSupported) {
		return "", err
	}
	if u := s.blobs.URL(p); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("no download URL for %s on %s storage", p, s.blobs.Backend())
}

type summaryFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type,omitempty"`
}

// metadataSummary mirrors the submission without URLs.
type metadataSummary struct {
	ID          string                            `json:"id"`
	Contributor models.Contributor                `json:"contributor"`
	Dataset     models.Dataset                    `json:"dataset"`
	Task        models.Task                       `json:"task"`
	Files       map[models.FileRole][]summaryFile `json:"files"`
	CreatedAt   string                            `json:"createdAt"`
}

func (s *RemoteStore) putSummary(ctx context.Context, sub *models.Submission) error {
	sum := metadataSummary{
		ID:          sub.ID,
		Contributor: sub.Contributor,
		Dataset:     sub.Dataset,
		Task:        sub.Task,
		Files:       make(map[models.FileRole][]summaryFile, len(models.FileRoles)),
		CreatedAt:   models.FormatTimestamp(s.now()),
	}
	for _, role := range models.FileRoles {
		list := []summaryFile{}
		for _, ref := range sub.Files[role] {
			list = append(list, summaryFile{Name: ref.Name, Size: ref.Size, Type: ref.ContentType})
		}
		sum.Files[role] = list
	}

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	p := blobPrefix(sub.ID) + "metadata.json"
	if err := s.blobs.Put(ctx, p, bytes.NewReader(data), &storage.PutOptions{ContentType: "application/json"}); err != nil {
		return err
	}
	url, err := s.blobURL(ctx, p)
	if err != nil {
		return err
	}
	sub.MetadataPath = p
	sub.MetadataURL = url
	return nil
}

// LoadAll returns submissions newest first. Timestamps are normalized to
// the canonical text form; documents without one get the current time.
// Stored blob paths are re-resolved so expiring URLs stay fresh.
func (s *RemoteStore) LoadAll(ctx context.Context) ([]models.Submission, error) {
	docs, err := s.docs.Query(ctx, Collection, "timestamp", documentstore.Descending)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.Submission, 0, len(docs))
	for _, doc := range docs {
		sub, err := fromDocument(doc, now)
		if err != nil {
			s.log.Warn("skipping undecodable submission document",
				zap.Any("id", doc["_id"]), zap.Error(err))
			continue
		}
		s.refreshURLs(ctx, &sub)
		out = append(out, sub)
	}
	return out, nil
}

func (s *RemoteStore) refreshURLs(ctx context.Context, sub *models.Submission) {
	for _, role := range models.FileRoles {
		for i, ref := range sub.Files[role] {
			if ref.Path == "" {
				continue
			}
			if u, err := s.blobURL(ctx, ref.Path); err == nil {
				sub.Files[role][i].URL = u
			}
		}
	}
	if sub.MetadataPath != "" {
		if u, err := s.blobURL(ctx, sub.MetadataPath); err == nil {
			sub.MetadataURL = u
		}
	}
}

// Delete removes every blob under the submission's prefix, then the
// document.
func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	prefix := blobPrefix(id)
	removed := 0
	for {
		page, err := s.blobs.List(ctx, prefix, nil)
		if err != nil {
			return fmt.Errorf("list blobs for %s: %w", id, err)
		}
		paths := make([]string, 0, len(page.Objects))
		for _, o := range page.Objects {
			// Listing matches on the raw prefix; keep sub_ab from matching sub_abc.
			if strings.HasPrefix(o.Path, prefix) {
				paths = append(paths, o.Path)
			}
		}
		n, err := s.blobs.DeleteMany(ctx, paths)
		removed += n
		if err != nil {
			return fmt.Errorf("delete blobs for %s: %w", id, err)
		}
		if !page.IsTruncated || n == 0 {
			break
		}
	}
	if err := s.docs.Delete(ctx, Collection, id); err != nil {
		return err
	}
	s.log.Info("submission deleted",
		zap.String("id", id),
		zap.Int("blobs", removed))
	return nil
}

func toDocument(sub *models.Submission) (bson.M, error) {
	raw, err := bson.Marshal(sub)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc bson.M, now time.Time) (models.Submission, error) {
	ts := doc["timestamp"]
	delete(doc, "timestamp")

	raw, err := bson.Marshal(doc)
	if err != nil {
		return models.Submission{}, err
	}
	var sub models.Submission
	if err := bson.Unmarshal(raw, &sub); err != nil {
		return models.Submission{}, err
	}
	sub.Timestamp = canonicalTimestamp(ts, now)
	sub.Files = normalizeFiles(sub.Files)
	return sub, nil
}

// canonicalTimestamp converts whatever the store returned into the
// canonical text form.
func canonicalTimestamp(v interface{}, now time.Time) string {
	switch t := v.(type) {
	case primitive.DateTime:
		return models.FormatTimestamp(t.Time())
	case time.Time:
		return models.FormatTimestamp(t)
	case primitive.Timestamp:
		return models.FormatTimestamp(time.Unix(int64(t.T), 0))
	case string:
		if parsed, err := models.ParseTimestamp(t); err == nil {
			return models.FormatTimestamp(parsed)
		}
		if t != "" {
			return t
		}
	}
	return models.FormatTimestamp(now)
}

func roleLabel(r models.FileRole) string {
	switch r {
	case models.RoleSourceData:
		return "source data"
	case models.RoleGroundTruthImages:
		return "ground truth images"
	case models.RoleGroundTruthCode:
		return "ground truth code"
	case models.RoleVizEngineState:
		return "visualization state"
	case models.RoleAdditionalMetadata:
		return "metadata"
	}
	return string(r)
}
