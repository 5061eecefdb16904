// internal/domain/models/submission.go
package models

import (
	"time"
)

// TimestampLayout is the canonical textual form of a submission timestamp
// (UTC, millisecond precision, trailing Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the canonical timestamp form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the canonical form and any RFC 3339 variant.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Contributor identifies the person behind a submission. Email is the
// de-facto identity key; nothing enforces its uniqueness in storage.
type Contributor struct {
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Institution string `bson:"institution" json:"institution"`
}

// Dataset describes the contributed data.
type Dataset struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`

	// ApplicationDomain is one of ApplicationDomains; "other" is paired
	// with free text in ApplicationDomainOther.
	ApplicationDomain      string `bson:"application_domain" json:"applicationDomain"`
	ApplicationDomainOther string `bson:"application_domain_other,omitempty" json:"applicationDomainOther,omitempty"`

	// AttributeType is a non-empty set drawn from AttributeTypes.
	AttributeType      []string `bson:"attribute_type" json:"attributeType"`
	AttributeTypeOther string   `bson:"attribute_type_other,omitempty" json:"attributeTypeOther,omitempty"`
}

// Task is the benchmark task a contributor proposes for the dataset.
type Task struct {
	Description        string `bson:"description" json:"description"`
	EvaluationCriteria string `bson:"evaluation_criteria" json:"evaluationCriteria"`
}

// FileRef records one stored file. URL is empty for submissions kept in
// the local fallback, which never uploads content.
type FileRef struct {
	Name        string `bson:"name" json:"name"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	Size        int64  `bson:"size" json:"size"`
	ContentType string `bson:"content_type,omitempty" json:"contentType,omitempty"`
	Path        string `bson:"path,omitempty" json:"path,omitempty"` // blob store path
}

// Files maps each file role to the files attached under it.
type Files map[FileRole][]FileRef

// Count returns the number of files attached under role.
func (f Files) Count(role FileRole) int {
	return len(f[role])
}

// Total returns the number of files across all roles.
func (f Files) Total() int {
	n := 0
	for _, refs := range f {
		n += len(refs)
	}
	return n
}

// Submission is one contribution record. Once persisted it is never
// updated; the only mutation is an administrative delete.
type Submission struct {
	ID string `bson:"_id" json:"id"`

	// Timestamp is always the canonical textual form. The document store
	// keeps a server-generated date instead, converted on load.
	Timestamp string `bson:"-" json:"timestamp"`

	Contributor Contributor `bson:"contributor" json:"contributor"`
	Dataset     Dataset     `bson:"dataset" json:"dataset"`
	Task        Task        `bson:"task" json:"task"`
	Files       Files       `bson:"files" json:"files"`

	// Reference to the metadata summary blob (durable backend only).
	MetadataPath string `bson:"metadata_path,omitempty" json:"metadataPath,omitempty"`
	MetadataURL  string `bson:"metadata_url,omitempty" json:"metadataUrl,omitempty"`
}

// HasAttributeType reports whether the submission's attribute set contains t.
func (s *Submission) HasAttributeType(t string) bool {
	for _, v := range s.Dataset.AttributeType {
		if v == t {
			return true
		}
	}
	return false
}
