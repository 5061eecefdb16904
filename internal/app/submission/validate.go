package submission

import (
	"strings"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// requiredField pairs a form field name with its accessor.
type requiredField struct {
	name string
	get  func(*models.Submission) string
}

var requiredFields = []requiredField{
	{"contributorName", func(s *models.Submission) string { return s.Contributor.Name }},
	{"contributorEmail", func(s *models.Submission) string { return s.Contributor.Email }},
	{"contributorInstitution", func(s *models.Submission) string { return s.Contributor.Institution }},
	{"datasetName", func(s *models.Submission) string { return s.Dataset.Name }},
	{"datasetDescription", func(s *models.Submission) string { return s.Dataset.Description }},
	{"applicationDomain", func(s *models.Submission) string { return s.Dataset.ApplicationDomain }},
	{"taskDescription", func(s *models.Submission) string { return s.Task.Description }},
	{"evalCriteria", func(s *models.Submission) string { return s.Task.EvaluationCriteria }},
}

// Validate checks field presence only. It returns a *ValidationError for
// the first missing field, or nil. No format checks are made.
func Validate(s *models.Submission) error {
	if s == nil {
		return &ValidationError{Field: "submission"}
	}
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(s)) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	if len(s.Dataset.AttributeType) == 0 {
		return &ValidationError{Field: "attributeType"}
	}
	return nil
}

// Valid reports whether Validate accepts s.
func Valid(s *models.Submission) bool {
	return Validate(s) == nil
}
