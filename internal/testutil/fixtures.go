package testutil

import (
	"path/filepath"
	"testing"

	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/localkv"
	"github.com/dalemusser/scivishub/internal/domain/models"
)

// ValidSubmission returns a submission that passes validation.
func ValidSubmission() models.Submission {
	return models.Submission{
		Contributor: models.Contributor{
			Name:        "Jane Smith",
			Email:       "jane.smith@university.edu",
			Institution: "State University",
		},
		Dataset: models.Dataset{
			Name:              "Brain MRI Scan",
			Description:       "T1-weighted MRI volume",
			ApplicationDomain: "medical",
			AttributeType:     []string{"scalar-fields"},
		},
		Task: models.Task{
			Description:        "Render the ventricles with volume rendering",
			EvaluationCriteria: "Ventricles clearly visible",
		},
	}
}

// SubmissionForm returns the multipart text fields of a valid submission.
func SubmissionForm() map[string][]string {
	return map[string][]string{
		"contributorName":        {"Jane Smith"},
		"contributorEmail":       {"jane.smith@university.edu"},
		"contributorInstitution": {"State University"},
		"datasetName":            {"Brain MRI Scan"},
		"datasetDescription":     {"T1-weighted MRI volume"},
		"applicationDomain":      {"medical"},
		"attributeType":          {"scalar-fields"},
		"taskDescription":        {"Render the ventricles with volume rendering"},
		"evalCriteria":           {"Ventricles clearly visible"},
	}
}

// NewLocalStore returns a LocalStore backed by a SQLite file in a temp
// directory that is closed when the test ends.
func NewLocalStore(t *testing.T) *submission.LocalStore {
	t.Helper()
	kv, err := localkv.Open(filepath.Join(t.TempDir(), "fallback.db"))
	if err != nil {
		t.Fatalf("open localkv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return submission.NewLocalStore(kv)
}
