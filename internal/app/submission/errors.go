package submission

import (
	"errors"
	"fmt"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

var (
	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("submission: validation failed")
	// ErrUploadFailed matches every *UploadError.
	ErrUploadFailed = errors.New("submission: upload failed")
	// ErrDocumentWriteFailed matches every *DocumentWriteError.
	ErrDocumentWriteFailed = errors.New("submission: document write failed")
	// ErrBackendUnavailable means the durable backend was never initialized.
	ErrBackendUnavailable = errors.New("submission: durable backend unavailable")
	// ErrLoadFailed wraps a failed read of the submission list.
	ErrLoadFailed = errors.New("submission: load failed")
	// ErrNotFound is returned by Delete when no backend holds the id.
	ErrNotFound = errors.New("submission: not found")
)

// ValidationError names the first required field that was missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission: required field %q is missing", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// UploadError reports the file whose upload aborted a submission. Role is
// empty for the metadata summary blob.
type UploadError struct {
	Role models.FileRole
	File string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("submission: upload %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("submission: upload %s file %q: %v", e.Role, e.File, e.Err)
}

func (e *UploadError) Is(target error) bool { return target == ErrUploadFailed }
func (e *UploadError) Unwrap() error        { return e.Err }

// DocumentWriteError reports a rejected write of the submission document.
type DocumentWriteError struct {
	ID  string
	Err error
}

func (e *DocumentWriteError) Error() string {
	return fmt.Sprintf("submission: write document %s: %v", e.ID, e.Err)
}

func (e *DocumentWriteError) Is(target error) bool { return target == ErrDocumentWriteFailed }
func (e *DocumentWriteError) Unwrap() error        { return e.Err }
