package submission

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// FileHandle is one file attached to a submission form. Open is called
// once, during upload.
type FileHandle struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// BytesFile wraps in-memory content as a FileHandle.
func BytesFile(name, contentType string, data []byte) FileHandle {
	return FileHandle{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FileSet maps each role to the files attached under it. Absent roles hold
// no files.
type FileSet map[models.FileRole][]FileHandle

// Count returns the number of files across all roles.
func (fs FileSet) Count() int {
	n := 0
	for _, hs := range fs {
		n += len(hs)
	}
	return n
}

// nameOnlyFiles records names and sizes without URLs, for submissions that
// never reach the blob store.
func nameOnlyFiles(files FileSet) models.Files {
	out := emptyFiles()
	for _, role := range models.FileRoles {
		for _, h := range files[role] {
			out[role] = append(out[role], models.FileRef{Name: h.Name, Size: h.Size})
		}
	}
	return out
}

// emptyFiles returns a Files value with every role present and empty.
func emptyFiles() models.Files {
	out := make(models.Files, len(models.FileRoles))
	for _, role := range models.FileRoles {
		out[role] = []models.FileRef{}
	}
	return out
}

// normalizeFiles fills in missing roles so every loaded submission carries
// all of them.
func normalizeFiles(f models.Files) models.Files {
	if f == nil {
		return emptyFiles()
	}
	for _, role := range models.FileRoles {
		if f[role] == nil {
			f[role] = []models.FileRef{}
		}
	}
	return f
}

// sanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] so the name is safe as a blob path segment.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	s := string(result)
	if s == "" || s == "." || s == ".." {
		return "file"
	}
	// Blob backends reject any path containing "..".
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "_.")
	}
	if len(s) > 100 {
		ext := filepath.Ext(s)
		if len(ext) > 0 && len(ext) < 10 {
			s = s[:100-len(ext)] + ext
		} else {
			s = s[:100]
		}
	}
	return s
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
