package submissions

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeCreate handles POST /api/submissions.
//
//	201 {"id":"…","fallback":false}
//	400 {"error":"…","field":"datasetName"}   validation failed
//	413 {"error":"…"}                          request too large
//	502 {"error":"…"}                          a file upload failed
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.WriteError(w, http.StatusRequestEntityTooLarge, "The submission is larger than the upload limit.")
			return
		}
		shared.WriteError(w, http.StatusBadRequest, "Could not read the submission form.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	sub := submissionFromForm(r.MultipartForm)
	files := filesFromForm(r.MultipartForm)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "save submission")
	defer cancel()

	res, err := h.Persister.Save(ctx, &sub, files, func(stage string, percent int) {
		h.Log.Debug("submission progress", zap.String("stage", stage), zap.Int("percent", percent))
	})
	if err != nil {
		var verr *submission.ValidationError
		var uerr *submission.UploadError
		switch {
		case errors.As(err, &verr):
			shared.WriteJSON(w, http.StatusBadRequest, shared.ErrorBody{
				Error: "Please fill in all required fields.",
				Field: verr.Field,
			})
		case errors.As(err, &uerr):
			h.Log.Warn("submission upload failed", zap.Error(err))
			shared.WriteError(w, http.StatusBadGateway, "Upload failed: "+uerr.Err.Error())
		default:
			h.Log.Error("submission save failed", zap.Error(err))
			shared.WriteError(w, http.StatusInternalServerError, "The submission could not be saved.")
		}
		return
	}

	shared.WriteJSON(w, http.StatusCreated, res)
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return htmlsanitize.StripTags(vs[0])
	}
	return ""
}

func submissionFromForm(form *multipart.Form) models.Submission {
	attrs := []string{}
	for _, a := range htmlsanitize.StripAll(form.Value["attributeType"]) {
		if a != "" {
			attrs = append(attrs, a)
		}
	}
	return models.Submission{
		Contributor: models.Contributor{
			Name:        formValue(form, "contributorName"),
			Email:       formValue(form, "contributorEmail"),
			Institution: formValue(form, "contributorInstitution"),
		},
		Dataset: models.Dataset{
			Name:                   formValue(form, "datasetName"),
			Description:            formValue(form, "datasetDescription"),
			ApplicationDomain:      formValue(form, "applicationDomain"),
			ApplicationDomainOther: formValue(form, "applicationDomainOther"),
			AttributeType:          attrs,
			AttributeTypeOther:     formValue(form, "attributeTypeOther"),
		},
		Task: models.Task{
			Description:        formValue(form, "taskDescription"),
			EvaluationCriteria: formValue(form, "evalCriteria"),
		},
	}
}

func filesFromForm(form *multipart.Form) submission.FileSet {
	fs := submission.FileSet{}
	for _, role := range models.FileRoles {
		for _, fh := range form.File[string(role)] {
			fs[role] = append(fs[role], fileHandle(fh))
		}
	}
	return fs
}

func fileHandle(fh *multipart.FileHeader) submission.FileHandle {
	return submission.FileHandle{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
