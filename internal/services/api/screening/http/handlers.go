// Package http wires screening routes
package http

import (
	"encoding/json"
	"io"
	"net/http"

	"resumeranker/internal/modkit/httpkit"
	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/services/api/screening/domain"
	"resumeranker/internal/services/api/screening/service"
)

// maxSubmissionBytes caps an entire multipart submission
const maxSubmissionBytes = 64 << 20

// Register mounts screening routes on the given router
func Register(r httpkit.Router, svc service.Service) {
	r.Post("/submit", httpkit.Handle(submitHandler(svc)))

	httpkit.PostJSON(r, "/validate", func(req *http.Request, q domain.ValidateQuery) (any, error) {
		return svc.ValidateEmail(req.Context(), q.Email)
	})
}

// submitHandler parses the multipart submission and runs the pipeline
// the metadata rides in a JSON "data" field, resumes are file parts
func submitHandler(svc service.Service) func(*http.Request) httpkit.Response {
	return func(r *http.Request) httpkit.Response {
		req, err := parseSubmission(r)
		if err != nil {
			return httpkit.Error(err)
		}
		return httpkit.OK(svc.Submit(r.Context(), req))
	}
}

func parseSubmission(r *http.Request) (domain.SubmissionRequest, error) {
	var req domain.SubmissionRequest

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		return req, perr.JSONErrf("malformed multipart request: %s", err)
	}

	raw := r.FormValue("data")
	if raw == "" {
		return req, perr.WithField(perr.Validationf("data field is required"), "data")
	}
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return req, perr.JSONErrf("malformed data field: %s", err)
	}

	if r.MultipartForm == nil {
		return req, nil
	}
	// preserve upload order, scoring results are positional
	for _, fh := range r.MultipartForm.File["resumes"] {
		f, err := fh.Open()
		if err != nil {
			return req, perr.Validationf("unreadable resume part %q", fh.Filename)
		}
		content, rerr := io.ReadAll(f)
		f.Close()
		if rerr != nil {
			return req, perr.Validationf("unreadable resume part %q", fh.Filename)
		}
		req.Resumes = append(req.Resumes, domain.ResumeFile{
			Filename: fh.Filename,
			Content:  content,
		})
	}
	return req, nil
}
