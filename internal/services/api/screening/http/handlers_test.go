package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "resumeranker/internal/platform/net/http"
	"resumeranker/internal/services/api/screening/domain"
)

// fakeSvc records the parsed request and returns a canned outcome
type fakeSvc struct {
	gotSubmit *domain.SubmissionRequest
	outcome   domain.Outcome

	gotEmail string
	row      domain.ValidateRow
	rowErr   error
}

func (f *fakeSvc) Submit(_ context.Context, req domain.SubmissionRequest) domain.Outcome {
	f.gotSubmit = &req
	return f.outcome
}

func (f *fakeSvc) ValidateEmail(_ context.Context, email string) (domain.ValidateRow, error) {
	f.gotEmail = email
	return f.row, f.rowErr
}

func newTestRouter(svc *fakeSvc) http.Handler {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc)
	return mux
}

func multipartBody(t *testing.T, data string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		if err := mw.WriteField("data", data); err != nil {
			t.Fatalf("write data field: %v", err)
		}
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("resumes", name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestSubmit_ParsesMetadataAndFiles(t *testing.T) {
	svc := &fakeSvc{outcome: domain.Outcome{
		SubmissionID: "sub-1",
		Status:       domain.StatusCompleted,
		CaseID:       "CASE-1",
	}}
	h := newTestRouter(svc)

	body, ctype := multipartBody(t,
		`{"job_title":"Backend Engineer","job_type":"Full-time","email":"a@b.co","job_description":"desc","source":"servicenow"}`,
		map[string][]byte{"cv.pdf": []byte("%PDF")},
	)
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotSubmit == nil {
		t.Fatal("service never called")
	}
	if svc.gotSubmit.JobTitle != "Backend Engineer" || svc.gotSubmit.Source != "servicenow" {
		t.Fatalf("parsed request = %+v", svc.gotSubmit)
	}
	if len(svc.gotSubmit.Resumes) != 1 || svc.gotSubmit.Resumes[0].Filename != "cv.pdf" {
		t.Fatalf("resumes = %+v", svc.gotSubmit.Resumes)
	}
	if string(svc.gotSubmit.Resumes[0].Content) != "%PDF" {
		t.Fatalf("resume content = %q", svc.gotSubmit.Resumes[0].Content)
	}

	var env struct {
		StatusCode int             `json:"status_code"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var out domain.Outcome
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if out.SubmissionID != "sub-1" || out.CaseID != "CASE-1" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestSubmit_MissingDataFieldIs400(t *testing.T) {
	svc := &fakeSvc{}
	h := newTestRouter(svc)

	body, ctype := multipartBody(t, "", map[string][]byte{"cv.pdf": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotSubmit != nil {
		t.Fatal("service called on a bad request")
	}
}

func TestSubmit_MalformedDataIs400(t *testing.T) {
	svc := &fakeSvc{}
	h := newTestRouter(svc)

	body, ctype := multipartBody(t, "{not json", nil)
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSubmit_PreservesResumeOrder(t *testing.T) {
	svc := &fakeSvc{outcome: domain.Outcome{Status: domain.StatusCompleted}}
	h := newTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("data", `{"job_title":"t","job_type":"x","email":"a@b.co","job_description":"d"}`)
	for _, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		fw, _ := mw.CreateFormFile("resumes", name)
		_, _ = fw.Write([]byte(name))
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if len(svc.gotSubmit.Resumes) != 3 {
		t.Fatalf("resume count = %d", len(svc.gotSubmit.Resumes))
	}
	for i, want := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		if svc.gotSubmit.Resumes[i].Filename != want {
			t.Fatalf("resume %d = %q, want %q", i, svc.gotSubmit.Resumes[i].Filename, want)
		}
	}
}

func TestValidate_ProxiesVerdict(t *testing.T) {
	svc := &fakeSvc{row: domain.ValidateRow{Authorized: true}}
	h := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBufferString(`{"email":"a@b.co"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotEmail != "a@b.co" {
		t.Fatalf("email = %q", svc.gotEmail)
	}

	// malformed email never reaches the service
	svc.gotEmail = ""
	req = httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBufferString(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotEmail != "" {
		t.Fatal("service called with an invalid email")
	}
}
