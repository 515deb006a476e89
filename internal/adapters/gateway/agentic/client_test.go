package agentic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "resumeranker/internal/platform/errors"
)

func newTestClient(base string) *Client {
	c := NewClient(Options{BaseURL: base, MaxRetries: 2, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {} // no real backoff in tests
	return c
}

func TestSubmit_MultipartShape(t *testing.T) {
	var gotData Payload
	var gotFiles []string
	var gotContents []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if err := json.Unmarshal([]byte(r.FormValue("data")), &gotData); err != nil {
			t.Errorf("decode data field: %v", err)
		}
		for _, fh := range r.MultipartForm.File["resumes"] {
			gotFiles = append(gotFiles, fh.Filename)
			f, _ := fh.Open()
			b, _ := io.ReadAll(f)
			_ = f.Close()
			gotContents = append(gotContents, string(b))
		}
		_, _ = w.Write([]byte(`{"data":{"id":"CASE-1","results":[{"name":"alice","score":88}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	res, err := c.Submit(context.Background(), Payload{
		OrgID:          3,
		JobTitle:       "Backend Engineer",
		ExeName:        "go postgres",
		JobDescription: "build services",
	}, []Resume{
		{Filename: "alice.pdf", Content: []byte("alice bytes")},
		{Filename: "bob.pdf", Content: []byte("bob bytes")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	if gotData.WorkflowID != WorkflowID {
		t.Fatalf("workflow_id = %q, want %q", gotData.WorkflowID, WorkflowID)
	}
	if gotData.OrgID != 3 || gotData.JobTitle != "Backend Engineer" {
		t.Fatalf("data field mangled: %+v", gotData)
	}

	// resume parts must arrive in submission order
	if len(gotFiles) != 2 || gotFiles[0] != "alice.pdf" || gotFiles[1] != "bob.pdf" {
		t.Fatalf("file order = %v", gotFiles)
	}
	if gotContents[0] != "alice bytes" || gotContents[1] != "bob bytes" {
		t.Fatalf("file contents = %v", gotContents)
	}

	if res.CaseID != "CASE-1" {
		t.Fatalf("case id = %q", res.CaseID)
	}
	var data struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := json.Unmarshal(res.Raw, &data); err != nil || len(data.Results) != 1 || data.Results[0].Name != "alice" {
		t.Fatalf("raw data payload not preserved: %s", res.Raw)
	}
}

func TestSubmit_MissingCaseIDIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Submit(context.Background(), Payload{OrgID: 2}, nil)
	if err == nil {
		t.Fatal("expected error for response without an id")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v", err)
	}
}

func TestSubmit_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		// retried request must still carry a parseable multipart body
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Errorf("retry body unreadable: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"CASE-2"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Submit(context.Background(), Payload{OrgID: 2}, nil)
	if err != nil {
		t.Fatalf("submit after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestSubmit_NonTransientFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"no resumes"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Submit(context.Background(), Payload{OrgID: 2}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v", err)
	}
	if perr.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("upstream status = %d", perr.StatusOf(err))
	}
}

func TestSubmit_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Submit(context.Background(), Payload{OrgID: 2}, nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3 (initial + 2 retries)", calls.Load())
	}
}
