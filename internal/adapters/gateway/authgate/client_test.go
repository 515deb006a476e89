package authgate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "resumeranker/internal/platform/errors"
)

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		authorized bool
	}{
		{
			name:       "success verdict authorizes",
			status:     http.StatusOK,
			body:       `{"status":"success"}`,
			authorized: true,
		},
		{
			name:       "failed verdict denies",
			status:     http.StatusOK,
			body:       `{"status":"failed","message":"domain not registered"}`,
			authorized: false,
		},
		{
			name:       "2xx with wrong status denies",
			status:     http.StatusAccepted,
			body:       `{"status":"pending"}`,
			authorized: false,
		},
		{
			name:       "non 2xx denies even with success body",
			status:     http.StatusForbidden,
			body:       `{"status":"success"}`,
			authorized: false,
		},
		{
			name:       "garbage body denies",
			status:     http.StatusOK,
			body:       `not json`,
			authorized: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotEmail string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var in struct {
					Email string `json:"email"`
				}
				_ = json.NewDecoder(r.Body).Decode(&in)
				gotEmail = in.Email
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(Options{BaseURL: srv.URL})
			d, err := c.Validate(context.Background(), "hr@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Authorized != tc.authorized {
				t.Fatalf("authorized = %v, want %v (reason %q)", d.Authorized, tc.authorized, d.Reason)
			}
			if !d.Authorized && d.Reason == "" {
				t.Fatalf("denied decision must carry a reason")
			}
			if gotEmail != "hr@example.com" {
				t.Fatalf("validator received email %q", gotEmail)
			}
		})
	}
}

func TestValidate_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Validate(context.Background(), "hr@example.com")
	if err == nil {
		t.Fatal("expected an error for an unreachable validator")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
