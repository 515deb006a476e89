package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode_Taxonomy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeQuotaExceeded, http.StatusPaymentRequired},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeLookup, http.StatusBadGateway},
		{ErrorCodeSync, http.StatusBadGateway},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeConfiguration, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(9999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrap_UnwrapAndRoot(t *testing.T) {
	t.Parallel()

	cause := stderrs.New("connection refused")
	err := Wrap(cause, ErrorCodeUpstream, "scoring call failed")

	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped error should match cause via errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root should return the deepest cause")
	}
	if CodeOf(err) != ErrorCodeUpstream {
		t.Fatalf("CodeOf = %d, want upstream", CodeOf(err))
	}
	want := "scoring call failed: connection refused"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWireFrom_DoesNotLeakWrappedCause(t *testing.T) {
	t.Parallel()

	cause := stderrs.New("dial tcp 10.0.0.1:443: i/o timeout")
	err := Wrap(cause, ErrorCodeSync, "record sync failed")

	w := WireFrom(err)
	if w.Code != ErrorCodeSync {
		t.Fatalf("wire code = %d, want sync", w.Code)
	}
	if w.Message != "record sync failed" {
		t.Fatalf("wire message leaked cause: %q", w.Message)
	}
}

func TestUpstreamSugar_CarriesStatus(t *testing.T) {
	t.Parallel()

	err := Upstreamf(503, "upload failed with status %d", 503)
	if StatusOf(err) != 503 {
		t.Fatalf("StatusOf = %d, want 503", StatusOf(err))
	}
	if w := WireFrom(err); w.Status != 503 {
		t.Fatalf("wire upstream_status = %d, want 503", w.Status)
	}

	// foreign errors have no status
	if StatusOf(stderrs.New("plain")) != 0 {
		t.Fatalf("foreign error should report status 0")
	}
}

func TestWithFieldAndStatus_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := Validationf("jobTitle is required")
	withField := WithField(base, "jobTitle")

	be, _ := As(base)
	fe, _ := As(withField)
	if be.Field() != "" {
		t.Fatalf("original mutated: field=%q", be.Field())
	}
	if fe.Field() != "jobTitle" {
		t.Fatalf("field not attached: %q", fe.Field())
	}

	withStatus := WithStatus(base, 400)
	se, _ := As(withStatus)
	if se.Status() != 400 || be.Status() != 0 {
		t.Fatalf("WithStatus copy-on-write broken")
	}

	// foreign errors pass through unchanged
	foreign := fmt.Errorf("boom")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("foreign error should pass through WithField")
	}
}

func TestHTTP_NilAndError(t *testing.T) {
	t.Parallel()

	status, w := HTTP(nil)
	if status != http.StatusOK || w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("HTTP(nil) = %d %+v", status, w)
	}

	status, w = HTTP(QuotaExceededf("only 3 credits left"))
	if status != http.StatusPaymentRequired {
		t.Fatalf("quota status = %d", status)
	}
	if w.Message != "only 3 credits left" {
		t.Fatalf("quota message = %q", w.Message)
	}
}

func TestWrapIf(t *testing.T) {
	t.Parallel()

	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	err := WrapIf(stderrs.New("no rows"), ErrorCodeDB, "ledger read failed")
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("WrapIf code = %d", CodeOf(err))
	}
}
