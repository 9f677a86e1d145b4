package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

type fixedIDs struct {
	value string
	err   error
}

func (f fixedIDs) NewID() (string, error) {
	return f.value, f.err
}

func TestRequestLogging_AssignsRequestIDAndLogsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestLogging(logging.NewWithCore(core), fixedIDs{value: "abc123"}, next)

	req := httptest.NewRequest(http.MethodGet, "/players?page=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc123" {
		t.Fatalf("expected generated request id header, got %q", got)
	}
	if seen != "abc123" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if got, _ := fields["status_code"].(int64); got != http.StatusTeapot {
		t.Fatalf("unexpected status_code field: %v", fields["status_code"])
	}
	if fields["query"] != "page=2" {
		t.Fatalf("unexpected query field: %v", fields["query"])
	}
}

func TestRequestLogging_KeepsValidIncomingID(t *testing.T) {
	t.Parallel()

	handler := RequestLogging(logging.NewNop(), fixedIDs{value: "generated"}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	req.Header.Set("X-Request-ID", "client-id_1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-id_1" {
		t.Fatalf("expected incoming id to be kept, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/players", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "generated" {
		t.Fatalf("expected malformed id to be replaced, got %q", got)
	}
}

func TestRequestLogging_GeneratorFailureFallsBack(t *testing.T) {
	t.Parallel()

	handler := RequestLogging(logging.NewNop(), fixedIDs{err: errors.New("no entropy")}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players", nil))

	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected fallback request id")
	}
}

func TestRequireInternalToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: "", provided: "anything", wantStatus: http.StatusServiceUnavailable},
		{name: "missing header", configured: "secret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "mismatch", configured: "secret", provided: "nope", wantStatus: http.StatusUnauthorized},
		{name: "same length mismatch", configured: "secret", provided: "secreT", wantStatus: http.StatusUnauthorized},
		{name: "prefix of token", configured: "secret", provided: "secre", wantStatus: http.StatusUnauthorized},
		{name: "match", configured: "secret", provided: " secret ", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := RequireInternalToken(tt.configured, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodPost, "/internal/team-directory/invalidate", nil)
			if tt.provided != "" {
				req.Header.Set("X-Internal-Token", tt.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d body=%s", tt.wantStatus, rec.Code, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}
