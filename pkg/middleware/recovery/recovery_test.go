package recovery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pytogo/website/pkg/middleware/testutil"
	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/server/router/nethttp"
)

func TestRecovery_CatchesPanic(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Recovery(mock))
	r.GET("/panic", func(c router.Context) error {
		panic("something went wrong")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body["error"] != "internal_server_error" {
		t.Fatalf("unexpected error code: %v", body["error"])
	}

	if len(mock.Logs) == 0 {
		t.Fatal("expected panic to be logged")
	}
	entry := mock.Logs[0]
	if entry.Level != "error" || entry.Msg != "panic recovered" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
	if entry.Fields["stack"] == "" {
		t.Fatal("expected stack trace in log entry")
	}
}

func TestRecovery_PassesThroughNormalRequests(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Recovery(mock))
	r.GET("/ok", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if len(mock.Logs) != 0 {
		t.Fatalf("expected no log entries, got %d", len(mock.Logs))
	}
}

func TestRecovery_DoesNotOverwriteWrittenResponse(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Recovery(mock))
	r.GET("/late-panic", func(c router.Context) error {
		if err := c.String(http.StatusAccepted, "partial"); err != nil {
			return err
		}
		panic("after write")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/late-panic", nil))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if rec.Body.String() != "partial" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}
