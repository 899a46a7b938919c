package logging

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pytogo/website/pkg/middleware/testutil"
	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/server/router/nethttp"
)

func TestLogging_RequestCompleted(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Logging(mock))
	r.GET("/events", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if len(mock.Logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(mock.Logs))
	}
	entry := mock.Logs[0]
	if entry.Level != "info" || entry.Msg != "request completed" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Fields["method"] != http.MethodGet {
		t.Fatalf("expected method GET, got %v", entry.Fields["method"])
	}
	if entry.Fields["path"] != "/events" {
		t.Fatalf("expected path /events, got %v", entry.Fields["path"])
	}
	if entry.Fields["status"] != http.StatusOK {
		t.Fatalf("expected status 200, got %v", entry.Fields["status"])
	}
}

func TestLogging_RequestFailed(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Logging(mock))
	r.GET("/boom", func(c router.Context) error {
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if len(mock.Logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(mock.Logs))
	}
	entry := mock.Logs[0]
	if entry.Level != "error" || entry.Msg != "request failed" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Fields["error"] == nil {
		t.Fatal("expected error field")
	}
}

func TestLogging_LogStart(t *testing.T) {
	mock := &testutil.MockLogger{}
	cfg := DefaultConfig()
	cfg.LogStart = true

	r := nethttp.NewRouter()
	r.Use(WithConfig(mock, cfg))
	r.GET("/events", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if len(mock.Logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(mock.Logs))
	}
	if mock.Logs[0].Msg != "request started" {
		t.Fatalf("expected request started first, got %q", mock.Logs[0].Msg)
	}
	if mock.Logs[1].Msg != "request completed" {
		t.Fatalf("expected request completed second, got %q", mock.Logs[1].Msg)
	}
}

func TestLogging_ExcludedPrefixes(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(Logging(mock))
	r.GET("/static/css/site.css", func(c router.Context) error {
		return c.String(http.StatusOK, "body{}")
	})
	r.GET("/health/live", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/static/css/site.css", "/health/live"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(mock.Logs) != 0 {
		t.Fatalf("expected no log entries for excluded paths, got %d", len(mock.Logs))
	}
}

func TestLogging_Disabled(t *testing.T) {
	mock := &testutil.MockLogger{}
	r := nethttp.NewRouter()
	r.Use(WithConfig(mock, Config{Enabled: false}))
	r.GET("/events", func(c router.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if len(mock.Logs) != 0 {
		t.Fatalf("expected no log entries when disabled, got %d", len(mock.Logs))
	}
}
