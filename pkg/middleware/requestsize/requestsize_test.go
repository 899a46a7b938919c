package requestsize

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/server/router/nethttp"
)

func newEchoRouter(maxBytes int64) router.Router {
	r := nethttp.NewRouter()
	r.Use(Middleware(maxBytes))
	r.POST("/submit", func(c router.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, string(body))
	})
	return r
}

func TestAllowsBodiesWithinLimit(t *testing.T) {
	r := newEchoRouter(64)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("small body"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "small body" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRejectsDeclaredOversizedBody(t *testing.T) {
	r := newEchoRouter(8)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(strings.Repeat("x", 100)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "request_too_large") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRejectsStreamedOversizedBody(t *testing.T) {
	r := newEchoRouter(8)

	// No Content-Length, so the limit only trips while reading.
	req := httptest.NewRequest(http.MethodPost, "/submit", io.NopCloser(strings.NewReader(strings.Repeat("x", 100))))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rec.Code)
	}
}

func TestZeroLimitDisablesCheck(t *testing.T) {
	r := newEchoRouter(0)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(strings.Repeat("x", 1000)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
