package requestid

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/server/router/nethttp"
)

// For any request carrying an X-Request-ID header the same value must show up
// in the response header and the request context; without the header a fresh
// UUID is issued instead.
func TestRequestIDPropagationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	uuidPattern := regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

	genRequestID := gen.AlphaString().SuchThat(func(s string) bool {
		return len(s) > 0 && len(s) <= 100
	})

	properties.Property("preserves existing X-Request-ID header", prop.ForAll(
		func(existingID string) bool {
			r := nethttp.NewRouter()
			r.Use(RequestID())

			var contextID string
			r.GET("/test", func(c router.Context) error {
				contextID = GetRequestID(c.Request().Context())
				return c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, existingID)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			return w.Header().Get(RequestIDHeader) == existingID && contextID == existingID
		},
		genRequestID,
	))

	properties.Property("generates a UUID when header is absent", prop.ForAll(
		func(_ int) bool {
			r := nethttp.NewRouter()
			r.Use(RequestID())

			var contextID string
			r.GET("/test", func(c router.Context) error {
				contextID = GetRequestID(c.Request().Context())
				return c.String(http.StatusOK, "ok")
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			responseID := w.Header().Get(RequestIDHeader)
			return uuidPattern.MatchString(responseID) && contextID == responseID
		},
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
