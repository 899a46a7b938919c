package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/forms"
	"github.com/pytogo/website/pkg/i18n/locales"
	"github.com/pytogo/website/pkg/listings"
	"github.com/pytogo/website/pkg/middleware/locale"
	"github.com/pytogo/website/pkg/middleware/ratelimit"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/server/router/nethttp"
	"github.com/pytogo/website/pkg/store"
	"github.com/pytogo/website/pkg/store/memory"
)

type failingStore struct {
	*memory.Adapter
}

func (f *failingStore) Insert(ctx context.Context, table string, record map[string]any) error {
	return errors.New("storage unavailable")
}

type siteOptions struct {
	tables  store.TableStore
	limiter ratelimit.RateLimiter
}

func newTestSite(t *testing.T, opts siteOptions) (router.Router, *memory.Adapter) {
	t.Helper()

	catalog, err := locales.Load()
	if err != nil {
		t.Fatalf("failed to load locale catalog: %v", err)
	}
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	mem := memory.NewAdapter(logger.Nop())
	var tables store.TableStore = mem
	if opts.tables != nil {
		tables = opts.tables
	}

	log := logger.Nop()
	submissions := forms.NewService(tables, config.FormsConfig{}, log)
	listingSvc := listings.NewService(tables, listings.NewInMemoryStore(), 0, log)

	i18nCfg := config.I18nConfig{DefaultLocale: "fr", CookieName: "lang"}
	h := NewHandlers(renderer, submissions, listingSvc, catalog, i18nCfg, log)

	r := nethttp.NewRouter()
	r.Use(locale.Middleware(catalog, locale.DefaultConfig()))
	if err := RegisterRoutes(r, h, opts.limiter); err != nil {
		t.Fatalf("failed to register routes: %v", err)
	}
	return r, mem
}

func get(r router.Router, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHomeRendersFrenchByDefault(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Bienvenue sur Python Togo") {
		t.Error("expected French welcome text on the home page")
	}
	if !strings.Contains(body, `lang="fr"`) {
		t.Error("expected lang attribute to be fr")
	}
}

func TestHomeHonorsAcceptLanguage(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/", http.Header{"Accept-Language": []string{"en-US,fr;q=0.8"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome to Python Togo") {
		t.Error("expected English welcome text for Accept-Language en-US")
	}
}

func TestHomeCookieBeatsHeader(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Bienvenue sur Python Togo") {
		t.Error("expected the language cookie to override Accept-Language")
	}
}

func TestHomeShowsAtMostTwoNewsItems(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	body := get(r, "/", nil).Body.String()
	if count := strings.Count(body, `href="/actualities/`); count > 3 {
		// 2 cards with a title link each plus the "see all" link would
		// exceed this only if the preview grew past two items.
		t.Errorf("expected at most two news cards on the home page, found %d detail links", count)
	}
}

func TestStaticPagesRender(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	paths := []string{
		"/about", "/events", "/actualities", "/communities", "/join",
		"/contact", "/code-of-conduct", "/partners", "/gallery", "/privacy",
	}
	for _, path := range paths {
		rec := get(r, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestEventDetail(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/events/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Atelier Python débutant") {
		t.Error("expected event title in the detail page")
	}

	for _, path := range []string{"/events/999", "/events/abc"} {
		if rec := get(r, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected status 404, got %d", path, rec.Code)
		}
	}
}

func TestActualityDetail(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/actualities/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if rec := get(r, "/actualities/42", nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown news item, got %d", rec.Code)
	}
}

func TestPartnersPageShowsStoredPartners(t *testing.T) {
	r, mem := newTestSite(t, siteOptions{})
	mem.Seed(store.TablePartners, []map[string]any{
		{"name": "Django Togo", "website": "https://example.org", "description": "Web framework community"},
	})

	body := get(r, "/partners", nil).Body.String()
	if !strings.Contains(body, "Django Togo") {
		t.Error("expected seeded partner on the partners page")
	}
}

func TestGalleryPageDegradesToComingSoon(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	body := get(r, "/gallery", nil).Body.String()
	if !strings.Contains(body, "coming soon") && !strings.Contains(body, "venir") {
		t.Error("expected the empty-gallery fallback text")
	}
}

func TestSetLanguage(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	req := httptest.NewRequest(http.MethodGet, "/lang/en", nil)
	req.Header.Set("Referer", "/events")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/events" {
		t.Errorf("expected redirect to /events, got %q", loc)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == "lang" {
			found = c
		}
	}
	if found == nil {
		t.Fatal("expected a lang cookie to be set")
	}
	if found.Value != "en" {
		t.Errorf("expected cookie value en, got %q", found.Value)
	}
	if found.Path != "/" {
		t.Errorf("expected cookie path /, got %q", found.Path)
	}
	if found.MaxAge != 365*24*60*60 {
		t.Errorf("expected one-year max age, got %d", found.MaxAge)
	}
}

func TestSetLanguageWithoutRefererRedirectsHome(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/lang/fr", nil)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestSetLanguageRejectsUnsupportedCode(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	// "FR" included: language codes must use the exact catalog spelling.
	for _, code := range []string{"de", "FR", "fr-FR"} {
		rec := get(r, "/lang/"+code, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("/lang/%s: expected status 404, got %d", code, rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Errorf("/lang/%s: expected no cookie for an unsupported language", code)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := get(r, "/static/css/site.css", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "site-header") {
		t.Error("expected the stylesheet body")
	}
}

func postJSON(r router.Router, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubmitJoinPersistsAndAcknowledges(t *testing.T) {
	r, mem := newTestSite(t, siteOptions{})

	rec := postJSON(r, "/api/v1/join", `{
		"name": "Afi Mensah",
		"email": "afi@example.org",
		"city": "Lomé",
		"agree_privacy": true,
		"agree_coc": "on"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "received" {
		t.Errorf("expected status received, got %q", resp["status"])
	}

	rows, err := mem.SelectAll(context.Background(), store.TableMembers)
	if err != nil {
		t.Fatalf("failed to read back members: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 stored member, got %d", len(rows))
	}
	if rows[0]["email"] != "afi@example.org" {
		t.Errorf("expected stored email, got %v", rows[0]["email"])
	}
}

func TestSubmitJoinFormEncoded(t *testing.T) {
	r, mem := newTestSite(t, siteOptions{})

	form := url.Values{}
	form.Set("name", "Kossi")
	form.Set("email", "kossi@example.org")
	form.Set("agree_privacy", "on")
	form.Set("agree_coc", "1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/join", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rows, _ := mem.SelectAll(context.Background(), store.TableMembers)
	if len(rows) != 1 {
		t.Fatalf("expected 1 stored member, got %d", len(rows))
	}
}

func TestSubmitContactConsentRequired(t *testing.T) {
	r, mem := newTestSite(t, siteOptions{})

	rec := postJSON(r, "/api/v1/contact", `{
		"name": "Ama",
		"email": "ama@example.org",
		"subject": "Hello",
		"message": "Bonjour",
		"agree_privacy": false,
		"agree_coc": true
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "consent_required" {
		t.Errorf("expected consent_required, got %q", resp["error"])
	}

	rows, _ := mem.SelectAll(context.Background(), store.TableContacts)
	if len(rows) != 0 {
		t.Error("rejected submission must not be persisted")
	}
}

func TestSubmitContactInvalidEmail(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := postJSON(r, "/api/v1/contact", `{
		"name": "Ama",
		"email": "not-an-email",
		"subject": "Hello",
		"message": "Bonjour",
		"agree_privacy": true,
		"agree_coc": true
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Please use a valid email" {
		t.Errorf("unexpected error code %q", resp["error"])
	}
}

func TestSubmitPartnershipMissingFields(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := postJSON(r, "/api/v1/partnership", `{
		"email": "org@example.org",
		"agree_privacy": true,
		"agree_coc": true
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSubmitJoinMalformedJSON(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{})

	rec := postJSON(r, "/api/v1/join", `{"name": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSubmitJoinStorageFailureReportsFailed(t *testing.T) {
	r, _ := newTestSite(t, siteOptions{tables: &failingStore{memory.NewAdapter(logger.Nop())}})

	rec := postJSON(r, "/api/v1/join", `{
		"name": "Afi",
		"email": "afi@example.org",
		"agree_privacy": true,
		"agree_coc": true
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with failed payload, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "failed" {
		t.Errorf("expected status failed, got %q", resp["status"])
	}
}

func TestFormEndpointsAreRateLimited(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(1, 1)
	r, _ := newTestSite(t, siteOptions{limiter: limiter})

	body := `{"name":"Afi","email":"afi@example.org","agree_privacy":true,"agree_coc":true}`
	first := postJSON(r, "/api/v1/join", body)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}
	second := postJSON(r, "/api/v1/join", body)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 on the second burst request, got %d", second.Code)
	}

	// Pages are not rate limited.
	if rec := get(r, "/", nil); rec.Code != http.StatusOK {
		t.Errorf("expected pages to bypass the limiter, got %d", rec.Code)
	}
}
