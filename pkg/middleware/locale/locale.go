// Package locale provides locale resolution middleware.
//
// The resolved locale is stored in both the router context and the request
// context so that page handlers and downstream middleware can render
// localized content without re-running the negotiation.
package locale

import (
	"context"
	"net/http"
	"strings"

	"github.com/pytogo/website/pkg/i18n"
	"github.com/pytogo/website/pkg/server/router"
)

// Context key constants for locale resolution
const (
	// LocaleContextKey is the router context key for the resolved locale
	LocaleContextKey = "locale"
	// TranslatorContextKey is the router context key for the locale-bound translator
	TranslatorContextKey = "translator"
)

// CookieName is the cookie consulted for an explicit language choice.
const CookieName = "lang"

// Config controls locale resolution.
type Config struct {
	CookieName           string
	ExcludedPathPrefixes []string
}

// DefaultConfig returns explicit locale resolution defaults.
func DefaultConfig() Config {
	return Config{
		CookieName: CookieName,
		ExcludedPathPrefixes: []string{
			"/static/",
			"/metrics",
			"/health",
			"/version",
		},
	}
}

// Middleware resolves the request locale against the catalog's supported
// locales and stores locale + translator in both router.Context and
// request.Context.
//
// Resolution order: the language cookie (exact match only), then the
// Accept-Language header entries in the order the client sent them (matched
// by prefix, so "fr-FR" selects "fr"), then the catalog's default locale.
func Middleware(catalog *i18n.Catalog, cfg Config) router.MiddlewareFunc {
	if strings.TrimSpace(cfg.CookieName) == "" {
		cfg.CookieName = CookieName
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if c.Request() == nil || isExcluded(c.Request().URL.Path, cfg.ExcludedPathPrefixes) {
				return next(c)
			}

			locale := Resolve(c.Request(), catalog, cfg.CookieName)
			translator := catalog.ForLocale(locale)

			ctx := c.Request().Context()
			ctx = i18n.WithLocale(ctx, locale)
			ctx = i18n.WithTranslator(ctx, translator)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Set(LocaleContextKey, locale)
			c.Set(TranslatorContextKey, translator)

			c.Response().Header().Set("Content-Language", locale)
			appendVary(c.Response().Header(), "Accept-Language")
			appendVary(c.Response().Header(), "Cookie")

			return next(c)
		}
	}
}

// Resolve determines the locale for a request. The cookie wins when it names
// a supported locale exactly; otherwise the Accept-Language entries are tried
// in header order; otherwise the default locale applies.
func Resolve(r *http.Request, catalog *i18n.Catalog, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil {
		// Exact match only; "FR" or "fr-FR" falls through to header parsing.
		for _, supported := range catalog.Locales() {
			if cookie.Value == supported {
				return supported
			}
		}
	}

	for _, candidate := range acceptedLanguages(r.Header.Get("Accept-Language")) {
		for _, supported := range catalog.Locales() {
			if strings.HasPrefix(candidate, supported) {
				return supported
			}
		}
	}

	return catalog.DefaultLocale()
}

// acceptedLanguages splits an Accept-Language header into bare language tags,
// preserving the order the client sent them. Quality weights are stripped, not
// sorted on; clients already list preferred languages first.
func acceptedLanguages(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		lang := strings.TrimSpace(part)
		if idx := strings.Index(lang, ";"); idx != -1 {
			lang = strings.TrimSpace(lang[:idx])
		}
		if lang == "" || lang == "*" {
			continue
		}
		out = append(out, strings.ToLower(lang))
	}
	return out
}

func isExcluded(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func appendVary(header http.Header, value string) {
	current := header.Get("Vary")
	if current == "" {
		header.Set("Vary", value)
		return
	}
	for _, part := range strings.Split(current, ",") {
		if strings.EqualFold(strings.TrimSpace(part), value) {
			return
		}
	}
	header.Set("Vary", current+", "+value)
}

// GetLocale returns the resolved locale from request context.
func GetLocale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// TranslatorFromContext returns the locale-bound translator from request context.
func TranslatorFromContext(ctx context.Context) i18n.Translator {
	return i18n.TranslatorFromContext(ctx)
}
