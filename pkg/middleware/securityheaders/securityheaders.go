// Package securityheaders sets browser security headers on every page.
package securityheaders

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pytogo/website/pkg/server/router"
)

// Config controls the emitted security headers. Empty string values omit
// the corresponding header.
type Config struct {
	ContentSecurityPolicy string
	FrameOptions          string
	ReferrerPolicy        string
	PermissionsPolicy     string
	ContentTypeNosniff    bool

	// STSSeconds is the Strict-Transport-Security max-age. HSTS is only
	// sent on requests that arrived over HTTPS (directly or via the
	// X-Forwarded-Proto header a fronting proxy sets).
	STSSeconds           int64
	STSIncludeSubdomains bool
}

// DefaultConfig returns headers suited to a server-rendered site that
// embeds images from its CDN hosts.
func DefaultConfig() Config {
	return Config{
		ContentSecurityPolicy: "default-src 'self'; " +
			"img-src 'self' https://res.cloudinary.com https://picsum.photos https://*.picsum.photos; " +
			"style-src 'self'; " +
			"form-action 'self'",
		FrameOptions:         "DENY",
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		PermissionsPolicy:    "geolocation=(), microphone=(), camera=()",
		ContentTypeNosniff:   true,
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
	}
}

// Middleware applies the configured headers to every response.
func Middleware(cfg Config) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			h := c.Response().Header()

			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			if cfg.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			if cfg.STSSeconds > 0 && isSecureRequest(c.Request()) {
				sts := fmt.Sprintf("max-age=%d", cfg.STSSeconds)
				if cfg.STSIncludeSubdomains {
					sts += "; includeSubDomains"
				}
				h.Set("Strict-Transport-Security", sts)
			}

			return next(c)
		}
	}
}

func isSecureRequest(req *http.Request) bool {
	if req == nil {
		return false
	}
	if req.TLS != nil || strings.EqualFold(req.URL.Scheme, "https") {
		return true
	}
	return strings.EqualFold(req.Header.Get("X-Forwarded-Proto"), "https")
}
