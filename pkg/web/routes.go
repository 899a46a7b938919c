package web

import (
	"fmt"
	"net/http"

	"github.com/pytogo/website/pkg/middleware/ratelimit"
	"github.com/pytogo/website/pkg/middleware/static"
	"github.com/pytogo/website/pkg/server/router"
)

// RegisterRoutes mounts every site route on the router: static assets,
// the rendered pages, the language switch, and the rate-limited form API.
// A nil limiter disables rate limiting (tests, dev mode).
func RegisterRoutes(r router.Router, h *Handlers, limiter ratelimit.RateLimiter) error {
	assets, err := static.EmbedFolder(staticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static assets: %w", err)
	}
	// Route patterns match whole segments, so the asset handler is
	// registered once per directory depth in the embedded tree.
	serveAsset := static.Serve("/static", assets)(func(c router.Context) error {
		return c.String(http.StatusNotFound, "404 page not found")
	})
	r.GET("/static/:p1", serveAsset)
	r.GET("/static/:p1/:p2", serveAsset)

	r.GET("/", h.Home)
	r.GET("/about", h.About)
	r.GET("/events", h.Events)
	r.GET("/events/:id", h.EventDetail)
	r.GET("/actualities", h.Actualities)
	r.GET("/actualities/:id", h.ActualityDetail)
	r.GET("/communities", h.Communities)
	r.GET("/join", h.Join)
	r.GET("/contact", h.Contact)
	r.GET("/code-of-conduct", h.CodeOfConduct)
	r.GET("/partners", h.Partners)
	r.GET("/gallery", h.Gallery)
	r.GET("/privacy", h.Privacy)
	r.GET("/lang/:code", h.SetLanguage)

	var apiMiddleware []router.MiddlewareFunc
	if limiter != nil {
		apiMiddleware = append(apiMiddleware, ratelimit.RateLimit(limiter, ratelimit.Config{
			KeyFunc: func(c router.Context) string {
				return ratelimit.ExtractIPFromRequest(c.Request())
			},
		}))
	}
	api := r.Group("/api/v1", apiMiddleware...)
	api.POST("/join", h.SubmitJoin)
	api.POST("/contact", h.SubmitContact)
	api.POST("/partnership", h.SubmitPartnership)

	return nil
}
