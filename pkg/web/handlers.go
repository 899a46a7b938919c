package web

import (
	"net/http"
	"strconv"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/content"
	"github.com/pytogo/website/pkg/forms"
	"github.com/pytogo/website/pkg/i18n"
	"github.com/pytogo/website/pkg/listings"
	"github.com/pytogo/website/pkg/middleware/locale"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/server/router"
)

// Handlers carries the dependencies the page and API handlers need.
type Handlers struct {
	renderer    *Renderer
	submissions *forms.Service
	listings    *listings.Service
	events      []content.Event
	news        []content.NewsItem
	catalog     *i18n.Catalog
	i18nCfg     config.I18nConfig
	logger      logger.Logger
}

// NewHandlers creates the site handlers over the sample content records.
func NewHandlers(
	renderer *Renderer,
	submissions *forms.Service,
	listingSvc *listings.Service,
	catalog *i18n.Catalog,
	i18nCfg config.I18nConfig,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		renderer:    renderer,
		submissions: submissions,
		listings:    listingSvc,
		events:      content.SampleEvents(),
		news:        content.SampleNews(),
		catalog:     catalog,
		i18nCfg:     i18nCfg,
		logger:      log,
	}
}

// localeOf returns the locale the middleware resolved, falling back to
// the catalog default when the middleware did not run.
func (h *Handlers) localeOf(c router.Context) string {
	if loc, ok := c.Get(locale.LocaleContextKey).(string); ok && loc != "" {
		return loc
	}
	return h.catalog.DefaultLocale()
}

func (h *Handlers) translatorOf(c router.Context, loc string) i18n.Translator {
	if tr, ok := c.Get(locale.TranslatorContextKey).(i18n.Translator); ok && tr != nil {
		return tr
	}
	return h.catalog.ForLocale(loc)
}

// render executes a page template for the request locale.
func (h *Handlers) render(c router.Context, page, titleKey string, data any) error {
	loc := h.localeOf(c)
	body, err := h.renderer.Render(page, titleKey, loc, h.translatorOf(c, loc), data)
	if err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
		return c.String(http.StatusInternalServerError, "internal server error")
	}
	return c.HTML(http.StatusOK, body)
}

func (h *Handlers) Home(c router.Context) error {
	return h.render(c, "home", "home-title", map[string]any{
		"News": content.RecentNews(h.news, h.localeOf(c), 2),
	})
}

func (h *Handlers) About(c router.Context) error {
	return h.render(c, "about", "about-title", nil)
}

func (h *Handlers) Events(c router.Context) error {
	return h.render(c, "events", "events-title", map[string]any{
		"Events": content.ProjectEvents(h.events, h.localeOf(c)),
	})
}

func (h *Handlers) EventDetail(c router.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.notFound(c)
	}
	event, ok := content.FindEvent(h.events, id, h.localeOf(c))
	if !ok {
		return h.notFound(c)
	}
	return h.render(c, "event_detail", "events-title", map[string]any{"Event": event})
}

func (h *Handlers) Actualities(c router.Context) error {
	return h.render(c, "actualities", "news-title", map[string]any{
		"News": content.ProjectNews(h.news, h.localeOf(c)),
	})
}

func (h *Handlers) ActualityDetail(c router.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.notFound(c)
	}
	item, ok := content.FindNews(h.news, id, h.localeOf(c))
	if !ok {
		return h.notFound(c)
	}
	return h.render(c, "actuality_detail", "news-title", map[string]any{"Item": item})
}

func (h *Handlers) Communities(c router.Context) error {
	return h.render(c, "communities", "communities-title", nil)
}

func (h *Handlers) Join(c router.Context) error {
	return h.render(c, "join", "join-title", nil)
}

func (h *Handlers) Contact(c router.Context) error {
	return h.render(c, "contact", "contact-title", nil)
}

func (h *Handlers) CodeOfConduct(c router.Context) error {
	return h.render(c, "code_of_conduct", "coc-title", nil)
}

func (h *Handlers) Partners(c router.Context) error {
	return h.render(c, "partners", "partners-our", map[string]any{
		"Partners": h.listings.Partners(c.Request().Context()),
	})
}

func (h *Handlers) Gallery(c router.Context) error {
	return h.render(c, "gallery", "gallery-title", map[string]any{
		"Items": h.listings.Galleries(c.Request().Context()),
	})
}

func (h *Handlers) Privacy(c router.Context) error {
	return h.render(c, "privacy", "privacy-title", nil)
}

// SetLanguage pins an explicit language choice in the locale cookie and
// sends the visitor back to the page they came from.
func (h *Handlers) SetLanguage(c router.Context) error {
	code := c.Param("code")
	if !h.supportedLanguage(code) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unsupported_language"})
	}

	maxAge := int(h.i18nCfg.CookieMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = 365 * 24 * 60 * 60
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName(),
		Value:    code,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})

	target := c.Request().Referer()
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusTemporaryRedirect, target)
}

// supportedLanguage requires the exact catalog spelling; "FR" is rejected so
// the cookie only ever holds values locale resolution will honor.
func (h *Handlers) supportedLanguage(code string) bool {
	for _, supported := range h.catalog.Locales() {
		if code == supported {
			return true
		}
	}
	return false
}

func (h *Handlers) cookieName() string {
	if h.i18nCfg.CookieName != "" {
		return h.i18nCfg.CookieName
	}
	return locale.CookieName
}

func (h *Handlers) notFound(c router.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}
