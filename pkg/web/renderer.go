// Package web registers the site's routes: server-rendered pages, the
// language switch, static assets, and the form submission API.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/pytogo/website/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutTemplate = "layout.html"

// pageData is the root object every page template executes against.
type pageData struct {
	Locale   string
	TitleKey string
	Year     int
	Data     any
}

// Renderer holds one parsed template set per page, each sharing the site
// layout. The "t" translation function is bound per request, so a parsed
// set is cloned before execution.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded page templates against the shared layout.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	// Placeholder funcs so the templates parse; the real translator is
	// bound per render.
	stubFuncs := template.FuncMap{
		"t": func(key string, args ...interface{}) string { return key },
	}

	layout, err := template.New(layoutTemplate).
		Funcs(stubFuncs).
		ParseFS(templateFS, path.Join("templates", layoutTemplate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == layoutTemplate || !strings.HasSuffix(name, ".html") {
			continue
		}

		set, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		if _, err := set.ParseFS(templateFS, path.Join("templates", name)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = set
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page for the given locale and returns the
// rendered HTML.
func (r *Renderer) Render(page, titleKey, locale string, translator i18n.Translator, data any) ([]byte, error) {
	tmpl, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}

	set, err := tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone template %s: %w", page, err)
	}
	set = set.Funcs(template.FuncMap{"t": translator.T})

	var buf bytes.Buffer
	err = set.ExecuteTemplate(&buf, layoutTemplate, pageData{
		Locale:   locale,
		TitleKey: titleKey,
		Year:     time.Now().Year(),
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}
