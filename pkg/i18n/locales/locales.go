// Package locales embeds the site translation tables.
package locales

import (
	"embed"

	"github.com/pytogo/website/pkg/i18n"
)

//go:embed *.yaml
var files embed.FS

// DefaultLocale is the site-wide default display language.
const DefaultLocale = "fr"

// Load builds the translation catalog from the embedded locale files.
func Load() (*i18n.Catalog, error) {
	return i18n.LoadCatalogFS(files, ".", DefaultLocale)
}
