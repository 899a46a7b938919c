// Package i18n holds the translation catalog and translator contract used to
// localize the site.
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// Catalog stores locale-key translations in memory. It is loaded once at
// startup and read-only afterwards.
type Catalog struct {
	defaultLocale string
	messages      map[string]map[string]string
}

// NewCatalog creates an empty translation catalog.
func NewCatalog(defaultLocale string) *Catalog {
	return &Catalog{
		defaultLocale: normalizeLocale(defaultLocale),
		messages:      map[string]map[string]string{},
	}
}

// LoadCatalogFS loads translation files from a directory of a filesystem,
// typically an embedded one. Supported files: *.json, *.yaml, *.yml named
// after their locale (e.g. fr.yaml, en.yaml).
func LoadCatalogFS(fsys fs.FS, dir, defaultLocale string) (*Catalog, error) {
	catalog := NewCatalog(defaultLocale)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read i18n catalog dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		locale := strings.TrimSpace(strings.TrimSuffix(name, ext))
		if locale == "" {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read i18n catalog %s: %w", name, err)
		}

		var payload map[string]interface{}
		switch ext {
		case ".json":
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("decode i18n json catalog %s: %w", name, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("decode i18n yaml catalog %s: %w", name, err)
			}
		default:
			continue
		}
		catalog.Add(locale, flattenCatalog(payload, ""))
	}
	if !catalog.Has(catalog.DefaultLocale()) {
		return nil, fmt.Errorf("default locale %q has no catalog file in %s", defaultLocale, dir)
	}
	return catalog, nil
}

// Add inserts translations for a locale.
func (c *Catalog) Add(locale string, entries map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	if c.messages[locale] == nil {
		c.messages[locale] = map[string]string{}
	}
	for key, value := range entries {
		if strings.TrimSpace(key) == "" {
			continue
		}
		c.messages[locale][key] = value
	}
}

// DefaultLocale returns the catalog's default locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the sorted set of locales the catalog holds entries for.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the catalog holds entries for the given locale.
func (c *Catalog) Has(locale string) bool {
	_, ok := c.messages[normalizeLocale(locale)]
	return ok
}

// ForLocale returns a locale-bound translator.
func (c *Catalog) ForLocale(locale string) Translator {
	return localizedTranslator{
		catalog: c,
		locale:  normalizeLocale(locale),
	}
}

type localizedTranslator struct {
	catalog *Catalog
	locale  string
}

// T resolves a key into the localized text, interpolating {name} params.
// Unknown keys resolve to the key itself so rendering never fails.
func (t localizedTranslator) T(key string, args ...interface{}) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if t.catalog == nil {
		return key
	}

	template := t.catalog.lookup(t.locale, key)
	if template == "" {
		return key
	}

	params := parseTemplateArgs(args...)
	return applyTemplateParams(template, params)
}

func (c *Catalog) lookup(locale, key string) string {
	for _, candidate := range c.fallbackLocales(locale) {
		if entries := c.messages[candidate]; entries != nil {
			if value, ok := entries[key]; ok {
				return value
			}
		}
	}
	return ""
}

func (c *Catalog) fallbackLocales(locale string) []string {
	ordered := []string{}
	seen := map[string]struct{}{}

	add := func(item string) {
		item = normalizeLocale(item)
		if item == "" {
			return
		}
		if _, exists := seen[item]; exists {
			return
		}
		seen[item] = struct{}{}
		ordered = append(ordered, item)
	}

	add(locale)
	add(baseLocale(locale))
	add(c.defaultLocale)
	return ordered
}

func parseTemplateArgs(args ...interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		switch v := args[0].(type) {
		case map[string]interface{}:
			return v
		case Params:
			out := make(map[string]interface{}, len(v))
			for key, value := range v {
				out[key] = value
			}
			return out
		}
	}

	params := map[string]interface{}{}
	for idx := 0; idx+1 < len(args); idx += 2 {
		key, ok := args[idx].(string)
		if !ok {
			continue
		}
		params[key] = args[idx+1]
	}
	return params
}

func applyTemplateParams(template string, params map[string]interface{}) string {
	if len(params) == 0 {
		return template
	}
	// Deterministic replacement order for stable tests.
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := template
	for _, key := range keys {
		value := fmt.Sprint(params[key])
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

func flattenCatalog(payload map[string]interface{}, prefix string) map[string]string {
	out := map[string]string{}
	for key, value := range payload {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch node := value.(type) {
		case map[string]interface{}:
			for k, v := range flattenCatalog(node, fullKey) {
				out[k] = v
			}
		case string:
			out[fullKey] = node
		default:
			out[fullKey] = fmt.Sprint(node)
		}
	}
	return out
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	return strings.ToLower(locale)
}

func baseLocale(locale string) string {
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}
