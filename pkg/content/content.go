// Package content holds the locale-tagged sample records rendered by the
// site and their projection into display items for a resolved locale.
package content

import (
	"fmt"
	"sort"
)

// EventText is the translated portion of an event.
type EventText struct {
	Title       string
	Description string
}

// Event is a locale-tagged event record. Date is an ISO date or a
// free-text range; Translations maps locale code to display text.
type Event struct {
	ID           int
	Date         string
	Location     string
	Translations map[string]EventText
}

// NewsText is the translated portion of a news item.
type NewsText struct {
	Title   string
	Excerpt string
	Body    string
}

// NewsItem is a locale-tagged news record. Image may be empty, in which
// case projection substitutes a deterministic placeholder keyed by ID.
type NewsItem struct {
	ID           int
	Date         string
	Image        string
	Translations map[string]NewsText
}

// EventView is an event projected for a single locale.
type EventView struct {
	ID          int
	Date        string
	Location    string
	Title       string
	Description string
}

// NewsView is a news item projected for a single locale.
type NewsView struct {
	ID      int
	Date    string
	Title   string
	Excerpt string
	Body    string
	Image   string
}

// ProjectEvents projects every event for the given locale, newest first.
// A missing translation yields empty strings, never an error.
func ProjectEvents(events []Event, locale string) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		tr := e.Translations[locale]
		views = append(views, EventView{
			ID:          e.ID,
			Date:        e.Date,
			Location:    e.Location,
			Title:       tr.Title,
			Description: tr.Description,
		})
	}
	sortByDateDesc(views, func(v EventView) string { return v.Date })
	return views
}

// ProjectNews projects every news item for the given locale, newest first.
func ProjectNews(news []NewsItem, locale string) []NewsView {
	views := make([]NewsView, 0, len(news))
	for _, n := range news {
		views = append(views, projectNewsItem(n, locale, 600, 340))
	}
	sortByDateDesc(views, func(v NewsView) string { return v.Date })
	return views
}

// RecentNews returns at most n projected news items, newest first.
func RecentNews(news []NewsItem, locale string, n int) []NewsView {
	views := ProjectNews(news, locale)
	if n >= 0 && len(views) > n {
		views = views[:n]
	}
	return views
}

// FindEvent looks up an event by ID and projects it for the locale.
func FindEvent(events []Event, id int, locale string) (EventView, bool) {
	for _, e := range events {
		if e.ID == id {
			tr := e.Translations[locale]
			return EventView{
				ID:          e.ID,
				Date:        e.Date,
				Location:    e.Location,
				Title:       tr.Title,
				Description: tr.Description,
			}, true
		}
	}
	return EventView{}, false
}

// FindNews looks up a news item by ID and projects it for the locale.
// Detail pages use a larger placeholder than listings.
func FindNews(news []NewsItem, id int, locale string) (NewsView, bool) {
	for _, n := range news {
		if n.ID == id {
			return projectNewsItem(n, locale, 1200, 680), true
		}
	}
	return NewsView{}, false
}

func projectNewsItem(n NewsItem, locale string, width, height int) NewsView {
	tr := n.Translations[locale]
	img := n.Image
	if img == "" {
		img = placeholderImage(n.ID, width, height)
	}
	return NewsView{
		ID:      n.ID,
		Date:    n.Date,
		Title:   tr.Title,
		Excerpt: tr.Excerpt,
		Body:    tr.Body,
		Image:   img,
	}
}

// placeholderImage returns a stable placeholder URL seeded by record ID so
// the same item always renders the same image.
func placeholderImage(id, width, height int) string {
	return fmt.Sprintf("https://picsum.photos/seed/news-%d/%d/%d", id, width, height)
}

func sortByDateDesc[T any](items []T, date func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]) > date(items[j])
	})
}
