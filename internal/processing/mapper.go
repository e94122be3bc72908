package processing

import (
	"time"

	"github.com/kmatveev/rss-indexer/internal/models"
)

// MapEntry converts one parsed feed entry into its indexable document form.
// Scalar fields missing from the feed come out as explicit nulls; location,
// categories and enclosures are omitted entirely when the entry has none.
// The river run tag is only emitted when non-empty.
func MapEntry(entry models.Entry, feedName, river string) models.Document {
	doc := models.Document{
		models.FieldFeedName:      feedName,
		models.FieldTitle:         textOrNil(entry.Title),
		models.FieldAuthor:        textOrNil(entry.Author),
		models.FieldDescription:   textOrNil(entry.Description),
		models.FieldLink:          textOrNil(entry.Link),
		models.FieldPublishedDate: publishedOrNil(entry.Published),
		models.FieldSource:        textOrNil(entry.Source),
	}

	if entry.Location != nil {
		doc[models.FieldLocation] = map[string]any{
			models.FieldLat: entry.Location.Lat,
			models.FieldLon: entry.Location.Lon,
		}
	}

	if categories := mapCategories(entry.Categories); len(categories) > 0 {
		doc[models.FieldCategories] = categories
	}

	if enclosures := mapEnclosures(entry.Enclosures); len(enclosures) > 0 {
		doc[models.FieldEnclosures] = enclosures
	}

	if river != "" {
		doc[models.FieldRiver] = river
	}

	return doc
}

// mapCategories keeps source order and skips elements without a name.
func mapCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	out := make([]string, 0, len(categories))
	for _, name := range categories {
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// mapEnclosures keeps source order and skips elements without a URL.
func mapEnclosures(enclosures []models.Enclosure) []models.Document {
	if len(enclosures) == 0 {
		return nil
	}
	out := make([]models.Document, 0, len(enclosures))
	for _, enc := range enclosures {
		if enc.URL == "" {
			continue
		}
		out = append(out, models.Document{
			models.FieldEnclosureURL:    enc.URL,
			models.FieldEnclosureType:   textOrNil(enc.Type),
			models.FieldEnclosureLength: enc.Length,
		})
	}
	return out
}

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// publishedOrNil normalizes timestamps to UTC so every indexed date is an
// unambiguous instant.
func publishedOrNil(ts *time.Time) any {
	if ts == nil {
		return nil
	}
	return ts.UTC()
}
