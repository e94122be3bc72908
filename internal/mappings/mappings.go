package mappings

import "github.com/kmatveev/rss-indexer/internal/models"

// Build returns the index mapping for feed entry documents, keyed by document
// type. Free-text fields (title, author, description, source) are analyzed;
// opaque identifiers (feedname, categories, enclosure type) are keywords; link
// and enclosure url/length are stored but never queried, so they stay
// unindexed. The river tag is intentionally left to dynamic mapping.
func Build(docType string) map[string]any {
	return map[string]any{
		docType: map[string]any{
			"properties": map[string]any{
				models.FieldFeedName:      notAnalyzedString(),
				models.FieldTitle:         analyzedString(),
				models.FieldAuthor:        analyzedString(),
				models.FieldDescription:   analyzedString(),
				models.FieldLink:          notIndexedString(),
				models.FieldSource:        analyzedString(),
				models.FieldPublishedDate: storedDate(),
				models.FieldLocation:      geoPoint(),
				models.FieldCategories:    notAnalyzedString(),
				models.FieldEnclosures: map[string]any{
					"properties": map[string]any{
						models.FieldEnclosureURL:    notIndexedString(),
						models.FieldEnclosureType:   notAnalyzedString(),
						models.FieldEnclosureLength: notIndexedLong(),
					},
				},
			},
		},
	}
}

// Properties extracts the properties block for docType, in the shape the
// Elasticsearch create-index API expects under "mappings".
func Properties(mapping map[string]any, docType string) (map[string]any, bool) {
	typed, ok := mapping[docType].(map[string]any)
	if !ok {
		return nil, false
	}
	props, ok := typed["properties"].(map[string]any)
	return props, ok
}

func analyzedString() map[string]any {
	return map[string]any{
		"type": "text",
	}
}

func notAnalyzedString() map[string]any {
	return map[string]any{
		"type": "keyword",
	}
}

func notIndexedString() map[string]any {
	return map[string]any{
		"type":  "keyword",
		"index": false,
	}
}

func notIndexedLong() map[string]any {
	return map[string]any{
		"type":  "long",
		"index": false,
	}
}

// storedDate accepts date-only and full datetime values; stored so range
// queries and source-less fetches both work.
func storedDate() map[string]any {
	return map[string]any{
		"type":   "date",
		"format": "date_optional_time",
		"store":  true,
	}
}

func geoPoint() map[string]any {
	return map[string]any{
		"type": "geo_point",
	}
}
