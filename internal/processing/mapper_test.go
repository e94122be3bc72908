package processing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmatveev/rss-indexer/internal/models"
	"github.com/kmatveev/rss-indexer/internal/processing"
)

func TestMapEntryFullEntry(t *testing.T) {
	entry := models.Entry{
		Title:       "Breaking News",
		Author:      "J. Doe",
		Description: "Full story",
		Link:        "http://x/1",
		Categories:  []string{"world", "politics"},
		Enclosures: []models.Enclosure{
			{URL: "http://x/1.mp3", Type: "audio/mpeg", Length: 12345},
		},
	}

	doc := processing.MapEntry(entry, "news-feed", "")

	require.Equal(t, "news-feed", doc[models.FieldFeedName])
	require.Equal(t, "Breaking News", doc[models.FieldTitle])
	require.Equal(t, "J. Doe", doc[models.FieldAuthor])
	require.Equal(t, "Full story", doc[models.FieldDescription])
	require.Equal(t, "http://x/1", doc[models.FieldLink])
	require.Equal(t, []string{"world", "politics"}, doc[models.FieldCategories])

	enclosures, ok := doc[models.FieldEnclosures].([]models.Document)
	require.True(t, ok)
	require.Len(t, enclosures, 1)
	require.Equal(t, "http://x/1.mp3", enclosures[0][models.FieldEnclosureURL])
	require.Equal(t, "audio/mpeg", enclosures[0][models.FieldEnclosureType])
	require.Equal(t, int64(12345), enclosures[0][models.FieldEnclosureLength])

	require.NotContains(t, doc, models.FieldLocation)
	require.NotContains(t, doc, models.FieldRiver)
}

func TestMapEntryAbsentScalarsAreNull(t *testing.T) {
	doc := processing.MapEntry(models.Entry{}, "empty-feed", "")

	require.Equal(t, "empty-feed", doc[models.FieldFeedName])

	for _, field := range []string{
		models.FieldTitle,
		models.FieldAuthor,
		models.FieldDescription,
		models.FieldLink,
		models.FieldPublishedDate,
		models.FieldSource,
	} {
		require.Contains(t, doc, field)
		require.Nil(t, doc[field], "field %s should be null", field)
	}
}

func TestMapEntryOmitsEmptyCollections(t *testing.T) {
	tests := []struct {
		name  string
		entry models.Entry
	}{
		{name: "nil collections", entry: models.Entry{}},
		{name: "empty collections", entry: models.Entry{
			Categories: []string{},
			Enclosures: []models.Enclosure{},
		}},
		{name: "only unrecognizable elements", entry: models.Entry{
			Categories: []string{""},
			Enclosures: []models.Enclosure{{Type: "audio/mpeg"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := processing.MapEntry(tt.entry, "feed", "")
			require.NotContains(t, doc, models.FieldCategories)
			require.NotContains(t, doc, models.FieldEnclosures)
		})
	}
}

func TestMapEntrySkipsMalformedElementsKeepingOrder(t *testing.T) {
	entry := models.Entry{
		Categories: []string{"world", "", "politics"},
		Enclosures: []models.Enclosure{
			{URL: "http://x/a.mp3", Type: "audio/mpeg", Length: 1},
			{Type: "audio/mpeg"}, // no URL, dropped
			{URL: "http://x/b.mp3", Type: "audio/mpeg", Length: 2},
		},
	}

	doc := processing.MapEntry(entry, "feed", "")

	require.Equal(t, []string{"world", "politics"}, doc[models.FieldCategories])

	enclosures := doc[models.FieldEnclosures].([]models.Document)
	require.Len(t, enclosures, 2)
	require.Equal(t, "http://x/a.mp3", enclosures[0][models.FieldEnclosureURL])
	require.Equal(t, "http://x/b.mp3", enclosures[1][models.FieldEnclosureURL])
}

func TestMapEntryLocation(t *testing.T) {
	entry := models.Entry{
		Location: &models.GeoPoint{Lat: 48.8, Lon: 2.3},
	}

	doc := processing.MapEntry(entry, "feed", "")

	location, ok := doc[models.FieldLocation].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 48.8, location[models.FieldLat])
	require.Equal(t, 2.3, location[models.FieldLon])

	require.NotContains(t, processing.MapEntry(models.Entry{}, "feed", ""), models.FieldLocation)
}

func TestMapEntryRiverTag(t *testing.T) {
	require.NotContains(t, processing.MapEntry(models.Entry{}, "feed", ""), models.FieldRiver)

	doc := processing.MapEntry(models.Entry{}, "feed", "feeds-main")
	require.Equal(t, "feeds-main", doc[models.FieldRiver])
}

func TestMapEntryPublishedDateUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	published := time.Date(2024, 2, 3, 10, 30, 0, 0, paris)
	entry := models.Entry{Published: &published}

	doc := processing.MapEntry(entry, "feed", "")

	got, ok := doc[models.FieldPublishedDate].(time.Time)
	require.True(t, ok)
	require.Equal(t, time.UTC, got.Location())
	require.True(t, got.Equal(published))
}

func TestEntryID(t *testing.T) {
	id1 := processing.EntryID("feed", "http://x/1", "Breaking News")
	id2 := processing.EntryID("feed", "http://x/1", "Breaking News")
	require.NotEmpty(t, id1)
	require.Equal(t, id1, id2)

	require.NotEqual(t, id1, processing.EntryID("other-feed", "http://x/1", "Breaking News"))
	require.Empty(t, processing.EntryID("feed", "", ""))
}
