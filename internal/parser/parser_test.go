package parser

import (
	"testing"

	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/rss-indexer/internal/models"
)

func extensionValues(values ...string) []ext.Extension {
	out := make([]ext.Extension, 0, len(values))
	for _, v := range values {
		out = append(out, ext.Extension{Value: v})
	}
	return out
}

func extensionsWith(prefix, name, value string) ext.Extensions {
	return ext.Extensions{prefix: map[string][]ext.Extension{name: extensionValues(value)}}
}

const rssWithExtras = `<?xml version="1.0"?>
<rss version="2.0" xmlns:georss="http://www.georss.org/georss" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Le Monde Une</title>
    <link>https://example.com</link>
    <description>Front page</description>
    <item>
      <title>Breaking News</title>
      <link>http://x/1</link>
      <description>Full story</description>
      <dc:creator>J. Doe</dc:creator>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <category>world</category>
      <category>politics</category>
      <enclosure url="http://x/1.mp3" length="12345" type="audio/mpeg"/>
      <georss:point>48.8 2.3</georss:point>
    </item>
    <item>
      <title>Bare Item</title>
      <link>http://x/2</link>
    </item>
  </channel>
</rss>`

func TestParseRSS(t *testing.T) {
	entries, err := New().Parse([]byte(rssWithExtras))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entry := entries[0]
	require.Equal(t, "Breaking News", entry.Title)
	require.Equal(t, "Full story", entry.Description)
	require.Equal(t, "http://x/1", entry.Link)
	require.Equal(t, "J. Doe", entry.Author)
	require.Equal(t, "Le Monde Une", entry.Source)
	require.NotNil(t, entry.Published)
	require.Equal(t, 2023, entry.Published.Year())

	require.Equal(t, []string{"world", "politics"}, entry.Categories)

	require.Len(t, entry.Enclosures, 1)
	require.Equal(t, models.Enclosure{URL: "http://x/1.mp3", Type: "audio/mpeg", Length: 12345}, entry.Enclosures[0])

	require.NotNil(t, entry.Location)
	require.Equal(t, 48.8, entry.Location.Lat)
	require.Equal(t, 2.3, entry.Location.Lon)

	bare := entries[1]
	require.Equal(t, "Bare Item", bare.Title)
	require.Empty(t, bare.Author)
	require.Nil(t, bare.Published)
	require.Nil(t, bare.Location)
	require.Empty(t, bare.Categories)
	require.Empty(t, bare.Enclosures)
}

func TestParseInvalidPayload(t *testing.T) {
	_, err := New().Parse([]byte("not a feed"))
	require.Error(t, err)
}

func TestExtractLocationGeoRSSPoint(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *models.GeoPoint
	}{
		{name: "valid", value: "48.8 2.3", want: &models.GeoPoint{Lat: 48.8, Lon: 2.3}},
		{name: "missing lon", value: "48.8", want: nil},
		{name: "not numeric", value: "here there", want: nil},
		{name: "empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractLocation(extensionsWith("georss", "point", tt.value))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractLocationW3CGeo(t *testing.T) {
	exts := extensionsWith("geo", "lat", "48.8")
	exts["geo"]["long"] = extensionValues("2.3")

	got := extractLocation(exts)
	require.Equal(t, &models.GeoPoint{Lat: 48.8, Lon: 2.3}, got)

	// lat without long is not a position
	require.Nil(t, extractLocation(extensionsWith("geo", "lat", "48.8")))

	require.Nil(t, extractLocation(nil))
}

func TestParseLength(t *testing.T) {
	require.Equal(t, int64(12345), parseLength("12345"))
	require.Equal(t, int64(0), parseLength(""))
	require.Equal(t, int64(0), parseLength("None"))
	require.Equal(t, int64(0), parseLength(" "))
}
