package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/kmatveev/rss-indexer/internal/models"
)

// Parser turns raw RSS/Atom payloads into typed feed entries.
type Parser struct {
	gofeedParser *gofeed.Parser
}

// New creates a feed parser.
func New() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Parse parses raw feed data and returns its entries. The feed-level title is
// carried into each entry as the source label, since the generic item model
// does not surface the RSS <source> element.
func (p *Parser) Parse(data []byte) ([]models.Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]models.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, p.normalizeItem(item, feed.Title))
	}
	return entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, source string) models.Entry {
	entry := models.Entry{
		Title:       item.Title,
		Description: item.Description,
		Link:        item.Link,
		Source:      source,
		Published:   item.PublishedParsed,
		Categories:  item.Categories,
		Location:    extractLocation(item.Extensions),
	}

	if item.Author != nil {
		entry.Author = item.Author.Name
	}
	if entry.Author == "" && len(item.Authors) > 0 && item.Authors[0] != nil {
		entry.Author = item.Authors[0].Name
	}

	if len(item.Enclosures) > 0 {
		entry.Enclosures = make([]models.Enclosure, 0, len(item.Enclosures))
		for _, enc := range item.Enclosures {
			if enc == nil {
				continue
			}
			entry.Enclosures = append(entry.Enclosures, models.Enclosure{
				URL:    enc.URL,
				Type:   enc.Type,
				Length: parseLength(enc.Length),
			})
		}
	}

	return entry
}

// extractLocation reads a position from the GeoRSS-Simple ("georss:point") or
// W3C geo ("geo:lat"/"geo:long") extension. Malformed coordinates yield no
// location rather than an error.
func extractLocation(extensions ext.Extensions) *models.GeoPoint {
	if len(extensions) == 0 {
		return nil
	}

	if georss, ok := extensions["georss"]; ok {
		if points := georss["point"]; len(points) > 0 {
			fields := strings.Fields(points[0].Value)
			if len(fields) != 2 {
				return nil
			}
			lat, latErr := strconv.ParseFloat(fields[0], 64)
			lon, lonErr := strconv.ParseFloat(fields[1], 64)
			if latErr != nil || lonErr != nil {
				return nil
			}
			return &models.GeoPoint{Lat: lat, Lon: lon}
		}
	}

	if geo, ok := extensions["geo"]; ok {
		lats := geo["lat"]
		lons := geo["long"]
		if len(lats) == 0 || len(lons) == 0 {
			return nil
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(lats[0].Value), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lons[0].Value), 64)
		if latErr != nil || lonErr != nil {
			return nil
		}
		return &models.GeoPoint{Lat: lat, Lon: lon}
	}

	return nil
}

// parseLength tolerates the empty and non-numeric lengths real feeds publish.
func parseLength(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	length, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return length
}
