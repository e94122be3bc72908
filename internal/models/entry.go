package models

import "time"

// Entry is one syndicated feed item after parsing. Optional text attributes are
// empty strings when the feed did not carry them; Published and Location are nil
// in the same case.
type Entry struct {
	Title       string
	Author      string
	Description string
	Link        string
	Source      string
	Published   *time.Time
	Categories  []string
	Enclosures  []Enclosure
	Location    *GeoPoint
}

// Enclosure is a media attachment referenced by a feed entry.
type Enclosure struct {
	URL    string
	Type   string
	Length int64
}

// GeoPoint is a latitude/longitude pair from a GeoRSS extension.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Document is the field-name to value form an entry takes before indexing.
// Optional scalar fields are present with a nil value when absent; collection
// and location fields are omitted entirely when empty.
type Document map[string]any
