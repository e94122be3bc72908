package models

// Document field names shared by the entry mapper and the index mapping builder.
// Both sides must use these constants so the mapping always covers every field
// the mapper can emit.
const (
	FieldFeedName      = "feedname"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldDescription   = "description"
	FieldLink          = "link"
	FieldPublishedDate = "publishedDate"
	FieldSource        = "source"
	FieldLocation      = "location"
	FieldCategories    = "categories"
	FieldEnclosures    = "enclosures"

	// FieldRiver tags a document with the ingestion run that produced it. It is
	// deliberately absent from the static mapping and relies on dynamic mapping.
	FieldRiver = "river"
)

// Sub-object field names.
const (
	FieldLat = "lat"
	FieldLon = "lon"

	FieldEnclosureURL    = "url"
	FieldEnclosureType   = "type"
	FieldEnclosureLength = "length"
)

// MappedFields lists every top-level field the mapper can emit, excluding the
// run-specific river tag.
func MappedFields() []string {
	return []string{
		FieldFeedName,
		FieldTitle,
		FieldAuthor,
		FieldDescription,
		FieldLink,
		FieldPublishedDate,
		FieldSource,
		FieldLocation,
		FieldCategories,
		FieldEnclosures,
	}
}
