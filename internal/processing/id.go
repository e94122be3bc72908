package processing

import (
	"crypto/sha1"
	"encoding/hex"
)

// EntryID hashes the most stable entry fields to form deterministic document
// IDs, so re-delivered payloads overwrite instead of duplicating. Returns an
// empty string when the entry carries nothing stable to hash.
func EntryID(feedName, link, title string) string {
	if link == "" && title == "" {
		return ""
	}
	s := sha1.Sum([]byte(feedName + "|" + link + "|" + title))
	return hex.EncodeToString(s[:])
}
