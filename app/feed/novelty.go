package feed

import (
	"time"
)

// IsNew decides whether a candidate has not previously been merged for its
// feed. First applicable rule wins:
//
//  1. A dated candidate is new iff its timestamp is strictly after the feed's
//     watermark.
//  2. An undated candidate with a title is new iff no stored article carries
//     that exact title.
//  3. An undated, untitled candidate is new: an unidentifiable entry is
//     assumed unseen rather than silently dropped.
//
// The title snapshot is taken once per sync, so two new entries sharing a
// title in the same pass are both classified new; the store's natural-key
// constraint is the second net behind this check.
func IsNew(c Candidate, watermark time.Time, existingTitles map[string]bool) bool {
	if c.PublishedAt != nil {
		return c.PublishedAt.After(watermark)
	}

	if c.Title != "" {
		return !existingTitles[c.Title]
	}

	return true
}

// TitleSet builds the lookup set for the title-fallback rule.
func TitleSet(titles []string) map[string]bool {
	set := make(map[string]bool, len(titles))
	for _, title := range titles {
		set[title] = true
	}
	return set
}
