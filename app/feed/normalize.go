package feed

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"feedstash/app/database"
)

// Article maps the candidate onto an unsaved article owned by feedID. The
// fallback timestamp (typically the fetch time) is used when the entry carried
// no parsable date. Pure mapping, no side effects.
func (c Candidate) Article(feedID int64, fallback time.Time) database.Article {
	article := database.Article{
		FeedID:  feedID,
		Title:   cmp.Or(c.Title, UntitledPost),
		Content: c.body(),
		PubDate: fallback.UTC(),
		Read:    false,
	}

	if c.PublishedAt != nil {
		article.PubDate = c.PublishedAt.UTC()
	}

	if c.Link != "" {
		link := c.Link
		article.URL = &link
	}

	return article
}

func (c Candidate) body() string {
	body := cmp.Or(c.Content, c.Description, NoContent)
	if markup := c.enclosureMarkup(); markup != "" {
		return markup + body
	}
	return body
}

// enclosureMarkup renders an attached media enclosure as a minimal embeddable
// tag so it survives as part of the stored content.
func (c Candidate) enclosureMarkup() string {
	if c.EnclosureURL == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(c.EnclosureType, "audio/"):
		return fmt.Sprintf("<audio controls src=%q></audio>", c.EnclosureURL)
	case strings.HasPrefix(c.EnclosureType, "video/"):
		return fmt.Sprintf("<video controls src=%q></video>", c.EnclosureURL)
	case strings.HasPrefix(c.EnclosureType, "image/"):
		return fmt.Sprintf("<img src=%q>", c.EnclosureURL)
	}

	return ""
}
