package feed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses raw feed bytes into document metadata and one candidate per entry,
// in document order.
func (p *Parser) Run(data []byte) (*Metadata, []Candidate, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		PublishedAt: feedPublishedAt(feed),
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		candidates = append(candidates, p.normalizeItem(item))
	}

	return metadata, candidates, nil
}

// feedPublishedAt resolves the document's reported freshness: pubDate, then
// lastBuildDate (gofeed maps it to Updated), then the Dublin Core date.
func feedPublishedAt(feed *gofeed.Feed) *time.Time {
	if ts := ParseDate(feed.Published); ts != nil {
		return ts
	}
	if ts := ParseDate(feed.Updated); ts != nil {
		return ts
	}
	return dublinCoreDate(feed.DublinCoreExt)
}

func (p *Parser) normalizeItem(item *gofeed.Item) Candidate {
	candidate := Candidate{
		Link:        item.Link,
		Title:       item.Title,
		Content:     item.Content,
		Description: item.Description,
	}

	// gofeed's universal model has no RSS <source>, so the secondary links
	// are the fallback for entries without a primary link
	if candidate.Link == "" {
		for _, link := range item.Links {
			if link != "" {
				candidate.Link = link
				break
			}
		}
	}

	if ts := ParseDate(item.Published); ts != nil {
		candidate.PublishedAt = ts
	} else {
		candidate.PublishedAt = dublinCoreDate(item.DublinCoreExt)
	}

	// RSS 2.0 allows only one enclosure per item
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		candidate.EnclosureURL = item.Enclosures[0].URL
		candidate.EnclosureType = item.Enclosures[0].Type
	}

	return candidate
}

func dublinCoreDate(dc *ext.DublinCoreExtension) *time.Time {
	if dc == nil {
		return nil
	}
	for _, raw := range dc.Date {
		if ts := ParseDate(raw); ts != nil {
			return ts
		}
	}
	return nil
}
