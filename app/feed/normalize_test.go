package feed

import (
	"strings"
	"testing"
	"time"
)

func TestCandidateArticleFields(t *testing.T) {
	published := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fallback := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	candidate := Candidate{
		Link:        "https://example.com/post",
		Title:       "A Post",
		Content:     "<p>Body</p>",
		Description: "Summary",
		PublishedAt: &published,
	}

	article := candidate.Article(7, fallback)

	if article.FeedID != 7 {
		t.Errorf("Expected feed id 7, got: %d", article.FeedID)
	}
	if article.URL == nil || *article.URL != "https://example.com/post" {
		t.Errorf("Unexpected article URL: %v", article.URL)
	}
	if article.Title != "A Post" {
		t.Errorf("Unexpected title: %s", article.Title)
	}
	if article.Content != "<p>Body</p>" {
		t.Errorf("Content field should win over description, got: %s", article.Content)
	}
	if !article.PubDate.Equal(published) {
		t.Errorf("Expected pub date %v, got: %v", published, article.PubDate)
	}
	if article.Read {
		t.Error("Newly normalized articles must be unread")
	}
}

func TestCandidateArticlePlaceholders(t *testing.T) {
	fallback := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	article := Candidate{}.Article(1, fallback)

	if article.URL != nil {
		t.Errorf("Expected nil URL for link-less entry, got: %v", article.URL)
	}
	if article.Title != UntitledPost {
		t.Errorf("Expected title placeholder, got: %s", article.Title)
	}
	if article.Content != NoContent {
		t.Errorf("Expected content placeholder, got: %s", article.Content)
	}
	if !article.PubDate.Equal(fallback) {
		t.Errorf("Expected fallback pub date %v, got: %v", fallback, article.PubDate)
	}
}

func TestCandidateArticleDescriptionFallback(t *testing.T) {
	article := Candidate{Description: "Summary only"}.Article(1, time.Now())
	if article.Content != "Summary only" {
		t.Errorf("Expected description fallback, got: %s", article.Content)
	}
}

func TestCandidateArticleEnclosureMarkup(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"audio/mpeg", `<audio controls src="https://example.com/media"></audio>`},
		{"video/mp4", `<video controls src="https://example.com/media"></video>`},
		{"image/png", `<img src="https://example.com/media">`},
	}

	for _, tc := range cases {
		candidate := Candidate{
			Content:       "<p>Body</p>",
			EnclosureURL:  "https://example.com/media",
			EnclosureType: tc.mime,
		}

		article := candidate.Article(1, time.Now())

		if !strings.HasPrefix(article.Content, tc.want) {
			t.Errorf("Expected %s markup prepended, got: %s", tc.mime, article.Content)
		}
		if !strings.HasSuffix(article.Content, "<p>Body</p>") {
			t.Errorf("Expected original body preserved, got: %s", article.Content)
		}
	}
}

func TestCandidateArticleUnknownEnclosureType(t *testing.T) {
	candidate := Candidate{
		Content:       "<p>Body</p>",
		EnclosureURL:  "https://example.com/file.bin",
		EnclosureType: "application/octet-stream",
	}

	article := candidate.Article(1, time.Now())

	if article.Content != "<p>Body</p>" {
		t.Errorf("Non-media enclosures should not produce markup, got: %s", article.Content)
	}
}
