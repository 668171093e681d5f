package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subscriptions.yml")

	data := `feeds:
  - https://example.com/rss
  - blog.example.org/feed.xml
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}

	subs, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(subs.Feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got: %d", len(subs.Feeds))
	}
	if subs.Feeds[0] != "https://example.com/rss" {
		t.Errorf("Unexpected first feed: %s", subs.Feeds[0])
	}
	if subs.Feeds[1] != "blog.example.org/feed.xml" {
		t.Errorf("Unexpected second feed: %s", subs.Feeds[1])
	}
}

func TestLoadMissingSeedFile(t *testing.T) {
	subs, err := NewLoader("/nonexistent/subscriptions.yml").Load()
	if err != nil {
		t.Fatalf("Missing seed file should not be an error, got: %v", err)
	}
	if len(subs.Feeds) != 0 {
		t.Errorf("Expected no feeds, got: %d", len(subs.Feeds))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	subs, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Empty path should not be an error, got: %v", err)
	}
	if len(subs.Feeds) != 0 {
		t.Errorf("Expected no feeds, got: %d", len(subs.Feeds))
	}
}

func TestLoadRejectsBlankEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subscriptions.yml")

	data := `feeds:
  - https://example.com/rss
  - ""
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Expected error for blank feed entry")
	}
}
