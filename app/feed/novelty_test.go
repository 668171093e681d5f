package feed

import (
	"testing"
	"time"
)

func TestIsNewDatedCandidate(t *testing.T) {
	watermark := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	after := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	before := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	if !IsNew(Candidate{Title: "A", PublishedAt: &after}, watermark, nil) {
		t.Error("Candidate dated after the watermark should be new")
	}
	if IsNew(Candidate{Title: "B", PublishedAt: &before}, watermark, nil) {
		t.Error("Candidate dated before the watermark should not be new")
	}
	if IsNew(Candidate{Title: "C", PublishedAt: &watermark}, watermark, nil) {
		t.Error("Candidate dated exactly at the watermark should not be new")
	}
}

func TestIsNewDatedCandidateIgnoresTitles(t *testing.T) {
	// The timestamp rule wins even when the title is already stored.
	watermark := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	existing := TitleSet([]string{"Known Title"})
	if !IsNew(Candidate{Title: "Known Title", PublishedAt: &after}, watermark, existing) {
		t.Error("Dated candidate should be classified by timestamp, not title")
	}
}

func TestIsNewUndatedCandidateFallsBackToTitle(t *testing.T) {
	watermark := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := TitleSet([]string{"Known Title"})

	if IsNew(Candidate{Title: "Known Title"}, watermark, existing) {
		t.Error("Undated candidate with a stored title should not be new")
	}
	if !IsNew(Candidate{Title: "Fresh Title"}, watermark, existing) {
		t.Error("Undated candidate with an unknown title should be new")
	}
}

func TestIsNewTitleMatchIsCaseSensitive(t *testing.T) {
	existing := TitleSet([]string{"Known Title"})

	if !IsNew(Candidate{Title: "known title"}, time.Time{}, existing) {
		t.Error("Title comparison should be a case-sensitive literal match")
	}
}

func TestIsNewUnidentifiableCandidate(t *testing.T) {
	// No timestamp and no title: assume unseen rather than silently drop.
	existing := TitleSet([]string{"Known Title"})

	if !IsNew(Candidate{}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), existing) {
		t.Error("Candidate with no timestamp and no title should be new")
	}
}

func TestTitleSet(t *testing.T) {
	set := TitleSet([]string{"A", "B"})
	if !set["A"] || !set["B"] {
		t.Error("Expected both titles in set")
	}
	if set["C"] {
		t.Error("Unexpected title in set")
	}
}
