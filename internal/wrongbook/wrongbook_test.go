package wrongbook

import (
	"testing"
	"time"

	"github.com/echotype/echotype/internal/model"
)

func TestUpsertDeduplicatesCaseInsensitive(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	entries := Upsert(nil, "Apple", "苹果", "aple", now)
	entries = Upsert(entries, "apple", "fruit", "appel", now.Add(time.Hour))

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after duplicate upsert, got %d", len(entries))
	}
	e := entries[0]
	if e.Text != "Apple" {
		t.Fatalf("first occurrence text should be kept, got %q", e.Text)
	}
	if e.Meaning != "苹果" {
		t.Fatalf("first occurrence meaning should be kept, got %q", e.Meaning)
	}
	if e.UserAnswer != "aple" {
		t.Fatalf("first occurrence answer should be kept, got %q", e.UserAnswer)
	}
	if e.ReviewCount != 1 {
		t.Fatalf("repeat miss should bump review count, got %d", e.ReviewCount)
	}
	if !e.AddedAt.Equal(now) {
		t.Fatalf("original timestamp should be kept")
	}
}

func TestUpsertSkipsEmptyText(t *testing.T) {
	entries := Upsert(nil, "   ", "", "x", time.Now())
	if len(entries) != 0 {
		t.Fatalf("empty text must not be added")
	}
}

func TestRemove(t *testing.T) {
	now := time.Now()
	entries := Upsert(nil, "alpha", "", "a", now)
	entries = Upsert(entries, "beta", "", "b", now)

	entries = Remove(entries, "ALPHA")
	if len(entries) != 1 || entries[0].Text != "beta" {
		t.Fatalf("remove should match case-insensitively: %+v", entries)
	}
	entries = Remove(entries, "missing")
	if len(entries) != 1 {
		t.Fatalf("removing a missing entry should be a no-op")
	}
}

func TestFind(t *testing.T) {
	entries := []model.WrongWordEntry{{Text: "Gamma"}}
	if _, ok := Find(entries, "gamma"); !ok {
		t.Fatalf("find should match case-insensitively")
	}
	if _, ok := Find(entries, "delta"); ok {
		t.Fatalf("find should miss unknown text")
	}
}
