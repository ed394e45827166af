// Package wrongbook maintains the deduplicated log of missed items.
package wrongbook

import (
	"strings"
	"time"

	"github.com/echotype/echotype/internal/model"
)

// Upsert adds a missed item to the book. Entries are keyed by
// case-insensitive text: a repeat miss only bumps ReviewCount; the first
// occurrence's meaning, answer, and timestamp are kept until removal.
func Upsert(entries []model.WrongWordEntry, text, meaning, userAnswer string, now time.Time) []model.WrongWordEntry {
	text = strings.TrimSpace(text)
	if text == "" {
		return entries
	}
	for i := range entries {
		if strings.EqualFold(entries[i].Text, text) {
			entries[i].ReviewCount++
			return entries
		}
	}
	return append(entries, model.WrongWordEntry{
		Text:       text,
		Meaning:    meaning,
		UserAnswer: userAnswer,
		AddedAt:    now,
	})
}

// Remove deletes the entry matching text case-insensitively. Missing
// entries are a no-op.
func Remove(entries []model.WrongWordEntry, text string) []model.WrongWordEntry {
	out := entries[:0]
	for _, e := range entries {
		if strings.EqualFold(e.Text, strings.TrimSpace(text)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Find returns the entry for text, case-insensitive.
func Find(entries []model.WrongWordEntry, text string) (model.WrongWordEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Text, strings.TrimSpace(text)) {
			return e, true
		}
	}
	return model.WrongWordEntry{}, false
}
