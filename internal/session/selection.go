package session

import (
	"fmt"

	"github.com/echotype/echotype/internal/model"
)

// Selection tracks which candidate indices are chosen per content kind,
// bounded by a cap. Overflowing the cap is rejected, never evicted.
type Selection struct {
	limit  int
	chosen map[model.ContentKind]map[int]struct{}
}

// NewSelection creates an empty selection with the given per-kind cap.
func NewSelection(limit int) *Selection {
	return &Selection{
		limit:  limit,
		chosen: map[model.ContentKind]map[int]struct{}{},
	}
}

// SetCap updates the per-kind cap. Existing selections are kept even if
// they exceed the new cap; only further additions are bounded.
func (sel *Selection) SetCap(limit int) {
	sel.limit = limit
}

// Cap returns the per-kind cap.
func (sel *Selection) Cap() int {
	return sel.limit
}

// Toggle flips membership of index for a kind. Selecting beyond the cap
// returns an error and leaves the selection unchanged; deselecting always
// succeeds.
func (sel *Selection) Toggle(kind model.ContentKind, index int) error {
	set, ok := sel.chosen[kind]
	if !ok {
		set = map[int]struct{}{}
		sel.chosen[kind] = set
	}
	if _, selected := set[index]; selected {
		delete(set, index)
		return nil
	}
	if sel.limit > 0 && len(set) >= sel.limit {
		return fmt.Errorf("selection limit reached (%d)", sel.limit)
	}
	set[index] = struct{}{}
	return nil
}

// Selected reports whether an index is chosen for a kind.
func (sel *Selection) Selected(kind model.ContentKind, index int) bool {
	_, ok := sel.chosen[kind][index]
	return ok
}

// Count returns how many indices are chosen for a kind.
func (sel *Selection) Count(kind model.ContentKind) int {
	return len(sel.chosen[kind])
}

// Clear drops all selections for a kind.
func (sel *Selection) Clear(kind model.ContentKind) {
	delete(sel.chosen, kind)
}

// Pick returns the chosen items from candidates, in candidate order.
// Indices that no longer exist (after edits/deletes) are skipped.
func (sel *Selection) Pick(kind model.ContentKind, candidates []model.ContentItem) []model.QuizItem {
	var out []model.QuizItem
	for i, c := range candidates {
		if !sel.Selected(kind, i) {
			continue
		}
		out = append(out, model.QuizItem{
			Kind:     c.Kind,
			Text:     c.Text,
			Phonetic: c.Phonetic,
			Meaning:  c.Meaning,
		})
	}
	return out
}
