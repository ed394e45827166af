package session

import (
	"testing"

	"github.com/echotype/echotype/internal/model"
)

func TestToggleIdempotent(t *testing.T) {
	sel := NewSelection(5)
	if err := sel.Toggle(model.KindWord, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !sel.Selected(model.KindWord, 1) {
		t.Fatalf("index 1 should be selected")
	}
	if err := sel.Toggle(model.KindWord, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if sel.Selected(model.KindWord, 1) {
		t.Fatalf("second toggle should deselect")
	}
}

func TestCapRejectsOverflow(t *testing.T) {
	sel := NewSelection(2)
	if err := sel.Toggle(model.KindWord, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sel.Toggle(model.KindWord, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sel.Toggle(model.KindWord, 2); err == nil {
		t.Fatalf("expected cap rejection")
	}
	if sel.Count(model.KindWord) != 2 {
		t.Fatalf("rejected toggle must not change selection, count %d", sel.Count(model.KindWord))
	}
	// Deselect then reselect under the cap.
	if err := sel.Toggle(model.KindWord, 0); err != nil {
		t.Fatalf("deselect: %v", err)
	}
	if err := sel.Toggle(model.KindWord, 2); err != nil {
		t.Fatalf("reselect under cap: %v", err)
	}
}

func TestCapsPerKind(t *testing.T) {
	sel := NewSelection(1)
	if err := sel.Toggle(model.KindWord, 0); err != nil {
		t.Fatalf("toggle word: %v", err)
	}
	if err := sel.Toggle(model.KindSentence, 0); err != nil {
		t.Fatalf("sentence cap should be independent: %v", err)
	}
}

func TestPickKeepsCandidateOrder(t *testing.T) {
	candidates := []model.ContentItem{
		{Kind: model.KindWord, Text: "alpha"},
		{Kind: model.KindWord, Text: "beta", Meaning: "second"},
		{Kind: model.KindWord, Text: "gamma"},
	}
	sel := NewSelection(5)
	for _, i := range []int{2, 0} {
		if err := sel.Toggle(model.KindWord, i); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	picked := sel.Pick(model.KindWord, candidates)
	if len(picked) != 2 {
		t.Fatalf("expected 2 picked, got %d", len(picked))
	}
	if picked[0].Text != "alpha" || picked[1].Text != "gamma" {
		t.Fatalf("pick should follow candidate order: %+v", picked)
	}
}

func TestPickSkipsStaleIndices(t *testing.T) {
	candidates := []model.ContentItem{{Kind: model.KindWord, Text: "only"}}
	sel := NewSelection(5)
	if err := sel.Toggle(model.KindWord, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sel.Toggle(model.KindWord, 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	picked := sel.Pick(model.KindWord, candidates)
	if len(picked) != 1 || picked[0].Text != "only" {
		t.Fatalf("stale index should be skipped: %+v", picked)
	}
}
