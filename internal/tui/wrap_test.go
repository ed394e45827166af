package tui

import (
	"strings"
	"testing"
)

func TestWrapTextRespectsWidth(t *testing.T) {
	got := wrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 15 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected wrapping: %q", got)
	}
}

func TestWrapTextZeroWidthPassthrough(t *testing.T) {
	text := "unchanged text"
	if got := wrapText(text, 0); got != text {
		t.Fatalf("zero width should pass through, got %q", got)
	}
}

func TestWrapTextLongWordSplits(t *testing.T) {
	got := wrapText("antidisestablishmentarianism", 10)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Fatalf("long word should split at width: %q", line)
		}
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	got := wrapText("苹果 香蕉 樱桃", 5)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("wide runes should wrap: %q", got)
	}
}
