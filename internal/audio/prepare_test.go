package audio

import (
	"context"
	"fmt"
	"testing"

	"github.com/echotype/echotype/internal/api"
	"github.com/echotype/echotype/internal/model"
)

type fakeSynth struct {
	batchCalls  int
	singleCalls int
	lastRate    int
	lastItems   []api.BatchItem
	failIDs     map[int]bool
}

func (f *fakeSynth) Synthesize(_ context.Context, text, _ string, rate, _ int) (string, error) {
	f.singleCalls++
	f.lastRate = rate
	return "https://cdn/" + text + ".mp3", nil
}

func (f *fakeSynth) SynthesizeBatch(_ context.Context, items []api.BatchItem, _ string, rate, _ int) ([]api.BatchResult, error) {
	f.batchCalls++
	f.lastRate = rate
	f.lastItems = items
	results := make([]api.BatchResult, len(items))
	for i, item := range items {
		if f.failIDs[item.ID] {
			results[i] = api.BatchResult{ID: item.ID, Success: false, Error: "synthesis failed"}
			continue
		}
		results[i] = api.BatchResult{
			ID:       item.ID,
			Success:  true,
			AudioURL: fmt.Sprintf("https://cdn/%s.mp3", item.Text),
		}
	}
	return results, nil
}

func testItems(texts ...string) []model.QuizItem {
	items := make([]model.QuizItem, len(texts))
	for i, t := range texts {
		items[i] = model.QuizItem{ID: i, Kind: model.KindWord, Text: t}
	}
	return items
}

func TestPrepareBatchesOnlyMissing(t *testing.T) {
	synth := &fakeSynth{}
	m := NewManager(synth, Params{VoiceID: "v", Rate: 0, Pitch: -5})
	m.put("banana", "https://cdn/banana.mp3")

	items, err := m.Prepare(context.Background(), testItems("apple", "banana", "cherry"))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if synth.batchCalls != 1 {
		t.Fatalf("expected one batch call, got %d", synth.batchCalls)
	}
	if len(synth.lastItems) != 2 {
		t.Fatalf("cached text must not be re-requested, got %d items", len(synth.lastItems))
	}
	for _, item := range items {
		if item.AudioURL == "" {
			t.Fatalf("item %q should have audio: %+v", item.Text, item)
		}
	}
}

func TestPrepareAllCachedSkipsBatch(t *testing.T) {
	synth := &fakeSynth{}
	m := NewManager(synth, Params{VoiceID: "v"})
	m.put("apple", "https://cdn/apple.mp3")

	items, err := m.Prepare(context.Background(), testItems("apple"))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if synth.batchCalls != 0 {
		t.Fatalf("fully cached prepare should issue no batch")
	}
	if items[0].AudioURL != "https://cdn/apple.mp3" {
		t.Fatalf("cached URL not applied: %+v", items[0])
	}
}

func TestPreparePartialFailure(t *testing.T) {
	synth := &fakeSynth{failIDs: map[int]bool{1: true}}
	m := NewManager(synth, Params{VoiceID: "v"})

	items, err := m.Prepare(context.Background(), testItems("a", "b", "c"))
	if err != nil {
		t.Fatalf("partial failure must not fail prepare: %v", err)
	}
	if items[0].AudioURL == "" || items[2].AudioURL == "" {
		t.Fatalf("successful items should have audio: %+v", items)
	}
	if items[1].AudioURL != "" {
		t.Fatalf("failed item should stay without audio: %+v", items[1])
	}
	if _, ok := m.Cached("b"); ok {
		t.Fatalf("failed synthesis must not be cached")
	}
	if _, ok := m.Cached("a"); !ok {
		t.Fatalf("successful synthesis should be cached")
	}
}

func TestResolveSlowModeBypassesCache(t *testing.T) {
	synth := &fakeSynth{}
	m := NewManager(synth, Params{VoiceID: "v", Rate: -10, SlowOffset: 20})
	m.put("apple", "https://cdn/apple.mp3")

	url, err := m.Resolve(context.Background(), "apple", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if synth.singleCalls != 1 {
		t.Fatalf("slow mode must synthesize fresh audio")
	}
	if synth.lastRate != -30 {
		t.Fatalf("slow mode should subtract the offset, rate %d", synth.lastRate)
	}
	if url == "" {
		t.Fatalf("expected a url")
	}
	// Normal-rate cache entry must survive slow playback.
	if cached, _ := m.Cached("apple"); cached != "https://cdn/apple.mp3" {
		t.Fatalf("slow result must not overwrite the cache: %q", cached)
	}
}

func TestResolveCachesOpportunistically(t *testing.T) {
	synth := &fakeSynth{}
	m := NewManager(synth, Params{VoiceID: "v"})

	if _, err := m.Resolve(context.Background(), "pear", false); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := m.Cached("pear"); !ok {
		t.Fatalf("single playback should populate the cache")
	}
	if _, err := m.Resolve(context.Background(), "pear", false); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if synth.singleCalls != 1 {
		t.Fatalf("second resolve should hit the cache, calls %d", synth.singleCalls)
	}
}
