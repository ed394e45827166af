package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/echotype/echotype/internal/api"
	"github.com/echotype/echotype/internal/audio"
	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/session"
	"github.com/echotype/echotype/internal/store"
)

type stubSynth struct{}

func (stubSynth) Synthesize(context.Context, string, string, int, int) (string, error) {
	return "https://cdn/one.mp3", nil
}

func (stubSynth) SynthesizeBatch(_ context.Context, items []api.BatchItem, _ string, _, _ int) ([]api.BatchResult, error) {
	results := make([]api.BatchResult, len(items))
	for i, item := range items {
		results[i] = api.BatchResult{ID: item.ID, Success: true, AudioURL: "https://cdn/x.mp3"}
	}
	return results, nil
}

type stubDownloader struct{}

func (stubDownloader) DownloadAudio(context.Context, string) ([]byte, error) {
	return []byte("mp3"), nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "echotype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	cfg := Config{
		AutoPlay:         false,
		AutoAdvanceMs:    10,
		FeedbackMs:       10,
		AnonymousCap:     2,
		AuthenticatedCap: 10,
		DarkMode:         true,
	}
	client := api.NewClient("http://unused", time.Second)
	manager := audio.NewManager(stubSynth{}, audio.Params{VoiceID: "v", Pitch: -5})
	player := audio.NewPlayer(stubDownloader{}, t.TempDir(), "true")
	return NewModel(cfg, client, manager, player, st, nil)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeToCaptureAndBack(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("c"))
	if m.page != pageCapture {
		t.Fatalf("expected capture page, got %v", m.page)
	}
	m.Update(key("esc"))
	if m.page != pageHome {
		t.Fatalf("expected home page, got %v", m.page)
	}
}

func TestSelectionCapNotice(t *testing.T) {
	m := newTestModel(t)
	m.words = []model.ContentItem{
		{Kind: model.KindWord, Text: "a"},
		{Kind: model.KindWord, Text: "b"},
		{Kind: model.KindWord, Text: "c"},
	}
	m.page = pageSelect
	m.selectKind = model.KindWord

	m.Update(key("space"))
	m.Update(key("down"))
	m.Update(key("space"))
	m.Update(key("down"))
	m.Update(key("space"))

	if m.sel.Count(model.KindWord) != 2 {
		t.Fatalf("anonymous cap is 2, got %d selected", m.sel.Count(model.KindWord))
	}
	if m.notice == "" {
		t.Fatalf("overflow should surface a notice")
	}
}

func TestStartWithEmptySelectionRejected(t *testing.T) {
	m := newTestModel(t)
	m.words = []model.ContentItem{{Kind: model.KindWord, Text: "a"}}
	m.page = pageSelect

	m.Update(key("enter"))
	if m.page != pageSelect {
		t.Fatalf("empty selection must not start a session")
	}
	if m.notice == "" {
		t.Fatalf("expected a user-visible message")
	}
}

func TestDictateFlowFinishes(t *testing.T) {
	m := newTestModel(t)
	m.words = []model.ContentItem{
		{Kind: model.KindWord, Text: "apple"},
		{Kind: model.KindWord, Text: "pear"},
	}
	m.page = pageSelect
	m.Update(key("space"))
	m.Update(key("down"))
	m.Update(key("space"))
	_, cmd := m.Update(key("enter"))
	if m.sess == nil || cmd == nil {
		t.Fatalf("session should start with audio preparation pending")
	}
	// Run the preparation command and feed its result back.
	msg := cmd()
	prepared, ok := msg.(prepareDoneMsg)
	if !ok {
		t.Fatalf("expected prepareDoneMsg, got %T", msg)
	}
	m.Update(prepared)
	if m.page != pageDictate {
		t.Fatalf("expected dictate page, got %v", m.page)
	}
	for _, item := range m.sess.Items {
		if item.AudioURL == "" {
			t.Fatalf("prepared item missing audio: %+v", item)
		}
	}

	m.answerInput.SetValue("Apple")
	m.Update(key("enter"))
	if m.feedback != "correct" {
		t.Fatalf("case-insensitive answer should be correct, feedback %q", m.feedback)
	}
	m.Update(feedbackDoneMsg{gen: m.gen})

	m.answerInput.SetValue("wrong answer")
	m.Update(key("enter"))
	if m.feedback != "wrong" {
		t.Fatalf("expected wrong feedback, got %q", m.feedback)
	}
	m.Update(feedbackDoneMsg{gen: m.gen})

	if m.sess.Phase() != session.Finished {
		t.Fatalf("marking the last item should finish the session")
	}
	if m.page != pageResults {
		t.Fatalf("expected results page, got %v", m.page)
	}
	if m.summary.Correct != 1 || m.summary.Incorrect != 1 || m.summary.Accuracy != 50 {
		t.Fatalf("unexpected summary: %+v", m.summary)
	}
}

func TestReplayDuringFeedbackStillFinishes(t *testing.T) {
	m := newTestModel(t)
	m.words = []model.ContentItem{{Kind: model.KindWord, Text: "apple"}}
	m.page = pageSelect
	m.Update(key("space"))
	_, cmd := m.Update(key("enter"))
	msg := cmd()
	prepared, ok := msg.(prepareDoneMsg)
	if !ok {
		t.Fatalf("expected prepareDoneMsg, got %T", msg)
	}
	m.Update(prepared)

	m.answerInput.SetValue("apple")
	m.Update(key("enter"))
	if m.sess.Phase() != session.Finished {
		t.Fatalf("answering the last item should finish the session")
	}
	gen := m.gen

	// Replaying audio while the feedback flash is pending must not
	// invalidate the tick that completes the session.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m.Update(feedbackDoneMsg{gen: gen})

	if m.page != pageResults {
		t.Fatalf("expected results page after feedback tick, got %v", m.page)
	}
	if m.summary.Correct != 1 || m.summary.Total != 1 {
		t.Fatalf("session outcome not recorded: %+v", m.summary)
	}
}

func TestPasteModeExtractsContent(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("c"))
	m.Update(key("tab"))
	if !m.pasteMode {
		t.Fatalf("tab should switch capture to paste mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg == "" {
		t.Fatalf("empty pasted text should be rejected")
	}

	m.textInput.SetValue("apple banana")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected an extract command")
	}
	m.Update(extractDoneMsg{
		gen:  m.gen,
		text: "apple banana",
		extracted: api.Extracted{
			Words: []model.ContentItem{{Kind: model.KindWord, Text: "apple"}},
		},
	})
	if m.page != pageVerify {
		t.Fatalf("expected verify page, got %v", m.page)
	}
	if len(m.words) != 1 || m.words[0].Text != "apple" {
		t.Fatalf("unexpected extracted words: %+v", m.words)
	}
}

func TestStaleResponsesDropped(t *testing.T) {
	m := newTestModel(t)
	m.gen = 5
	m.busy = "Recognizing text..."
	m.page = pageCapture
	m.Update(ocrDoneMsg{gen: 4, result: api.OCRResult{Text: "stale"}})
	if m.text == "stale" {
		t.Fatalf("stale OCR response must not overwrite state")
	}
	if m.page != pageCapture {
		t.Fatalf("stale response must not change pages")
	}
}

func TestGoHomeClearsSession(t *testing.T) {
	m := newTestModel(t)
	sess, err := session.Start(model.ModeWords, []model.QuizItem{{Text: "a"}})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m.sess = sess
	m.page = pageDictate
	m.playing = true
	m.Update(key("esc"))
	if m.page != pageHome || m.sess != nil {
		t.Fatalf("esc should clear session state and return home")
	}
	if m.playing {
		t.Fatalf("abandoned playback must not carry into the next session")
	}
}
