package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/echotype/echotype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "echotype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetLastWriterWins(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Set(ctx, "doc", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "doc", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("set again: %v", err)
	}
	raw, err := st.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(raw) != `{"v":2}` {
		t.Fatalf("expected last write, got %s", raw)
	}
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	st := openTestStore(t)
	if err := st.Set(context.Background(), "doc", []byte("not json")); err == nil {
		t.Fatalf("invalid JSON must be rejected")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.LoadSettings(ctx); err != nil || ok {
		t.Fatalf("fresh store should have no settings, ok=%v err=%v", ok, err)
	}

	rate := -15
	want := model.Settings{DarkMode: true, SpeechRate: &rate, VoiceID: "en-US-natalie", AutoPlay: true}
	if err := st.SaveSettings(ctx, want); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	got, ok, err := st.LoadSettings(ctx)
	if err != nil || !ok {
		t.Fatalf("load settings: ok=%v err=%v", ok, err)
	}
	if got.DarkMode != want.DarkMode || got.VoiceID != want.VoiceID || got.AutoPlay != want.AutoPlay {
		t.Fatalf("settings round trip mismatch: %+v vs %+v", got, want)
	}
	if got.SpeechRate == nil || *got.SpeechRate != rate {
		t.Fatalf("speech rate not preserved: %+v", got.SpeechRate)
	}

	if err := st.SaveSettings(ctx, model.Settings{DarkMode: true}); err != nil {
		t.Fatalf("save settings without rate: %v", err)
	}
	got, _, err = st.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	// Absent rate must stay distinguishable from an explicit zero.
	if got.SpeechRate != nil {
		t.Fatalf("missing speech rate should load as nil, got %v", *got.SpeechRate)
	}
}

func TestStatisticsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	log, err := st.LoadStatistics(ctx)
	if err != nil {
		t.Fatalf("load empty statistics: %v", err)
	}
	if log.Sessions != 0 || len(log.History) != 0 {
		t.Fatalf("fresh store should have zero log: %+v", log)
	}

	log = model.StatisticsLog{
		Sessions: 2,
		Correct:  5,
		Wrong:    3,
		History:  []model.DayBucket{{Date: "2026-03-01", Correct: 5, Wrong: 3}},
	}
	if err := st.SaveStatistics(ctx, log); err != nil {
		t.Fatalf("save statistics: %v", err)
	}
	got, err := st.LoadStatistics(ctx)
	if err != nil {
		t.Fatalf("load statistics: %v", err)
	}
	if got.Sessions != 2 || len(got.History) != 1 || got.History[0].Date != "2026-03-01" {
		t.Fatalf("statistics round trip mismatch: %+v", got)
	}
}

func TestWrongWordsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	entries := []model.WrongWordEntry{{
		Text:       "banana",
		UserAnswer: "bananna",
		AddedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}
	if err := st.SaveWrongWords(ctx, entries); err != nil {
		t.Fatalf("save wrong words: %v", err)
	}
	got, err := st.LoadWrongWords(ctx)
	if err != nil {
		t.Fatalf("load wrong words: %v", err)
	}
	if len(got) != 1 || got[0].Text != "banana" || !got[0].AddedAt.Equal(entries[0].AddedAt) {
		t.Fatalf("wrong words round trip mismatch: %+v", got)
	}

	// Saving nil clears the book to an empty document, not a decode error.
	if err := st.SaveWrongWords(ctx, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	got, err = st.LoadWrongWords(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("cleared book should load empty: %v %v", got, err)
	}
}

func TestUserCacheLifecycle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.LoadUser(ctx); err != nil || ok {
		t.Fatalf("fresh store should have no user")
	}
	user := model.User{Name: "Ada", Email: "ada@example.com"}
	if err := st.SaveUser(ctx, user); err != nil {
		t.Fatalf("save user: %v", err)
	}
	got, ok, err := st.LoadUser(ctx)
	if err != nil || !ok || got != user {
		t.Fatalf("load user mismatch: %+v ok=%v err=%v", got, ok, err)
	}
	if err := st.ClearUser(ctx); err != nil {
		t.Fatalf("clear user: %v", err)
	}
	if _, ok, _ := st.LoadUser(ctx); ok {
		t.Fatalf("user should be gone after clear")
	}
}

func TestAuthCookieRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveAuthCookie(ctx, "session=abc"); err != nil {
		t.Fatalf("save cookie: %v", err)
	}
	cookie, ok, err := st.LoadAuthCookie(ctx)
	if err != nil || !ok || cookie != "session=abc" {
		t.Fatalf("cookie round trip mismatch: %q ok=%v err=%v", cookie, ok, err)
	}
	if err := st.ClearAuthCookie(ctx); err != nil {
		t.Fatalf("clear cookie: %v", err)
	}
	if _, ok, _ := st.LoadAuthCookie(ctx); ok {
		t.Fatalf("cookie should be gone after clear")
	}
}
