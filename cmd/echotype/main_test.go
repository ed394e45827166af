package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/echotype/echotype/internal/config"
	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "echotype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSavedSettingsRestoreZeroRate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// newRootCmd resets the flag globals to their defaults.
	cmd := newRootCmd()

	rate := 0
	saved := model.Settings{SpeechRate: &rate, VoiceID: "en-US-ken", DarkMode: false, AutoPlay: true}
	if err := st.SaveSettings(ctx, saved); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	applySavedSettings(ctx, cmd, st, config.FileConfig{})

	if speechRate != 0 {
		t.Fatalf("saved rate of 0 should be restored, got %d", speechRate)
	}
	if speechVoice != "en-US-ken" {
		t.Fatalf("saved voice should be restored, got %q", speechVoice)
	}
	if !autoPlay || darkMode {
		t.Fatalf("saved toggles should be restored: autoPlay=%v darkMode=%v", autoPlay, darkMode)
	}
}

func TestSavedSettingsDeferToConfigFile(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cmd := newRootCmd()

	rate := 0
	if err := st.SaveSettings(ctx, model.Settings{SpeechRate: &rate}); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	fileRate := -20
	applySavedSettings(ctx, cmd, st, config.FileConfig{
		Speech: config.SpeechConfig{Rate: &fileRate},
	})

	if speechRate != defaultRate {
		t.Fatalf("config file rate outranks saved settings; global should be untouched here, got %d", speechRate)
	}
}

func TestSavedSettingsSeedOnFirstRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cmd := newRootCmd()

	applySavedSettings(ctx, cmd, st, config.FileConfig{})

	seeded, ok, err := st.LoadSettings(ctx)
	if err != nil || !ok {
		t.Fatalf("first run should seed settings: ok=%v err=%v", ok, err)
	}
	if seeded.SpeechRate == nil || *seeded.SpeechRate != defaultRate {
		t.Fatalf("seed should carry the effective rate: %+v", seeded.SpeechRate)
	}
	if seeded.VoiceID != defaultVoice {
		t.Fatalf("seed should carry the effective voice, got %q", seeded.VoiceID)
	}
}
