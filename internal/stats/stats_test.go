package stats

import (
	"testing"
	"time"

	"github.com/echotype/echotype/internal/model"
)

func TestRecordSessionMergesSameDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	log := RecordSession(model.StatisticsLog{}, 3, 1, now)
	log = RecordSession(log, 2, 2, now.Add(time.Hour))

	if log.Sessions != 2 || log.Correct != 5 || log.Wrong != 3 {
		t.Fatalf("unexpected totals: %+v", log)
	}
	if len(log.History) != 1 {
		t.Fatalf("same-day sessions should share a bucket, got %d", len(log.History))
	}
	b := log.History[0]
	if b.Date != "2026-03-14" || b.Correct != 5 || b.Wrong != 3 {
		t.Fatalf("unexpected bucket: %+v", b)
	}
}

func TestRecordSessionNewDayAppends(t *testing.T) {
	day1 := time.Date(2026, 3, 14, 23, 0, 0, 0, time.Local)
	day2 := day1.Add(2 * time.Hour)
	log := RecordSession(model.StatisticsLog{}, 1, 0, day1)
	log = RecordSession(log, 0, 1, day2)
	if len(log.History) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(log.History))
	}
	if log.History[1].Date != "2026-03-15" {
		t.Fatalf("unexpected second bucket date: %s", log.History[1].Date)
	}
}

func TestHistoryNeverExceedsCap(t *testing.T) {
	var log model.StatisticsLog
	day := time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < HistoryCap+15; i++ {
		log = RecordSession(log, 1, 1, day.AddDate(0, 0, i))
	}
	if len(log.History) != HistoryCap {
		t.Fatalf("history should cap at %d, got %d", HistoryCap, len(log.History))
	}
	// Oldest entries are dropped; the newest day is still present.
	last := log.History[len(log.History)-1]
	if last.Date != LocalDate(day.AddDate(0, 0, HistoryCap+14)) {
		t.Fatalf("newest bucket missing, got %s", last.Date)
	}
	if log.Sessions != HistoryCap+15 {
		t.Fatalf("lifetime counters must not be truncated: %d", log.Sessions)
	}
}

func TestAccuracySeries(t *testing.T) {
	history := []model.DayBucket{
		{Date: "2026-01-01", Correct: 1, Wrong: 1},
		{Date: "2026-01-02", Correct: 0, Wrong: 0},
		{Date: "2026-01-03", Correct: 3, Wrong: 0},
	}
	got := AccuracySeries(history)
	want := []float64{50, 0, 100}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("empty input should yield empty sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 50, 100})
	if len(got) != 3 {
		t.Fatalf("expected 3 chars, got %q", got)
	}
	if got[0] != ' ' || got[2] != '@' {
		t.Fatalf("unexpected sparkline: %q", got)
	}
}
