package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/session"
	"github.com/echotype/echotype/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Log        model.StatisticsLog
	History    []model.DayBucket
	WrongWords []model.WrongWordEntry
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	log, err := st.LoadStatistics(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load statistics: %w", err)
	}
	wrongWords, err := st.LoadWrongWords(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load wrong words: %w", err)
	}

	history := log.History
	if cfg.Since != nil {
		since := LocalDate(*cfg.Since)
		filtered := make([]model.DayBucket, 0, len(history))
		for _, b := range history {
			if b.Date >= since {
				filtered = append(filtered, b)
			}
		}
		history = filtered
	}
	if cfg.Last > 0 && len(history) > cfg.Last {
		history = history[len(history)-cfg.Last:]
	}

	return Report{Log: log, History: history, WrongWords: wrongWords}, nil
}

// RenderSummary prints lifetime totals.
func RenderSummary(w io.Writer, log model.StatisticsLog) error {
	if log.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", log.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct: %d\n", log.Correct); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wrong: %d\n", log.Wrong); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %d%%\n", session.Accuracy(log.Correct, log.Wrong)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints the per-day history buckets.
func RenderHistoryTable(w io.Writer, history []model.DayBucket) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No daily history found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Daily History"); err != nil {
		return err
	}
	headers := []string{"Date", "Correct", "Wrong", "Accuracy"}
	rows := make([][]string, 0, len(history))
	for _, b := range history {
		rows = append(rows, []string{
			b.Date,
			fmt.Sprintf("%d", b.Correct),
			fmt.Sprintf("%d", b.Wrong),
			fmt.Sprintf("%d%%", session.Accuracy(b.Correct, b.Wrong)),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderWrongWords prints the wrong-word book, most recent first.
func RenderWrongWords(w io.Writer, entries []model.WrongWordEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Wrong-word book is empty.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Wrong Words"); err != nil {
		return err
	}
	headers := []string{"Text", "Meaning", "Last Answer", "Missed", "Added"}
	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rows = append(rows, []string{
			e.Text,
			e.Meaning,
			e.UserAnswer,
			fmt.Sprintf("%d", e.ReviewCount),
			e.AddedAt.Format(time.DateOnly),
		})
	}
	rightAlign := map[int]bool{3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAccuracyCurve prints a braille plot of per-day accuracy.
func RenderAccuracyCurve(w io.Writer, history []model.DayBucket, totalWidth int) error {
	if len(history) < 2 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotAccuracy(w, "Accuracy (last 30 days)", AccuracySeries(history), width, 0)
}
