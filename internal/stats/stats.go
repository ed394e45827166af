// Package stats maintains and renders cross-session learning metrics.
package stats

import (
	"strings"
	"time"

	"github.com/echotype/echotype/internal/model"
)

// HistoryCap bounds the per-day history kept in the statistics log.
const HistoryCap = 30

const dateLayout = "2006-01-02"

// LocalDate formats a time as the local calendar date used for history
// bucketing. Buckets match by string equality, not timezone-normalized.
func LocalDate(t time.Time) string {
	return t.Format(dateLayout)
}

// RecordSession folds one finished session into the log: lifetime counters
// grow, and the day's bucket is created or merged. History keeps the most
// recent HistoryCap entries by insertion order.
func RecordSession(log model.StatisticsLog, correct, wrong int, now time.Time) model.StatisticsLog {
	log.Sessions++
	log.Correct += correct
	log.Wrong += wrong

	date := LocalDate(now)
	merged := false
	for i := range log.History {
		if log.History[i].Date == date {
			log.History[i].Correct += correct
			log.History[i].Wrong += wrong
			merged = true
			break
		}
	}
	if !merged {
		log.History = append(log.History, model.DayBucket{Date: date, Correct: correct, Wrong: wrong})
	}
	if len(log.History) > HistoryCap {
		log.History = log.History[len(log.History)-HistoryCap:]
	}
	return log
}

// AccuracySeries converts history buckets into per-day accuracy percentages.
func AccuracySeries(history []model.DayBucket) []float64 {
	out := make([]float64, len(history))
	for i, b := range history {
		total := b.Correct + b.Wrong
		if total > 0 {
			out[i] = float64(b.Correct) / float64(total) * 100
		}
	}
	return out
}

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for values in [0, 100].
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100 * float64(len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
