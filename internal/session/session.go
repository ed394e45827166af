// Package session implements the dictation session state machine.
package session

import (
	"fmt"
	"math"
	"strings"

	"github.com/echotype/echotype/internal/model"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Finished
)

// NoAnswer is recorded when an item is marked without any typed input.
const NoAnswer = "(no answer)"

// Session is one run through an ordered list of quiz items. All mutation
// goes through its methods; rendering layers only read from it.
type Session struct {
	Mode    model.SessionMode
	Items   []model.QuizItem
	Results []model.QuizResult

	phase    Phase
	current  int
	revealed bool
}

// Start creates an in-progress session over the given items. The item list
// must be non-empty.
func Start(mode model.SessionMode, items []model.QuizItem) (*Session, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to practice")
	}
	frozen := make([]model.QuizItem, len(items))
	copy(frozen, items)
	for i := range frozen {
		frozen[i].ID = i
	}
	return &Session{
		Mode:    mode,
		Items:   frozen,
		Results: make([]model.QuizResult, len(frozen)),
		phase:   InProgress,
	}, nil
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Current returns the cursor position.
func (s *Session) Current() int {
	return s.current
}

// CurrentItem returns the item under the cursor.
func (s *Session) CurrentItem() model.QuizItem {
	return s.Items[s.current]
}

// Revealed reports whether the answer is shown for the current item.
func (s *Session) Revealed() bool {
	return s.revealed
}

// ToggleReveal flips answer visibility. UI-only; no result mutation.
func (s *Session) ToggleReveal() {
	s.revealed = !s.revealed
}

// Next moves the cursor forward. No-op at the last item or outside InProgress.
func (s *Session) Next() {
	if s.phase != InProgress {
		return
	}
	if s.current < len(s.Items)-1 {
		s.current++
		s.revealed = false
	}
}

// Prev moves the cursor backward. No-op at the first item.
func (s *Session) Prev() {
	if s.phase != InProgress {
		return
	}
	if s.current > 0 {
		s.current--
		s.revealed = false
	}
}

// SubmitAnswer compares the typed answer to the current item, trimmed and
// case-insensitive, and marks the result. Returns whether it was correct.
func (s *Session) SubmitAnswer(answer string) bool {
	answer = strings.TrimSpace(answer)
	correct := strings.EqualFold(answer, strings.TrimSpace(s.Items[s.current].Text))
	s.Mark(correct, answer)
	return correct
}

// Mark records the outcome for the current item. Marking the last item
// finishes the session; marking after Finished is a no-op.
func (s *Session) Mark(isCorrect bool, answer string) {
	if s.phase != InProgress {
		return
	}
	if strings.TrimSpace(answer) == "" {
		answer = NoAnswer
	}
	v := isCorrect
	s.Results[s.current] = model.QuizResult{UserAnswer: answer, IsCorrect: &v}
	if s.current == len(s.Items)-1 {
		s.phase = Finished
	}
}

// Advance moves to the next item after a mark, or finishes if the marked
// item was the last one. Callers delay this for UI feedback pacing.
func (s *Session) Advance() {
	if s.phase != InProgress {
		return
	}
	if s.current < len(s.Items)-1 {
		s.current++
		s.revealed = false
	}
}

// Answered reports whether the current item already has an outcome.
func (s *Session) Answered() bool {
	return s.Results[s.current].IsCorrect != nil
}

// Mistakes returns the items answered incorrectly, in order.
func (s *Session) Mistakes() []model.QuizItem {
	var out []model.QuizItem
	for i, r := range s.Results {
		if r.IsCorrect != nil && !*r.IsCorrect {
			out = append(out, s.Items[i])
		}
	}
	return out
}

// Summary computes the session outcome. Unanswered items count toward
// neither correct nor incorrect.
func (s *Session) Summary() model.SessionSummary {
	var correct, incorrect int
	for _, r := range s.Results {
		if r.IsCorrect == nil {
			continue
		}
		if *r.IsCorrect {
			correct++
		} else {
			incorrect++
		}
	}
	return model.SessionSummary{
		Total:     len(s.Items),
		Correct:   correct,
		Incorrect: incorrect,
		Accuracy:  Accuracy(correct, incorrect),
	}
}

// Accuracy computes the rounded percentage of correct answers, 0 when
// nothing was answered.
func Accuracy(correct, incorrect int) int {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Retry starts a fresh session over the identical item set.
func (s *Session) Retry() (*Session, error) {
	return Start(s.Mode, s.Items)
}

// RetryMistakes starts a fresh session over only the mistaken items.
func (s *Session) RetryMistakes() (*Session, error) {
	return Start(s.Mode, s.Mistakes())
}
