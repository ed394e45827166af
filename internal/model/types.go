// Package model defines shared data structures.
package model

import "time"

// ContentKind distinguishes word and sentence items.
type ContentKind string

const (
	KindWord     ContentKind = "word"
	KindSentence ContentKind = "sentence"
)

// ContentItem is a candidate item produced by OCR extraction. It stays
// editable until a quiz session is started from it.
type ContentItem struct {
	Kind     ContentKind `json:"kind"`
	Text     string      `json:"text"`
	Phonetic string      `json:"phonetic,omitempty"`
	Meaning  string      `json:"meaning,omitempty"`
}

// QuizItem is one unit under test in a session. Text is frozen once the
// session starts; AudioURL is filled in by audio preparation and stays
// empty for items whose synthesis failed.
type QuizItem struct {
	ID       int
	Kind     ContentKind
	Text     string
	Phonetic string
	Meaning  string
	AudioURL string
}

// QuizResult records the outcome for one QuizItem. IsCorrect is nil until
// the item has been answered.
type QuizResult struct {
	UserAnswer string
	IsCorrect  *bool
}

// SessionMode tags a session as practicing words or sentences.
type SessionMode string

const (
	ModeWords     SessionMode = "words"
	ModeSentences SessionMode = "sentences"
)

// SessionSummary is the computed outcome of a finished session.
type SessionSummary struct {
	Total     int
	Correct   int
	Incorrect int
	Accuracy  int
}

// WrongWordEntry is one row of the wrong-word book. Entries are
// deduplicated by case-insensitive text.
type WrongWordEntry struct {
	Text        string    `json:"text"`
	Meaning     string    `json:"meaning,omitempty"`
	UserAnswer  string    `json:"user_answer"`
	AddedAt     time.Time `json:"added_at"`
	ReviewCount int       `json:"review_count"`
}

// DayBucket aggregates results for one local calendar date.
type DayBucket struct {
	Date    string `json:"date"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
}

// StatisticsLog holds lifetime counters plus a capped per-day history.
type StatisticsLog struct {
	Sessions int         `json:"sessions"`
	Correct  int         `json:"correct"`
	Wrong    int         `json:"wrong"`
	History  []DayBucket `json:"history"`
}

// Settings are the persisted user preferences, applied at startup.
type Settings struct {
	DarkMode   bool   `json:"dark_mode"`
	SpeechRate *int   `json:"speech_rate,omitempty"`
	VoiceID    string `json:"voice_id"`
	AutoPlay   bool   `json:"auto_play"`
}

// User is the authenticated account as reported by the auth service.
type User struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PracticeRecord is one completed session as submitted to the
// practice-history service.
type PracticeRecord struct {
	Title        string
	TotalItems   int
	CorrectCount int
	WrongCount   int
	Accuracy     int
	WordsData    string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}
