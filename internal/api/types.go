// Package api implements the JSON-over-HTTP clients for the backend
// services: OCR, text-to-speech, auth, and practice history.
package api

import (
	"fmt"
	"time"

	"github.com/echotype/echotype/internal/model"
)

// ServiceError is a non-success response or transport failure from a
// backend service. Prior client state is always preserved by callers.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Extracted are the candidate lists returned by the OCR/extract services.
type Extracted struct {
	Words     []model.ContentItem
	Sentences []model.ContentItem
}

// OCRResult carries the raw recognized text plus the extracted candidates.
type OCRResult struct {
	Text      string
	Extracted Extracted
}

// BatchItem is one synthesis request in a TTS batch.
type BatchItem struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// BatchResult is the outcome for one item of a TTS batch. Failed items
// have Success false and an empty AudioURL.
type BatchResult struct {
	ID       int    `json:"id"`
	Success  bool   `json:"success"`
	AudioURL string `json:"audio_url"`
	Error    string `json:"error,omitempty"`
}

// PracticeSession is one remote practice-history record.
type PracticeSession struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	TotalItems   int       `json:"total_items"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	Accuracy     int       `json:"accuracy"`
	WordsData    string    `json:"words_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Wire shapes. Service payloads are validated here at the boundary and
// converted to typed structures before anything else sees them.

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type wireWord struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Meaning  string `json:"meaning"`
}

type wireSentence struct {
	Sentence string `json:"sentence"`
	Meaning  string `json:"meaning"`
}

type wireExtracted struct {
	Words     []wireWord     `json:"words"`
	Sentences []wireSentence `json:"sentences"`
}

type ocrResponse struct {
	Success   bool          `json:"success"`
	Text      string        `json:"text"`
	Extracted wireExtracted `json:"extracted"`
}

type extractResponse struct {
	Success   bool          `json:"success"`
	Extracted wireExtracted `json:"extracted"`
}

type ttsResponse struct {
	Success  bool   `json:"success"`
	AudioURL string `json:"audio_url"`
}

type ttsBatchResponse struct {
	Success bool          `json:"success"`
	Results []BatchResult `json:"results"`
}

type authResponse struct {
	Success bool       `json:"success"`
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

type practiceListResponse struct {
	Success  bool              `json:"success"`
	Sessions []PracticeSession `json:"sessions"`
}

type practiceDetailResponse struct {
	Success bool            `json:"success"`
	Session PracticeSession `json:"session"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (w wireExtracted) toTyped() Extracted {
	var out Extracted
	for _, word := range w.Words {
		if word.Word == "" {
			continue
		}
		out.Words = append(out.Words, model.ContentItem{
			Kind:     model.KindWord,
			Text:     word.Word,
			Phonetic: word.Phonetic,
			Meaning:  word.Meaning,
		})
	}
	for _, s := range w.Sentences {
		if s.Sentence == "" {
			continue
		}
		out.Sentences = append(out.Sentences, model.ContentItem{
			Kind:    model.KindSentence,
			Text:    s.Sentence,
			Meaning: s.Meaning,
		})
	}
	return out
}
