// Package audio handles speech synthesis caching and playback.
package audio

import (
	"context"
	"sync"

	"github.com/echotype/echotype/internal/api"
	"github.com/echotype/echotype/internal/model"
)

// Synthesizer is the slice of the backend client used for speech requests.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string, rate, pitch int) (string, error)
	SynthesizeBatch(ctx context.Context, items []api.BatchItem, voiceID string, rate, pitch int) ([]api.BatchResult, error)
}

// Params are the synthesis settings passed through to the service.
// SlowOffset is subtracted from Rate for slow single-item playback only.
type Params struct {
	VoiceID    string
	Rate       int
	Pitch      int
	SlowOffset int
}

// Manager resolves item text to audio URLs. The cache is keyed by text and
// lives for the process only; identical text is never synthesized twice.
type Manager struct {
	synth  Synthesizer
	params Params

	mu    sync.Mutex
	cache map[string]string
}

// NewManager creates an audio manager over the given synthesizer.
func NewManager(synth Synthesizer, params Params) *Manager {
	return &Manager{
		synth:  synth,
		params: params,
		cache:  map[string]string{},
	}
}

// Cached returns the audio URL for text if one is known.
func (m *Manager) Cached(text string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.cache[text]
	return url, ok
}

func (m *Manager) put(text, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[text] = url
}

// Prepare fills AudioURL for every item it can, batching synthesis for all
// texts missing from the cache in a single call. Items whose synthesis
// failed keep an empty AudioURL; only a whole-batch failure returns an
// error, and even then the cached items are already filled in.
func (m *Manager) Prepare(ctx context.Context, items []model.QuizItem) ([]model.QuizItem, error) {
	out := make([]model.QuizItem, len(items))
	copy(out, items)

	var missing []api.BatchItem
	for i := range out {
		if out[i].AudioURL != "" {
			m.put(out[i].Text, out[i].AudioURL)
			continue
		}
		if url, ok := m.Cached(out[i].Text); ok {
			out[i].AudioURL = url
			continue
		}
		missing = append(missing, api.BatchItem{
			ID:   i,
			Text: out[i].Text,
			Type: string(out[i].Kind),
		})
	}
	if len(missing) == 0 {
		return out, nil
	}

	results, err := m.synth.SynthesizeBatch(ctx, missing, m.params.VoiceID, m.params.Rate, m.params.Pitch)
	if err != nil {
		return out, err
	}
	for _, r := range results {
		if !r.Success || r.AudioURL == "" {
			continue
		}
		if r.ID < 0 || r.ID >= len(out) {
			continue
		}
		out[r.ID].AudioURL = r.AudioURL
		m.put(out[r.ID].Text, r.AudioURL)
	}
	return out, nil
}

// Resolve returns an audio URL for a single text, synthesizing on demand
// and caching opportunistically. Slow mode lowers the rate by SlowOffset.
func (m *Manager) Resolve(ctx context.Context, text string, slow bool) (string, error) {
	if !slow {
		if url, ok := m.Cached(text); ok {
			return url, nil
		}
	}
	rate := m.params.Rate
	if slow {
		rate -= m.params.SlowOffset
	}
	url, err := m.synth.Synthesize(ctx, text, m.params.VoiceID, rate, m.params.Pitch)
	if err != nil {
		return "", err
	}
	if !slow {
		m.put(text, url)
	}
	return url, nil
}
