package store

import (
	"context"

	"github.com/echotype/echotype/internal/model"
)

// Document keys for locally persisted state.
const (
	keySettings   = "settings"
	keyStatistics = "statistics"
	keyWrongWords = "wrongwords"
	keyUser       = "user"
	keyAuthCookie = "authcookie"
)

// LoadSettings reads persisted settings. The second return is false when no
// settings have been saved yet.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, bool, error) {
	return getJSON[model.Settings](ctx, s, keySettings)
}

// SaveSettings persists the settings document.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	return setJSON(ctx, s, keySettings, settings)
}

// LoadStatistics reads the statistics log. Missing document yields a zero log.
func (s *Store) LoadStatistics(ctx context.Context) (model.StatisticsLog, error) {
	log, _, err := getJSON[model.StatisticsLog](ctx, s, keyStatistics)
	return log, err
}

// SaveStatistics persists the statistics log document.
func (s *Store) SaveStatistics(ctx context.Context, log model.StatisticsLog) error {
	return setJSON(ctx, s, keyStatistics, log)
}

// LoadWrongWords reads the wrong-word book. Missing document yields nil.
func (s *Store) LoadWrongWords(ctx context.Context) ([]model.WrongWordEntry, error) {
	entries, _, err := getJSON[[]model.WrongWordEntry](ctx, s, keyWrongWords)
	return entries, err
}

// SaveWrongWords persists the wrong-word book document.
func (s *Store) SaveWrongWords(ctx context.Context, entries []model.WrongWordEntry) error {
	if entries == nil {
		entries = []model.WrongWordEntry{}
	}
	return setJSON(ctx, s, keyWrongWords, entries)
}

// LoadUser reads the cached authenticated user, if any.
func (s *Store) LoadUser(ctx context.Context) (model.User, bool, error) {
	return getJSON[model.User](ctx, s, keyUser)
}

// SaveUser caches the authenticated user.
func (s *Store) SaveUser(ctx context.Context, user model.User) error {
	return setJSON(ctx, s, keyUser, user)
}

// ClearUser removes the cached user on logout.
func (s *Store) ClearUser(ctx context.Context) error {
	return s.Delete(ctx, keyUser)
}

// LoadAuthCookie reads the saved backend session cookie.
func (s *Store) LoadAuthCookie(ctx context.Context) (string, bool, error) {
	return getJSON[string](ctx, s, keyAuthCookie)
}

// SaveAuthCookie persists the backend session cookie.
func (s *Store) SaveAuthCookie(ctx context.Context, cookie string) error {
	return setJSON(ctx, s, keyAuthCookie, cookie)
}

// ClearAuthCookie removes the saved session cookie.
func (s *Store) ClearAuthCookie(ctx context.Context) error {
	return s.Delete(ctx, keyAuthCookie)
}

