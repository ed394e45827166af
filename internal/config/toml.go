// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server   ServerConfig   `toml:"server"`
	Speech   SpeechConfig   `toml:"speech"`
	Practice PracticeConfig `toml:"practice"`
	UI       UIConfig       `toml:"ui"`
}

// ServerConfig maps backend connection settings.
type ServerConfig struct {
	URL     *string `toml:"url"`
	Timeout *int    `toml:"timeout-seconds"`
}

// SpeechConfig maps synthesis and playback settings.
type SpeechConfig struct {
	Voice      *string `toml:"voice"`
	Rate       *int    `toml:"rate"`
	Pitch      *int    `toml:"pitch"`
	SlowOffset *int    `toml:"slow-offset"`
	Player     *string `toml:"player"`
}

// PracticeConfig maps dictation session settings.
type PracticeConfig struct {
	AutoPlay         *bool `toml:"auto-play"`
	AutoAdvanceMs    *int  `toml:"auto-advance-ms"`
	FeedbackMs       *int  `toml:"feedback-ms"`
	AnonymousCap     *int  `toml:"anonymous-cap"`
	AuthenticatedCap *int  `toml:"authenticated-cap"`
}

// UIConfig maps presentation settings.
type UIConfig struct {
	DarkMode *bool `toml:"dark-mode"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
