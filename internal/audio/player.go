package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Downloader fetches audio bytes for a resolved URL.
type Downloader interface {
	DownloadAudio(ctx context.Context, url string) ([]byte, error)
}

// Player downloads synthesized audio into a local cache and plays it with
// an external command. Playback is a single shared resource: starting a
// new item stops whatever was playing.
type Player struct {
	downloader Downloader
	cacheDir   string
	command    string

	mu      sync.Mutex
	current *exec.Cmd
}

// NewPlayer creates a player that caches audio under cacheDir and plays
// files by running the given command (e.g. "mpv --no-video").
func NewPlayer(downloader Downloader, cacheDir, command string) *Player {
	return &Player{
		downloader: downloader,
		cacheDir:   cacheDir,
		command:    command,
	}
}

func cachePath(cacheDir, url string) string {
	h := sha256.Sum256([]byte(url))
	return filepath.Join(cacheDir, hex.EncodeToString(h[:16])+".mp3")
}

// Fetch ensures the audio for url is on disk and returns its path.
func (p *Player) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no audio for this item yet")
	}
	path := cachePath(p.cacheDir, url)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	data, err := p.downloader.DownloadAudio(ctx, url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio cache dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(p.cacheDir, "audio-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to move audio into cache: %w", err)
	}
	return path, nil
}

// Play downloads the audio if needed and starts playback, stopping any
// prior playback first. It blocks until the player process exits.
func (p *Player) Play(ctx context.Context, url string) error {
	path, err := p.Fetch(ctx, url)
	if err != nil {
		return err
	}

	parts := strings.Fields(p.command)
	if len(parts) == 0 {
		return fmt.Errorf("player command is empty")
	}

	p.mu.Lock()
	if p.current != nil && p.current.Process != nil {
		_ = p.current.Process.Kill()
	}
	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	p.current = cmd
	p.mu.Unlock()

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run player: %w", err)
	}
	return nil
}

// Stop kills the active playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.Process != nil {
		_ = p.current.Process.Kill()
	}
	p.current = nil
}
