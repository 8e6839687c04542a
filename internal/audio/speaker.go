package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/snonux/minichat/internal"
)

// Speaker synthesizes text and plays it back. Generated files are kept in
// a cache directory so repeated replies are not synthesized twice. Calls
// are serialized so utterances never overlap.
type Speaker struct {
	provider Provider
	player   Player
	cacheDir string
	format   string
	variant  string

	mu sync.Mutex
}

// SpeakerConfig controls where and how a Speaker caches audio
type SpeakerConfig struct {
	CacheDir string // Defaults to $TMPDIR/minichat-speech
	Format   string // File extension without dot, defaults to "wav"

	// Variant is mixed into the cache key so voice or model changes do
	// not replay stale files
	Variant string
}

// NewSpeaker creates a speaker for provider and player
func NewSpeaker(provider Provider, player Player, config SpeakerConfig) (*Speaker, error) {
	if config.Format == "" {
		config.Format = "wav"
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(os.TempDir(), "minichat-speech")
	}
	if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create speech cache directory: %w", err)
	}

	return &Speaker{
		provider: provider,
		player:   player,
		cacheDir: config.CacheDir,
		format:   config.Format,
		variant:  config.Variant,
	}, nil
}

// cacheFilePath returns the cache location for text
func (s *Speaker) cacheFilePath(text string) string {
	hash := internal.HashText(s.provider.Name(), s.variant, text)

	// First 2 chars as subdirectory keep directories small
	return filepath.Join(s.cacheDir, internal.SanitizeFilename(s.provider.Name()), hash[:2], hash[2:]+"."+s.format)
}

// Speak synthesizes text (or reuses a cached file) and plays it
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.cacheFilePath(text)
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("failed to create speech cache directory: %w", err)
		}
		if err := s.provider.GenerateAudio(ctx, text, file); err != nil {
			os.Remove(file)
			return fmt.Errorf("speech synthesis with %s failed: %w", s.provider.Name(), err)
		}
	}

	return s.player.Play(ctx, file)
}

// ClearCache removes all cached speech files
func (s *Speaker) ClearCache() error {
	return os.RemoveAll(s.cacheDir)
}

// NoopSpeaker discards everything; used when speech output is disabled
type NoopSpeaker struct{}

// Speak does nothing
func (NoopSpeaker) Speak(ctx context.Context, text string) error {
	return nil
}
