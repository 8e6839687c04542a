package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/minichat/internal/resilience"
)

// ErrNoSpeech is returned when nothing intelligible was captured
var ErrNoSpeech = errors.New("no speech recognized")

// ErrNoMicrophone is returned by Capture in builds without portaudio
var ErrNoMicrophone = errors.New("microphone not available: rebuild with -tags portaudio")

// Recognizer converts a WAV clip to text
type Recognizer interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
	Name() string
}

// Capturer records a single utterance and returns it as WAV
type Capturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Config holds speech-to-text settings
type Config struct {
	Provider string // "whisper", "gemini" or "none"
	Language string // ISO-639-1 hint, e.g. "en"

	OpenAIKey     string
	OpenAIBaseURL string
	WhisperModel  string

	GeminiKey     string
	GeminiBaseURL string
	GeminiModel   string

	// Capture settings
	SampleRate       int
	SilenceThreshold int16
	TrailingSilence  time.Duration
	MaxDuration      time.Duration
	ListenTimeout    time.Duration // how long to wait for speech to start
}

// DefaultConfig returns default speech-to-text settings
func DefaultConfig() *Config {
	return &Config{
		Provider:         "whisper",
		Language:         "en",
		WhisperModel:     "whisper-1",
		GeminiModel:      "gemini-2.0-flash",
		SampleRate:       16000,
		SilenceThreshold: 500,
		TrailingSilence:  time.Second,
		MaxDuration:      10 * time.Second,
		ListenTimeout:    8 * time.Second,
	}
}

// NewRecognizer creates the configured recognizer guarded by a circuit breaker
func NewRecognizer(ctx context.Context, config *Config) (Recognizer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		rec Recognizer
		err error
	)
	switch config.Provider {
	case "whisper", "openai":
		rec, err = NewWhisperRecognizer(config)
	case "gemini":
		rec, err = NewGeminiRecognizer(ctx, config)
	default:
		return nil, fmt.Errorf("unknown speech recognizer: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerRecognizer(rec), nil
}

// BreakerRecognizer stops calling a failing recognizer for a while
type BreakerRecognizer struct {
	recognizer Recognizer
	breaker    *gobreaker.CircuitBreaker
}

// NewBreakerRecognizer wraps rec in a circuit breaker
func NewBreakerRecognizer(rec Recognizer) *BreakerRecognizer {
	return &BreakerRecognizer{
		recognizer: rec,
		breaker:    resilience.NewBreaker(resilience.DefaultBreakerConfig("stt-" + rec.Name())),
	}
}

// Transcribe forwards to the wrapped recognizer unless the breaker is open.
// ErrNoSpeech does not count as a failure.
func (b *BreakerRecognizer) Transcribe(ctx context.Context, wav []byte) (string, error) {
	var noSpeech bool
	res, err := b.breaker.Execute(func() (interface{}, error) {
		text, err := b.recognizer.Transcribe(ctx, wav)
		if errors.Is(err, ErrNoSpeech) {
			noSpeech = true
			return "", nil
		}
		return text, err
	})
	if noSpeech {
		return "", ErrNoSpeech
	}
	if resilience.IsOpen(err) {
		return "", fmt.Errorf("%s temporarily disabled after repeated failures: %w", b.recognizer.Name(), err)
	}
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// Name returns the wrapped recognizer name
func (b *BreakerRecognizer) Name() string {
	return b.recognizer.Name()
}
