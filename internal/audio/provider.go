package audio

import (
	"context"
	"fmt"
	"log"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/minichat/internal/resilience"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider     string // Provider name: "espeak", "openai" or "none"
	OutputFormat string // Output format: "wav" or "mp3"
	CacheDir     string // Directory for generated speech files

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // Optional API base URL, mostly for tests
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "espeak",
		OutputFormat:      "wav",
		ESpeakVoice:       "en",
		ESpeakSpeed:       160,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "You are a friendly desktop assistant. Speak clearly and warmly at a relaxed pace.",
	}
}

// NewProvider creates the appropriate audio provider based on configuration.
// The OpenAI provider is guarded by a circuit breaker and falls back to
// espeak-ng when it is installed.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	espeakConfig := DefaultConfig()
	if config.ESpeakVoice != "" {
		espeakConfig.Voice = config.ESpeakVoice
	}
	if config.ESpeakSpeed > 0 {
		espeakConfig.Speed = config.ESpeakSpeed
	}

	switch config.Provider {
	case "espeak", "espeak-ng":
		return NewESpeakProvider(espeakConfig)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		primary, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		guarded := NewBreakerProvider(primary)

		fallback, err := NewESpeakProvider(espeakConfig)
		if err != nil {
			log.Printf("Warning: no offline speech fallback: %v", err)
			return guarded, nil
		}
		return NewProviderWithFallback(guarded, fallback), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err != nil {
		log.Printf("Primary provider (%s) failed: %v. Falling back to %s",
			p.primary.Name(), err, p.fallback.Name())

		return p.fallback.GenerateAudio(ctx, text, outputFile)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// BreakerProvider stops calling a failing remote provider for a while
type BreakerProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider in a circuit breaker
func NewBreakerProvider(provider Provider) *BreakerProvider {
	return &BreakerProvider{
		provider: provider,
		breaker:  resilience.NewBreaker(resilience.DefaultBreakerConfig("tts-" + provider.Name())),
	}
}

// GenerateAudio forwards to the wrapped provider unless the breaker is open
func (p *BreakerProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.provider.GenerateAudio(ctx, text, outputFile)
	})
	if resilience.IsOpen(err) {
		return fmt.Errorf("%s temporarily disabled after repeated failures: %w", p.provider.Name(), err)
	}
	return err
}

// Name returns the wrapped provider name
func (p *BreakerProvider) Name() string {
	return p.provider.Name()
}

// IsAvailable reports the wrapped provider availability, or an error while the breaker is open
func (p *BreakerProvider) IsAvailable() error {
	if p.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s circuit breaker is open", p.provider.Name())
	}
	return p.provider.IsAvailable()
}
