package audio

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProvider implements Provider interface for testing
type mockProvider struct {
	name          string
	generateErr   error
	availableErr  error
	generateCalls int
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.generateCalls++
	return m.generateErr
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "espeak" {
		t.Errorf("Expected provider 'espeak', got '%s'", config.Provider)
	}

	if config.OutputFormat != "wav" {
		t.Errorf("Expected output format 'wav', got '%s'", config.OutputFormat)
	}

	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("Expected OpenAI model 'gpt-4o-mini-tts', got '%s'", config.OpenAIModel)
	}

	if config.OpenAIVoice != "alloy" {
		t.Errorf("Expected OpenAI voice 'alloy', got '%s'", config.OpenAIVoice)
	}

	if config.OpenAISpeed != 1.0 {
		t.Errorf("Expected OpenAI speed 1.0, got %f", config.OpenAISpeed)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "openai provider without key",
			config: &Config{
				Provider: "openai",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "unknown provider",
			config: &Config{
				Provider: "unknown",
			},
			wantErr: true,
			errMsg:  "unknown audio provider: unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestNewProviderOpenAI(t *testing.T) {
	provider, err := NewProvider(&Config{Provider: "openai", OpenAIKey: "test-key", OpenAIModel: "tts-1"})
	if err != nil {
		t.Fatalf("NewProvider() unexpected error: %v", err)
	}

	// With espeak-ng installed the OpenAI provider gets an offline fallback
	if checkESpeakInstalled() == nil {
		if !strings.HasPrefix(provider.Name(), "openai (fallback: espeak-ng") {
			t.Errorf("Name() = %q, want openai with espeak fallback", provider.Name())
		}
	} else if provider.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", provider.Name())
	}
}

func TestNewProviderESpeak(t *testing.T) {
	provider, err := NewProvider(nil)
	if checkESpeakInstalled() != nil {
		if err == nil {
			t.Fatal("NewProvider(nil) expected error without espeak-ng")
		}
		t.Skip("espeak-ng not installed, skipping test")
	}
	if err != nil {
		t.Fatalf("NewProvider(nil) unexpected error: %v", err)
	}
	if provider.Name() != "espeak-ng" {
		t.Errorf("Name() = %q, want espeak-ng", provider.Name())
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Test successful primary
	ctx := context.Background()
	err := provider.GenerateAudio(ctx, "test", "output.mp3")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 0 {
		t.Errorf("Expected 0 fallback calls, got %d", fallback.generateCalls)
	}

	// Test primary failure, fallback success
	primary.generateErr = errors.New("primary failed")
	primary.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.mp3")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 1 {
		t.Errorf("Expected 1 fallback call, got %d", fallback.generateCalls)
	}

	// Test both fail
	fallback.generateErr = errors.New("fallback failed")
	primary.generateCalls = 0
	fallback.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.mp3")
	if err == nil {
		t.Error("GenerateAudio() expected error when both providers fail")
	}
}

func TestProviderWithFallbackName(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	expected := "primary (fallback: fallback)"
	if provider.Name() != expected {
		t.Errorf("Name() = %v, want %v", provider.Name(), expected)
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Both available
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error: %v", err)
	}

	// Primary unavailable, fallback available
	primary.availableErr = errors.New("primary unavailable")
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error when fallback available: %v", err)
	}

	// Both unavailable
	fallback.availableErr = errors.New("fallback unavailable")
	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error when both providers unavailable")
	}
}

func TestBreakerProvider(t *testing.T) {
	inner := &mockProvider{name: "remote", generateErr: errors.New("timeout")}
	provider := NewBreakerProvider(inner)
	ctx := context.Background()

	// Default breaker trips after 3 consecutive failures
	for i := 0; i < 3; i++ {
		if err := provider.GenerateAudio(ctx, "hello", "out.wav"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if inner.generateCalls != 3 {
		t.Fatalf("Expected 3 calls, got %d", inner.generateCalls)
	}

	err := provider.GenerateAudio(ctx, "hello", "out.wav")
	if err == nil || !strings.Contains(err.Error(), "temporarily disabled") {
		t.Errorf("Expected breaker error, got %v", err)
	}
	if inner.generateCalls != 3 {
		t.Errorf("Open breaker must not call provider, got %d calls", inner.generateCalls)
	}
	if provider.IsAvailable() == nil {
		t.Error("IsAvailable() should fail while breaker is open")
	}
	if provider.Name() != "remote" {
		t.Errorf("Name() = %q, want remote", provider.Name())
	}
}
