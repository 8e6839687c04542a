//go:build !portaudio

package speech

import (
	"context"
	"log/slog"
)

// MicrophoneAvailable reports whether this build can capture audio
const MicrophoneAvailable = false

// Microphone stub when portaudio is not available
type Microphone struct {
	config *Config
	logger *slog.Logger
}

// NewMicrophone creates a microphone capturer
func NewMicrophone(config *Config, logger *slog.Logger) *Microphone {
	return &Microphone{config: config, logger: logger}
}

// Capture always fails without portaudio support
func (m *Microphone) Capture(_ context.Context) ([]byte, error) {
	return nil, ErrNoMicrophone
}
