//go:build portaudio

package speech

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// MicrophoneAvailable reports whether this build can capture audio
const MicrophoneAvailable = true

// Microphone records one utterance from the default input device
type Microphone struct {
	config *Config
	logger *slog.Logger
}

// NewMicrophone creates a microphone capturer
func NewMicrophone(config *Config, logger *slog.Logger) *Microphone {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Microphone{config: config, logger: logger}
}

// Capture opens the input stream, records until the utterance ends and
// returns it as WAV. It returns ErrNoSpeech if nobody speaks in time.
func (m *Microphone) Capture(ctx context.Context) ([]byte, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	frame := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.config.SampleRate), len(frame), frame)
	if err != nil {
		return nil, fmt.Errorf("opening input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting input stream: %w", err)
	}
	defer stream.Stop()

	m.logger.Info("microphone listening", "sampleRate", m.config.SampleRate)

	endpointer := NewEndpointer(m.config)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := stream.Read(); err != nil && err != portaudio.InputOverflowed {
			return nil, fmt.Errorf("reading from input stream: %w", err)
		}

		switch endpointer.Feed(frame) {
		case TimedOut:
			m.logger.Info("no speech before timeout")
			return nil, ErrNoSpeech
		case Done:
			samples := endpointer.Samples()
			m.logger.Info("utterance captured", "samples", len(samples))
			return EncodeWAV(samples, m.config.SampleRate), nil
		}
	}
}
