package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// WhisperRecognizer transcribes audio with the OpenAI transcription API
type WhisperRecognizer struct {
	client   *openai.Client
	model    string
	language string
}

// NewWhisperRecognizer creates a recognizer using the OpenAI API key from config
func NewWhisperRecognizer(config *Config) (*WhisperRecognizer, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for whisper speech recognition")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.WhisperModel
	if model == "" {
		model = openai.Whisper1
	}

	return &WhisperRecognizer{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    model,
		language: config.Language,
	}, nil
}

// Transcribe sends wav to the transcription endpoint
func (w *WhisperRecognizer) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", ErrNoSpeech
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: "speech.wav",
		Reader:   bytes.NewReader(wav),
		Language: w.language,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Name returns the recognizer name
func (w *WhisperRecognizer) Name() string {
	return "whisper"
}
