package speech

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiPrompt = "Transcribe the speech in this audio clip exactly as spoken. " +
	"Reply with the transcript only, without quotes or commentary. " +
	"If there is no intelligible speech, reply with an empty message."

// GeminiRecognizer transcribes audio with a Gemini model
type GeminiRecognizer struct {
	client   *genai.Client
	model    string
	language string
}

// NewGeminiRecognizer creates a recognizer using the Gemini API key from config
func NewGeminiRecognizer(ctx context.Context, config *Config) (*GeminiRecognizer, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for gemini speech recognition")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.GeminiBaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiRecognizer{
		client:   client,
		model:    model,
		language: config.Language,
	}, nil
}

// Transcribe sends wav inline together with a transcription prompt
func (g *GeminiRecognizer) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", ErrNoSpeech
	}

	prompt := geminiPrompt
	if g.language != "" {
		prompt += fmt.Sprintf(" The expected language is %q.", g.language)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(wav, "audio/wav"),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Name returns the recognizer name
func (g *GeminiRecognizer) Name() string {
	return "gemini"
}
