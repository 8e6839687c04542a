package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Catalog groups model IDs by what minichat can use them for
type Catalog struct {
	Speech        []string // text-to-speech
	Transcription []string // speech-to-text
}

// Categorize sorts model IDs into speech and transcription models
func Categorize(ids []string) Catalog {
	var c Catalog
	for _, id := range ids {
		switch {
		case strings.Contains(id, "whisper") || strings.Contains(id, "transcribe"):
			c.Transcription = append(c.Transcription, id)
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		}
	}
	sort.Strings(c.Speech)
	sort.Strings(c.Transcription)
	return c
}

// ListAvailableModels writes the speech related models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .minichat.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	catalog := Categorize(ids)

	fmt.Fprintln(w, "Available OpenAI Models:")
	printSection(w, "Text-to-Speech (--openai-model)", catalog.Speech)
	printSection(w, "Speech Recognition (stt.whisper_model)", catalog.Transcription)
	return nil
}

func printSection(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  No models found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
