package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// MockSpeaker records spoken text
type MockSpeaker struct {
	mu     sync.Mutex
	Err    error
	Spoken []string
}

// Speak records text and returns the configured error
func (m *MockSpeaker) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
	return m.Err
}

// Calls returns a copy of everything spoken so far
func (m *MockSpeaker) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Spoken...)
}

// MockListener returns queued transcripts, one per Listen call
type MockListener struct {
	mu       sync.Mutex
	Results  []string
	Errors   []error
	CallsNum int
}

// Listen pops the next result or error
func (m *MockListener) Listen(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.CallsNum
	m.CallsNum++
	if i < len(m.Errors) && m.Errors[i] != nil {
		return "", m.Errors[i]
	}
	if i < len(m.Results) {
		return m.Results[i], nil
	}
	return "", fmt.Errorf("mock listener: no result queued for call %d", i+1)
}

// MockRecognizer mocks a speech-to-text engine
type MockRecognizer struct {
	Text  string
	Err   error
	Calls [][]byte
}

// Transcribe records the audio and returns the configured text
func (m *MockRecognizer) Transcribe(ctx context.Context, wav []byte) (string, error) {
	m.Calls = append(m.Calls, wav)
	return m.Text, m.Err
}

// Name returns the mock name
func (m *MockRecognizer) Name() string {
	return "mock-recognizer"
}

// MockCapturer returns a fixed audio clip
type MockCapturer struct {
	Audio []byte
	Err   error
	Calls int
}

// Capture returns the configured clip or error
func (m *MockCapturer) Capture(ctx context.Context) ([]byte, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

// MockProvider mocks a text-to-speech provider by writing fixed bytes
type MockProvider struct {
	ProviderName string
	Data         []byte
	GenerateErr  error
	AvailableErr error
	Generated    []string
}

// GenerateAudio writes Data into outputFile
func (m *MockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.Generated = append(m.Generated, text)
	if m.GenerateErr != nil {
		return m.GenerateErr
	}
	data := m.Data
	if data == nil {
		data = GenerateAudioData()
	}
	return os.WriteFile(outputFile, data, 0644)
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable returns the configured availability error
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// MockPlayer records played files
type MockPlayer struct {
	Err    error
	Played []string
}

// Play records the file
func (m *MockPlayer) Play(ctx context.Context, file string) error {
	m.Played = append(m.Played, file)
	return m.Err
}

// GenerateAudioData generates mock audio data
func GenerateAudioData() []byte {
	// Simple mock WAV header
	return []byte{'R', 'I', 'F', 'F', 0x24, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E'}
}
