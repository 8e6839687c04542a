//go:build !portaudio

package speech

import (
	"context"
	"errors"
	"testing"
)

func TestMicrophoneStub(t *testing.T) {
	m := NewMicrophone(DefaultConfig(), nil)
	_, err := m.Capture(context.Background())
	if !errors.Is(err, ErrNoMicrophone) {
		t.Errorf("Capture() error = %v, want ErrNoMicrophone", err)
	}
	if MicrophoneAvailable {
		t.Error("MicrophoneAvailable = true in a build without portaudio")
	}
}
