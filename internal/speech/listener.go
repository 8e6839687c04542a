package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Listener captures one utterance and transcribes it
type Listener struct {
	capturer   Capturer
	recognizer Recognizer
	timeout    time.Duration
}

// NewListener creates a listener. A zero timeout means no overall deadline.
func NewListener(capturer Capturer, recognizer Recognizer, timeout time.Duration) *Listener {
	return &Listener{
		capturer:   capturer,
		recognizer: recognizer,
		timeout:    timeout,
	}
}

// Listen blocks until speech was captured and transcribed. Silence and
// empty transcripts are reported as ErrNoSpeech.
func (l *Listener) Listen(ctx context.Context) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	wav, err := l.capturer.Capture(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSpeech) || errors.Is(err, context.DeadlineExceeded) {
			return "", ErrNoSpeech
		}
		return "", fmt.Errorf("audio capture failed: %w", err)
	}

	text, err := l.recognizer.Transcribe(ctx, wav)
	if err != nil {
		if errors.Is(err, ErrNoSpeech) {
			return "", ErrNoSpeech
		}
		return "", fmt.Errorf("speech recognition with %s failed: %w", l.recognizer.Name(), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
