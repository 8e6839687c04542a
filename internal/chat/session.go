// Package chat wires the responder to the transcript and to the speech
// input and output adapters. Every failure ends up as a transcript line.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"codeberg.org/snonux/minichat/internal/responder"
	"codeberg.org/snonux/minichat/internal/speech"
	"codeberg.org/snonux/minichat/internal/transcript"
)

const (
	// WelcomeMessage is the first bot line of every session
	WelcomeMessage = "Welcome! Type your question or use the voice button to speak."
	// ListeningMessage is shown while voice input is being captured
	ListeningMessage = "Listening..."
	// NotUnderstood replaces the query when no speech was recognized
	NotUnderstood = "I didn't catch that. Please try again."
)

// Speaker reads a reply aloud
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Listener captures one spoken query
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Session is one chat window's worth of state
type Session struct {
	responder  *responder.Responder
	transcript *transcript.Transcript
	speaker    Speaker
	listener   Listener
}

// New creates a session. A nil listener disables voice input.
func New(r *responder.Responder, t *transcript.Transcript, speaker Speaker, listener Listener) *Session {
	return &Session{
		responder:  r,
		transcript: t,
		speaker:    speaker,
		listener:   listener,
	}
}

// Transcript returns the session transcript
func (s *Session) Transcript() *transcript.Transcript {
	return s.transcript
}

// Responder returns the session responder
func (s *Session) Responder() *responder.Responder {
	return s.responder
}

// VoiceEnabled reports whether a listener is configured
func (s *Session) VoiceEnabled() bool {
	return s.listener != nil
}

// Welcome appends the greeting
func (s *Session) Welcome() {
	s.transcript.Append(transcript.Bot, WelcomeMessage)
}

// SendText answers a typed query. Empty input is ignored.
func (s *Session) SendText(ctx context.Context, input string) {
	if input == "" {
		return
	}
	s.transcript.Append(transcript.User, input)
	s.reply(ctx, input)
}

// SendVoice listens for a spoken query and answers it
func (s *Session) SendVoice(ctx context.Context) {
	if s.listener == nil {
		s.systemError(errors.New("voice input is disabled"))
		return
	}

	s.transcript.Append(transcript.System, ListeningMessage)

	query, err := s.listener.Listen(ctx)
	switch {
	case errors.Is(err, speech.ErrNoSpeech):
		query = NotUnderstood
	case err != nil:
		s.systemError(err)
		return
	}

	s.transcript.Append(transcript.Voice, query)
	s.reply(ctx, query)
}

// LoadResponses loads a responses file and reports the outcome as a line
func (s *Session) LoadResponses(path string) error {
	n, err := s.responder.LoadFile(path)
	switch {
	case errors.Is(err, responder.ErrFileNotFound):
		s.transcript.Append(transcript.System, fmt.Sprintf("Error: File '%s' not found.", path))
		return err
	case err != nil:
		s.transcript.Append(transcript.System, fmt.Sprintf("Error reading file: %v", err))
		return err
	}

	log.Printf("Loaded %d responses from %s", n, path)
	s.transcript.Append(transcript.System, fmt.Sprintf("Responses loaded successfully from file '%s'.", path))
	return nil
}

// WatchResponses reloads path whenever it changes, until ctx is done
func (s *Session) WatchResponses(ctx context.Context, path string) error {
	return responder.Watch(ctx, path, func() {
		_ = s.LoadResponses(path)
	})
}

func (s *Session) reply(ctx context.Context, query string) {
	answer := s.responder.Respond(query)
	s.transcript.Append(transcript.Bot, answer)

	if s.speaker == nil {
		return
	}
	if err := s.speaker.Speak(ctx, answer); err != nil {
		log.Printf("Warning: speech output failed: %v", err)
		s.transcript.Append(transcript.System, fmt.Sprintf("Error: speech output failed: %v", err))
	}
}

func (s *Session) systemError(err error) {
	s.transcript.Append(transcript.System, fmt.Sprintf("Error: %v", err))
}
