// Package transcript holds the in-memory, append-only chat history shown
// in the chat window.
package transcript

import (
	"sync"
	"time"
)

// Kind identifies who produced a line
type Kind int

const (
	// User is text typed by the user
	User Kind = iota
	// Voice is user speech after transcription
	Voice
	// Bot is a chatbot reply
	Bot
	// System is a status or error message
	System
)

// Prefix returns the label rendered in front of a line of this kind
func (k Kind) Prefix() string {
	switch k {
	case User:
		return "You: "
	case Voice:
		return "You (via Voice): "
	case Bot:
		return "Chatbot: "
	default:
		return ""
	}
}

// Line is a single transcript entry
type Line struct {
	Kind Kind
	Text string
	At   time.Time
}

// String renders the line the way the chat window shows it
func (l Line) String() string {
	return l.Kind.Prefix() + l.Text
}

// Transcript is an ordered, append-only list of lines. It is safe for
// concurrent use. Subscribers are called synchronously, in registration
// order, and always see lines in the same order as Lines. While one
// goroutine is delivering, lines appended elsewhere (or from inside a
// subscriber) are queued and delivered by that goroutine.
type Transcript struct {
	mu          sync.Mutex
	lines       []Line
	subscribers []func(Line)
	pending     []Line
	notifying   bool
}

// New creates an empty transcript
func New() *Transcript {
	return &Transcript{}
}

// Append adds a line and notifies subscribers
func (t *Transcript) Append(kind Kind, text string) Line {
	line := Line{Kind: kind, Text: text, At: time.Now()}

	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.pending = append(t.pending, line)
	if t.notifying {
		t.mu.Unlock()
		return line
	}
	t.notifying = true

	for len(t.pending) > 0 {
		next := t.pending[0]
		t.pending = t.pending[1:]
		subs := make([]func(Line), len(t.subscribers))
		copy(subs, t.subscribers)
		t.mu.Unlock()

		for _, fn := range subs {
			fn(next)
		}

		t.mu.Lock()
	}
	t.notifying = false
	t.mu.Unlock()

	return line
}

// Subscribe registers fn to receive every future line
func (t *Transcript) Subscribe(fn func(Line)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// Lines returns a copy of all lines in order
func (t *Transcript) Lines() []Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Line(nil), t.lines...)
}

// Len returns the number of lines
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}
