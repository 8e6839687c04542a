package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/minichat/internal/responder"
	"codeberg.org/snonux/minichat/internal/speech"
	"codeberg.org/snonux/minichat/internal/testutil"
	"codeberg.org/snonux/minichat/internal/transcript"
)

func newSession(speaker Speaker, listener Listener) (*Session, *transcript.Transcript) {
	tr := transcript.New()
	return New(responder.New(), tr, speaker, listener), tr
}

func lineStrings(tr *transcript.Transcript) []string {
	var out []string
	for _, l := range tr.Lines() {
		out = append(out, l.String())
	}
	return out
}

func assertLines(t *testing.T, tr *transcript.Transcript, want ...string) {
	t.Helper()
	got := lineStrings(tr)
	if len(got) != len(want) {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWelcome(t *testing.T) {
	s, tr := newSession(nil, nil)
	s.Welcome()
	assertLines(t, tr, "Chatbot: "+WelcomeMessage)
}

func TestSendText(t *testing.T) {
	speaker := &testutil.MockSpeaker{}
	s, tr := newSession(speaker, nil)

	s.SendText(context.Background(), "Hello")
	s.SendText(context.Background(), "")
	s.SendText(context.Background(), "what is the weather")

	assertLines(t, tr,
		"You: Hello",
		"Chatbot: Hi there! How can I assist you?",
		"You: what is the weather",
		"Chatbot: "+responder.DefaultResponse,
	)

	spoken := speaker.Calls()
	if len(spoken) != 2 || spoken[0] != "Hi there! How can I assist you?" {
		t.Errorf("spoken = %q", spoken)
	}
}

func TestSendTextSpeakFailure(t *testing.T) {
	speaker := &testutil.MockSpeaker{Err: errors.New("no audio device")}
	s, tr := newSession(speaker, nil)

	s.SendText(context.Background(), "bye")

	assertLines(t, tr,
		"You: bye",
		"Chatbot: Goodbye! Have a nice day!",
		"Error: speech output failed: no audio device",
	)
}

func TestSendVoice(t *testing.T) {
	tests := []struct {
		name     string
		listener *testutil.MockListener
		want     []string
		spoken   int
	}{
		{
			name:     "recognized",
			listener: &testutil.MockListener{Results: []string{"How are you"}},
			want: []string{
				"Listening...",
				"You (via Voice): How are you",
				"Chatbot: I'm just a chatbot, but I'm here to help!",
			},
			spoken: 1,
		},
		{
			name:     "not understood",
			listener: &testutil.MockListener{Errors: []error{speech.ErrNoSpeech}},
			want: []string{
				"Listening...",
				"You (via Voice): " + NotUnderstood,
				"Chatbot: " + responder.DefaultResponse,
			},
			spoken: 1,
		},
		{
			name:     "service failure",
			listener: &testutil.MockListener{Errors: []error{errors.New("whisper transcription failed: 500")}},
			want: []string{
				"Listening...",
				"Error: whisper transcription failed: 500",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker := &testutil.MockSpeaker{}
			s, tr := newSession(speaker, tt.listener)

			s.SendVoice(context.Background())

			assertLines(t, tr, tt.want...)
			if got := len(speaker.Calls()); got != tt.spoken {
				t.Errorf("spoken %d times, want %d", got, tt.spoken)
			}
		})
	}
}

func TestSendVoiceDisabled(t *testing.T) {
	s, tr := newSession(nil, nil)
	if s.VoiceEnabled() {
		t.Fatal("VoiceEnabled() = true without a listener")
	}
	s.SendVoice(context.Background())
	assertLines(t, tr, "Error: voice input is disabled")
}

func TestLoadResponses(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteResponsesFile(t, dir, map[string]string{"What is Go": "A programming language."})
	bad := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")

	s, tr := newSession(nil, nil)

	if err := s.LoadResponses(good); err != nil {
		t.Fatalf("LoadResponses(good) error = %v", err)
	}
	s.SendText(context.Background(), "WHAT IS GO")

	if err := s.LoadResponses(missing); !errors.Is(err, responder.ErrFileNotFound) {
		t.Errorf("LoadResponses(missing) error = %v", err)
	}
	// A failed load leaves only the built-in table
	s.SendText(context.Background(), "what is go")

	if err := s.LoadResponses(bad); err == nil {
		t.Error("LoadResponses(bad) expected error")
	}

	lines := lineStrings(tr)
	want := []string{
		"Responses loaded successfully from file '" + good + "'.",
		"You: WHAT IS GO",
		"Chatbot: A programming language.",
		"Error: File '" + missing + "' not found.",
		"You: what is go",
		"Chatbot: " + responder.DefaultResponse,
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "Error reading file: ") {
		t.Errorf("last line = %q, want read error", last)
	}
}

func TestWatchResponses(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteResponsesFile(t, dir, map[string]string{"ping": "pong"})

	s, _ := newSession(nil, nil)
	if err := s.LoadResponses(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.WatchResponses(ctx, path) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		testutil.WriteResponsesFile(t, dir, map[string]string{"ping": "pong again"})
		if s.Responder().Respond("ping") == "pong again" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if got := s.Responder().Respond("ping"); got != "pong again" {
		t.Errorf("Respond(ping) after change = %q", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchResponses() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WatchResponses did not stop")
	}
}
