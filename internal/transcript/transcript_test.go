package transcript

import (
	"sync"
	"testing"
)

func TestLineString(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want string
	}{
		{User, "hello", "You: hello"},
		{Voice, "hello", "You (via Voice): hello"},
		{Bot, "Hi there!", "Chatbot: Hi there!"},
		{System, "Listening...", "Listening..."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := (Line{Kind: tt.kind, Text: tt.text}).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendKeepsOrder(t *testing.T) {
	tr := New()
	tr.Append(User, "one")
	tr.Append(Bot, "two")
	tr.Append(System, "three")

	lines := tr.Lines()
	if len(lines) != 3 || tr.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"one", "two", "three"} {
		if lines[i].Text != want {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, want)
		}
		if lines[i].At.IsZero() {
			t.Errorf("line %d has no timestamp", i)
		}
	}

	// Lines returns a copy
	lines[0].Text = "changed"
	if tr.Lines()[0].Text != "one" {
		t.Error("Lines() must not expose internal storage")
	}
}

func TestSubscribe(t *testing.T) {
	tr := New()
	tr.Append(System, "before")

	var got []string
	tr.Subscribe(func(l Line) { got = append(got, "a:"+l.String()) })
	tr.Subscribe(func(l Line) { got = append(got, "b:"+l.String()) })

	tr.Append(User, "hi")

	want := []string{"a:You: hi", "b:You: hi"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSubscriberMayAppend(t *testing.T) {
	tr := New()
	tr.Subscribe(func(l Line) {
		if l.Kind == User {
			tr.Append(System, "echo")
		}
	})
	tr.Append(User, "hi")

	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestAppendConcurrent(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(Bot, "x")
		}()
	}
	wg.Wait()

	if tr.Len() != 50 {
		t.Errorf("Len() = %d, want 50", tr.Len())
	}
}

func TestSubscribersSeeLinesInOrder(t *testing.T) {
	tr := New()

	var mu sync.Mutex
	var seen []Line
	tr.Subscribe(func(l Line) {
		mu.Lock()
		seen = append(seen, l)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Append(Bot, "x")
			}
		}()
	}
	wg.Wait()

	lines := tr.Lines()
	if len(seen) != len(lines) {
		t.Fatalf("subscriber saw %d lines, transcript has %d", len(seen), len(lines))
	}
	for i := range lines {
		if seen[i] != lines[i] {
			t.Fatalf("line %d delivered out of order", i)
		}
	}
}

func TestSubscriberAppendIsDeliveredAfterCurrentLine(t *testing.T) {
	tr := New()
	tr.Subscribe(func(l Line) {
		if l.Kind == User {
			tr.Append(System, "echo")
		}
	})

	var got []string
	tr.Subscribe(func(l Line) { got = append(got, l.Text) })

	tr.Append(User, "hi")

	if len(got) != 2 || got[0] != "hi" || got[1] != "echo" {
		t.Errorf("got %v, want [hi echo]", got)
	}
}
