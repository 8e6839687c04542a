package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/minichat/internal/transcript"
)

// TranscriptView is a widget that displays the chat transcript
type TranscriptView struct {
	widget.BaseWidget

	text       *widget.RichText
	scrollView *container.Scroll

	mu       sync.Mutex
	maxLines int
}

// NewTranscriptView creates an empty transcript view
func NewTranscriptView() *TranscriptView {
	v := &TranscriptView{maxLines: 1000}

	v.text = widget.NewRichText()
	v.text.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewVScroll(v.text)
	v.scrollView.SetMinSize(fyne.NewSize(0, 300))

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *TranscriptView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.scrollView)
}

// Append adds a line and scrolls to the bottom. Must run on the UI goroutine.
func (v *TranscriptView) Append(line transcript.Line) {
	v.mu.Lock()
	segments := append(v.text.Segments, segmentsFor(line)...)
	if len(segments) > v.maxLines {
		segments = segments[len(segments)-v.maxLines:]
	}
	v.text.Segments = segments
	v.mu.Unlock()

	v.text.Refresh()
	v.scrollView.ScrollToBottom()
}

// Clear removes all lines. Must run on the UI goroutine.
func (v *TranscriptView) Clear() {
	v.mu.Lock()
	v.text.Segments = nil
	v.mu.Unlock()

	v.text.Refresh()
	v.scrollView.ScrollToTop()
}

// segmentsFor renders one transcript line as a rich text paragraph
func segmentsFor(line transcript.Line) []widget.RichTextSegment {
	style := widget.RichTextStyleParagraph

	switch line.Kind {
	case transcript.User, transcript.Voice:
		style.ColorName = theme.ColorNamePrimary
		style.TextStyle = fyne.TextStyle{Bold: true}
	case transcript.Bot:
		style.ColorName = theme.ColorNameSuccess
	default:
		style.ColorName = theme.ColorNameForeground
	}

	return []widget.RichTextSegment{
		&widget.TextSegment{Text: line.String(), Style: style},
	}
}
