package gui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/minichat/internal"
	"codeberg.org/snonux/minichat/internal/chat"
	"codeberg.org/snonux/minichat/internal/transcript"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	input       *CustomEntry
	view        *TranscriptView
	sendButton  *ttwidget.Button
	voiceButton *ttwidget.Button
	loadButton  *ttwidget.Button
	helpButton  *ttwidget.Button
	statusLabel *widget.Label

	session *chat.Session
	queue   *ActionQueue
	config  *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	ResponsesFile string
	Watch         bool

	// Notices are shown as system lines after the welcome message, e.g.
	// why speech output is unavailable
	Notices []string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		ResponsesFile: "responses.json",
	}
}

// New creates a new GUI application around session
func New(session *chat.Session, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.minichat")
	myApp.SetIcon(theme.MailReplyIcon())

	a := &Application{
		app:     myApp,
		session: session,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}

	a.queue = NewActionQueue(ctx)
	a.queue.SetCallback(func(current *Action, pending int) {
		voiceIdle := voiceButtonEnabled(session.VoiceEnabled(), a.queue.Outstanding(ActionVoice))
		fyne.Do(func() {
			a.statusLabel.SetText(StatusText(current, pending))
			if voiceIdle {
				a.voiceButton.Enable()
			} else {
				a.voiceButton.Disable()
			}
		})
	})

	a.setupUI()

	// Every transcript line reaches the view through the UI goroutine
	session.Transcript().Subscribe(func(line transcript.Line) {
		fyne.Do(func() {
			a.view.Append(line)
		})
	})

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow("MINI CHATBOT")
	a.window.Resize(fyne.NewSize(1000, 800))

	a.view = NewTranscriptView()

	a.input = NewCustomEntry()
	a.input.SetPlaceHolder("Type your question...")
	a.input.OnSubmitted = func(string) {
		a.onSend()
	}
	a.input.SetOnEscape(func() {
		a.input.SetText("")
	})
	a.input.SetOnShortcut(a.handleShortcut)

	// Buttons (tooltips are set after the tooltip layer exists)
	a.sendButton = ttwidget.NewButtonWithIcon("Send", theme.MailSendIcon(), a.onSend)
	a.sendButton.Importance = widget.HighImportance
	a.voiceButton = ttwidget.NewButtonWithIcon("Voice", theme.MediaRecordIcon(), a.onVoice)
	a.loadButton = ttwidget.NewButtonWithIcon("Load File", theme.FolderOpenIcon(), a.onLoadFile)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	if !a.session.VoiceEnabled() {
		a.voiceButton.Disable()
	}

	buttons := container.NewHBox(a.sendButton, a.voiceButton, a.loadButton, a.helpButton)
	inputSection := container.NewBorder(nil, nil, nil, buttons, a.input)

	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewBorder(
		nil,
		container.NewVBox(
			widget.NewSeparator(),
			inputSection,
			a.statusLabel,
		),
		nil, nil,
		a.view,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.queue.Stop()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.sendButton.SetToolTip("Send question (Enter)")
	a.voiceButton.SetToolTip("Ask by voice (Ctrl+M)")
	a.loadButton.SetToolTip("Load responses file (Ctrl+O)")
	a.helpButton.SetToolTip("Show hotkeys")
}

// Run shows the window, greets the user and loads the configured
// responses file, then blocks until the window is closed
func (a *Application) Run() {
	a.session.Welcome()
	for _, notice := range a.config.Notices {
		a.session.Transcript().Append(transcript.System, notice)
	}

	if path := a.config.ResponsesFile; path != "" {
		a.enqueue(ActionLoad, func(ctx context.Context) {
			_ = a.session.LoadResponses(path)
		})
		if a.config.Watch {
			a.startWatcher(path)
		}
	}

	a.window.Canvas().Focus(a.input)
	a.window.ShowAndRun()
}

func (a *Application) startWatcher(path string) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.session.WatchResponses(a.ctx, path); err != nil {
			log.Printf("Warning: not watching %s: %v", path, err)
			a.session.Transcript().Append(transcript.System, fmt.Sprintf("Error: %v", err))
		}
	}()
}

// enqueue schedules work off the UI goroutine
func (a *Application) enqueue(kind ActionKind, run func(ctx context.Context)) {
	if _, err := a.queue.Add(kind, run); err != nil {
		a.session.Transcript().Append(transcript.System, fmt.Sprintf("Error: %v", err))
	}
}

// onSend handles the Send button and the Enter key
func (a *Application) onSend() {
	text := a.input.Text
	a.input.SetText("")
	if text == "" {
		return
	}

	a.enqueue(ActionText, func(ctx context.Context) {
		a.session.SendText(ctx, text)
	})
}

// voiceButtonEnabled reports whether a new voice action may be started.
// Only one voice action is queued or running at a time.
func voiceButtonEnabled(voiceEnabled bool, outstandingVoice int) bool {
	return voiceEnabled && outstandingVoice == 0
}

// onVoice handles the Voice button
func (a *Application) onVoice() {
	if a.voiceButton.Disabled() {
		return
	}
	a.voiceButton.Disable()

	a.enqueue(ActionVoice, func(ctx context.Context) {
		a.session.SendVoice(ctx)
	})
}

// onLoadFile lets the user pick a responses file
func (a *Application) onLoadFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		a.enqueue(ActionLoad, func(ctx context.Context) {
			_ = a.session.LoadResponses(path)
		})
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml"}))
	fileDialog.Resize(fyne.NewSize(800, 600))
	fileDialog.Show()
}

// onShowHotkeys shows the keyboard shortcut help
func (a *Application) onShowHotkeys() {
	hotkeys := fmt.Sprintf(`## minichat v%s

- **Enter** Send question
- **Esc** Clear input
- **Ctrl+M** Ask by voice
- **Ctrl+O** Load responses file

Responses files are JSON or YAML with a *questions_and_answers* list of
*You*/*Chatbot* pairs. Questions match case-insensitively.`, internal.Version)

	content := widget.NewRichTextFromMarkdown(strings.TrimSpace(hotkeys))
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(500, 300))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}

// setupKeyboardShortcuts registers the window-wide shortcuts
func (a *Application) setupKeyboardShortcuts() {
	for _, key := range []fyne.KeyName{fyne.KeyO, fyne.KeyM} {
		shortcut := &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierControl}
		a.window.Canvas().AddShortcut(shortcut, func(s fyne.Shortcut) {
			a.handleShortcut(s.(*desktop.CustomShortcut))
		})
	}
}

// handleShortcut runs the action bound to a Ctrl shortcut
func (a *Application) handleShortcut(s *desktop.CustomShortcut) {
	if s.Modifier != fyne.KeyModifierControl {
		return
	}
	switch s.KeyName {
	case fyne.KeyO:
		a.onLoadFile()
	case fyne.KeyM:
		a.onVoice()
	}
}
