package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/minichat/internal/audio"
	"codeberg.org/snonux/minichat/internal/batch"
	"codeberg.org/snonux/minichat/internal/chat"
	"codeberg.org/snonux/minichat/internal/cli"
	"codeberg.org/snonux/minichat/internal/gui"
	"codeberg.org/snonux/minichat/internal/models"
	"codeberg.org/snonux/minichat/internal/responder"
	"codeberg.org/snonux/minichat/internal/speech"
	"codeberg.org/snonux/minichat/internal/transcript"
)

// Processor wires flags and configuration into a chat session
type Processor struct {
	flags     *cli.Flags
	defaults  *cli.Flags
	responder *responder.Responder

	// notices collects non-fatal setup problems for display in the chat
	notices []string
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:     flags,
		defaults:  cli.NewFlags(),
		responder: responder.New(),
	}
}

// loadResponses loads the configured responses file for the command-line
// modes. A missing default file is not worth a warning.
func (p *Processor) loadResponses() {
	path := p.responsesFile()
	if _, err := p.responder.LoadFile(path); err != nil {
		if !errors.Is(err, responder.ErrFileNotFound) || path != p.defaults.ResponsesFile {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}

// Ask prints the reply to a single question and speaks it unless speech
// output is disabled
func (p *Processor) Ask(question string) error {
	p.loadResponses()

	answer := p.responder.Respond(question)
	fmt.Println(answer)

	speaker := p.newSpeaker()
	for _, notice := range p.notices {
		fmt.Fprintln(os.Stderr, notice)
	}
	if err := speaker.Speak(context.Background(), answer); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: speech output failed: %v\n", err)
	}
	return nil
}

// ProcessBatch answers every question in the batch file. Entries with an
// expected reply are checked, and any mismatch makes the run fail.
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	p.loadResponses()

	checked, failed := 0, 0
	for _, entry := range entries {
		answer := p.responder.Respond(entry.Question)
		fmt.Printf("%s%s\n%s%s\n", transcript.User.Prefix(), entry.Question, transcript.Bot.Prefix(), answer)

		if !entry.HasExpectation() {
			continue
		}
		checked++
		if answer != entry.Expected {
			failed++
			fmt.Printf("  ✗ expected: %s\n", entry.Expected)
		}
	}

	// Print summary
	fmt.Printf("\n=== Batch Summary ===\n")
	fmt.Printf("Questions: %d\n", len(entries))
	fmt.Printf("Checked: %d\n", checked)
	if failed > 0 {
		fmt.Printf("Mismatches: %d\n", failed)
	}
	fmt.Printf("=====================\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d checked replies did not match", failed, checked)
	}
	return nil
}

// ListModels prints the OpenAI speech models available for the API key
func (p *Processor) ListModels() error {
	lister := models.NewLister(cli.GetOpenAIKey(), viper.GetString("openai.base_url"))
	return lister.ListAvailableModels(context.Background(), os.Stdout)
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	session := p.NewSession(context.Background())

	guiConfig := &gui.Config{
		ResponsesFile: p.responsesFile(),
		Watch:         p.flags.Watch || viper.GetBool("responses.watch"),
		Notices:       p.notices,
	}

	// Create and run GUI application
	app := gui.New(session, guiConfig)
	app.Run()

	return nil
}

// NewSession builds a chat session with the configured speech adapters
func (p *Processor) NewSession(ctx context.Context) *chat.Session {
	speaker := p.newSpeaker()
	listener := p.newListener(ctx)
	return chat.New(p.responder, transcript.New(), speaker, listener)
}

// Notices returns setup problems collected while building the session
func (p *Processor) Notices() []string {
	return p.notices
}

func (p *Processor) notice(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Warning: %s", msg)
	p.notices = append(p.notices, "Error: "+msg)
}

// newSpeaker returns the configured speech output, or a silent one when
// speech is disabled or cannot be set up
func (p *Processor) newSpeaker() chat.Speaker {
	config := p.audioConfig()
	if p.flags.NoSpeech || config.Provider == "none" {
		return audio.NoopSpeaker{}
	}

	provider, err := audio.NewProvider(config)
	if err != nil {
		p.notice("speech output disabled: %v", err)
		return audio.NoopSpeaker{}
	}

	speaker, err := audio.NewSpeaker(provider, audio.NewExecPlayer(), audio.SpeakerConfig{
		CacheDir: config.CacheDir,
		Format:   config.OutputFormat,
		Variant:  speakerVariant(config),
	})
	if err != nil {
		p.notice("speech output disabled: %v", err)
		return audio.NoopSpeaker{}
	}
	return speaker
}

// newListener returns the configured voice input, or nil when it is
// disabled or cannot be set up
func (p *Processor) newListener(ctx context.Context) chat.Listener {
	config := p.speechConfig()
	if config.Provider == "none" {
		return nil
	}
	if !speech.MicrophoneAvailable {
		p.notice("voice input disabled: %v", speech.ErrNoMicrophone)
		return nil
	}

	recognizer, err := speech.NewRecognizer(ctx, config)
	if err != nil {
		p.notice("voice input disabled: %v", err)
		return nil
	}

	mic := speech.NewMicrophone(config, slog.Default())
	// Allow for the wait, the utterance itself and the transcription call
	timeout := config.ListenTimeout + config.MaxDuration + 30*time.Second
	return speech.NewListener(mic, recognizer, timeout)
}

// audioConfig merges flags and config file values into a provider config
func (p *Processor) audioConfig() *audio.Config {
	config := audio.DefaultProviderConfig()

	config.Provider = p.stringSetting(p.flags.TTSProvider, p.defaults.TTSProvider, "tts.provider")
	config.ESpeakVoice = p.stringSetting(p.flags.Voice, p.defaults.Voice, "tts.voice")
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIBaseURL = viper.GetString("openai.base_url")
	config.OpenAIModel = p.stringSetting(p.flags.OpenAIModel, p.defaults.OpenAIModel, "tts.openai_model")
	config.OpenAIVoice = p.stringSetting(p.flags.OpenAIVoice, p.defaults.OpenAIVoice, "tts.openai_voice")
	config.OpenAISpeed = p.flags.OpenAISpeed
	if p.flags.OpenAISpeed == p.defaults.OpenAISpeed && viper.IsSet("tts.openai_speed") {
		config.OpenAISpeed = viper.GetFloat64("tts.openai_speed")
	}
	if instruction := p.stringSetting(p.flags.OpenAIInstruction, "", "tts.openai_instruction"); instruction != "" {
		config.OpenAIInstruction = instruction
	}
	if viper.IsSet("tts.espeak_speed") {
		config.ESpeakSpeed = viper.GetInt("tts.espeak_speed")
	}

	if config.Provider == "openai" {
		config.OutputFormat = "mp3"
	}

	config.CacheDir = viper.GetString("tts.cache_dir")
	if config.CacheDir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = os.TempDir()
		}
		config.CacheDir = filepath.Join(cacheDir, "minichat", "speech")
	}

	return config
}

// speechConfig merges flags and config file values into a recognizer config
func (p *Processor) speechConfig() *speech.Config {
	config := speech.DefaultConfig()

	config.Provider = p.stringSetting(p.flags.STTProvider, p.defaults.STTProvider, "stt.provider")
	config.Language = p.stringSetting(p.flags.Language, p.defaults.Language, "stt.language")
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIBaseURL = viper.GetString("openai.base_url")
	config.GeminiKey = cli.GetGeminiKey()
	if model := viper.GetString("stt.gemini_model"); model != "" {
		config.GeminiModel = model
	}
	if model := viper.GetString("stt.whisper_model"); model != "" {
		config.WhisperModel = model
	}

	config.ListenTimeout = p.flags.ListenTimeout
	if p.flags.ListenTimeout == p.defaults.ListenTimeout && viper.IsSet("stt.listen_timeout") {
		config.ListenTimeout = viper.GetDuration("stt.listen_timeout")
	}
	if viper.IsSet("stt.max_duration") {
		config.MaxDuration = viper.GetDuration("stt.max_duration")
	}
	if viper.IsSet("stt.silence_threshold") {
		config.SilenceThreshold = int16(viper.GetInt("stt.silence_threshold"))
	}

	return config
}

func (p *Processor) responsesFile() string {
	return p.stringSetting(p.flags.ResponsesFile, p.defaults.ResponsesFile, "responses.file")
}

// stringSetting prefers an explicitly set flag, then the config file,
// then the flag default
func (p *Processor) stringSetting(flagValue, defaultValue, key string) string {
	if flagValue == defaultValue && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return flagValue
}

// speakerVariant keys the speech cache on everything that changes how a
// reply sounds
func speakerVariant(config *audio.Config) string {
	return fmt.Sprintf("%s|%s|%s|%.2f|%s|%d",
		config.OpenAIModel, config.OpenAIVoice, config.OpenAIInstruction,
		config.OpenAISpeed, config.ESpeakVoice, config.ESpeakSpeed)
}
